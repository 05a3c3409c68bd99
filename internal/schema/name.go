package schema

import (
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

var plural = pluralize.NewClient()

// IndexName derives an index name: prefix, pluralized snake-cased type name
// and environment tag joined by "_", empty components omitted.
func IndexName(prefix, typeName, env string) string {
	return JoinName(prefix, PluralName(typeName), env)
}

// PluralName returns the snake_case plural form of a type name ("BlogPost" -> "blog_posts").
func PluralName(typeName string) string {
	if typeName == "" {
		return ""
	}
	snake := strcase.ToSnake(typeName)
	i := strings.LastIndexByte(snake, '_')
	return snake[:i+1] + plural.Plural(snake[i+1:])
}

// JoinName joins non-empty parts with "_".
func JoinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}
