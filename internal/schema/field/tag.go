package field

// DefaultTagSeparator is the engine's separator when none is declared.
const DefaultTagSeparator = ","

// Tag is an exact-match field holding one or more separated values.
type Tag struct {
	FieldName     string
	Separator     string
	CaseSensitive bool
	Sortable      bool
	NoIndex       bool
}

// NewTag returns a tag field with engine defaults.
func NewTag(name string) Tag { return Tag{FieldName: name} }

// Name returns the field name.
func (t Tag) Name() string { return t.FieldName }

// Kind returns KindTag.
func (t Tag) Kind() Kind { return KindTag }

// EffectiveSeparator returns the declared separator or DefaultTagSeparator.
func (t Tag) EffectiveSeparator() string {
	if t.Separator == "" {
		return DefaultTagSeparator
	}
	return t.Separator
}

// Compile returns name TAG [SEPARATOR s] [CASESENSITIVE] [SORTABLE] [NOINDEX].
func (t Tag) Compile() []string {
	args := appendPair([]string{t.FieldName, string(KindTag)}, "SEPARATOR", t.Separator)
	return appendFlags(args,
		flag{"CASESENSITIVE", t.CaseSensitive},
		flag{"SORTABLE", t.Sortable},
		flag{"NOINDEX", t.NoIndex},
	)
}
