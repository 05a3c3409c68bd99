// Package redisearch keeps Go types in sync with RediSearch indexes.
//
// A Model binds a struct type to an index whose name is derived from the
// type: prefix, pluralized snake_case type name and environment joined by
// "_". Documents are read from `redisearch` struct tags by default.
//
//	type Widget struct {
//	    ID    string   `redisearch:"id,id"`
//	    Title string   `redisearch:"title"`
//	    Color []string `redisearch:"color"`
//	    Price float64  `redisearch:"price"`
//	}
//
//	client, _ := redisearch.New(redisearch.WithRedis([]string{"localhost:6379"}, ""),
//	    redisearch.WithIndexPrefix("shop"))
//	widgets, _ := redisearch.Register[Widget](client, []redisearch.Field{
//	    redisearch.NewSortableText("title"),
//	    redisearch.NewTag("color"),
//	    redisearch.NewNumeric("price"),
//	})
//	_ = widgets.Create(ctx)
//	_ = widgets.Save(ctx, &Widget{ID: "1", Title: "desk lamp", Price: 19.5})
//	res, _ := widgets.Query().Term("lamp").Where("color", "red").Page(0, 20).Do(ctx)
package redisearch
