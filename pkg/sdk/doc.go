// Package tagrec embeds the tagrec recommender in a Go program.
//
// Items are described by free-form tags. The client builds a TF-IDF model
// over all tag applications, derives a tag profile from each user's ratings
// and scores candidate items by cosine similarity to that profile.
//
//	client, _ := tagrec.New(ctx, tagrec.WithSQLite("movies.db"))
//	defer client.Close()
//
//	_ = client.Tag(ctx, 1, "funny", "romance")
//	_ = client.Rate(ctx, 42, 1, 4.5)
//	_, _ = client.BuildModel(ctx)
//
//	scores, _ := client.Score(ctx, 42, []int64{1, 2, 3})
//
// Storage is either Redis/Valkey (WithRedis) or a local SQLite file (WithSQLite).
package tagrec
