// Package resilience groups the fault tolerance helpers used around MongoDB
// and outbound publisher calls.
//
//   - circuitbreaker: one breaker shared by all repositories, plus one per
//     fetcher (RSS feeds, article pages)
//   - retry: exponential backoff for feed downloads. API requests never retry.
//
//	b := circuitbreaker.NewMongo()
//	err := b.Do(func() error {
//	    _, err := coll.InsertOne(ctx, doc)
//	    return err
//	})
//
//	items, err := retry.Do(ctx, retry.FeedPolicy(), func(ctx context.Context) ([]ingest.FeedItem, error) {
//	    return fetchFeed(ctx, url)
//	})
package resilience
