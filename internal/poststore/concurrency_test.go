package poststore

import (
	"context"
	"sync"
	"testing"

	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest lets the concurrency suite run against both implementations.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	return map[string]Store{
		"FileStore":   fileStore,
		"MemoryStore": NewMemoryStore(),
	}
}

func TestConcurrentVotesLoseNoUpdates(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{2, 10, 100} {
				ctx := context.Background()
				post := testPost(NewID())
				require.NoError(t, store.Create(ctx, post))

				var wg sync.WaitGroup
				errs := make(chan error, n)
				for i := 0; i < n; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						_, err := store.Update(ctx, post.ID, func(p *models.Post) {
							p.UpVoteCount++
						})
						errs <- err
					}()
				}
				wg.Wait()
				close(errs)
				for err := range errs {
					require.NoError(t, err)
				}

				got, err := store.Get(ctx, post.ID)
				require.NoError(t, err)
				assert.Equal(t, uint64(n), got.UpVoteCount, "N=%d concurrent increments must net N", n)
			}
		})
	}
}

func TestConcurrentMixedCountersStaySeparate(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			post := testPost(NewID())
			require.NoError(t, store.Create(ctx, post))

			const perCounter = 25
			var wg sync.WaitGroup
			for i := 0; i < perCounter; i++ {
				wg.Add(3)
				go func() {
					defer wg.Done()
					_, _ = store.Update(ctx, post.ID, func(p *models.Post) { p.UpVoteCount++ })
				}()
				go func() {
					defer wg.Done()
					_, _ = store.Update(ctx, post.ID, func(p *models.Post) { p.DownVoteCount++ })
				}()
				go func() {
					defer wg.Done()
					_, _ = store.Update(ctx, post.ID, func(p *models.Post) { p.ShareCount++ })
				}()
			}
			wg.Wait()

			got, err := store.Get(ctx, post.ID)
			require.NoError(t, err)
			assert.Equal(t, uint64(perCounter), got.UpVoteCount)
			assert.Equal(t, uint64(perCounter), got.DownVoteCount)
			assert.Equal(t, uint64(perCounter), got.ShareCount)
		})
	}
}

// A reader racing a vote storm must always observe a fully-formed record:
// immutable fields intact and counters never regressing.
func TestAtomicVisibilityDuringVotes(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			post := testPost(NewID())
			require.NoError(t, store.Create(ctx, post))

			const votes = 50
			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < votes; i++ {
					_, err := store.Update(ctx, post.ID, func(p *models.Post) { p.UpVoteCount++ })
					assert.NoError(t, err)
				}
			}()

			var lastSeen uint64
			for {
				got, err := store.Get(ctx, post.ID)
				require.NoError(t, err, "reader must never see a partial record")
				assert.Equal(t, post.ID, got.ID)
				assert.Equal(t, post.PostText, got.PostText)
				assert.Equal(t, post.GenreName, got.GenreName)
				assert.GreaterOrEqual(t, got.UpVoteCount, lastSeen, "counter must be monotone")
				lastSeen = got.UpVoteCount

				select {
				case <-done:
					final, err := store.Get(ctx, post.ID)
					require.NoError(t, err)
					assert.Equal(t, uint64(votes), final.UpVoteCount)
					return
				default:
				}
			}
		})
	}
}

func TestConcurrentCreatesDistinctIDs(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const n = 50

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- store.Create(ctx, testPost(NewID()))
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			posts, err := store.ListAll(ctx)
			require.NoError(t, err)
			assert.Len(t, posts, n)
		})
	}
}
