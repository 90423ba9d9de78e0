package enrich

import (
	"context"
	"sync"

	"github.com/nraw/bgg-shelf/bgg"
)

// VersionFetcher is the slice of the catalog client the size step needs.
type VersionFetcher interface {
	GameWithVersions(ctx context.Context, id int) (*bgg.Game, error)
}

// FetchBoxSizes fetches per-game version data with a bounded worker pool and
// reduces each game to its representative box volume. Per-item failures are
// collected rather than aborting the batch; the returned map holds only the
// games that succeeded and have a representative version.
func FetchBoxSizes(ctx context.Context, client VersionFetcher, ids []int, workers int) (map[int]float64, map[int]error) {
	if workers <= 0 {
		workers = 8
	}

	type result struct {
		id   int
		size float64
		ok   bool
		err  error
	}

	jobs := make(chan int)
	out := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				game, err := client.GameWithVersions(ctx, id)
				if err != nil {
					out <- result{id: id, err: err}
					continue
				}
				version, ok := RepresentativeVersion(game.Versions)
				out <- result{id: id, size: version.Volume(), ok: ok}
			}
		}()
	}

	go func() {
		for _, id := range ids {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	sizes := make(map[int]float64)
	failures := make(map[int]error)
	for r := range out {
		switch {
		case r.err != nil:
			failures[r.id] = r.err
		case r.ok:
			sizes[r.id] = r.size
		}
	}
	return sizes, failures
}
