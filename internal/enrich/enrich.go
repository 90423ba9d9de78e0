// Package enrich joins auxiliary data (personal ratings, play history, box
// sizes, marketplace prices) onto the suggested-player table.
package enrich

import (
	"fmt"
	"sort"
	"time"

	"github.com/nraw/bgg-shelf/bgg"
	"github.com/nraw/bgg-shelf/internal/suggest"
)

// AddRatings joins personal rating and play count from the owned collection
// onto the table by game id. The right side must hold at most one item per
// id (many rows to one collection item); a duplicate aborts with a
// CardinalityError. Separator rows are left untouched.
func AddRatings(rows []suggest.Row, items []bgg.CollectionItem) error {
	byID := make(map[int]bgg.CollectionItem, len(items))
	for _, item := range items {
		if _, dup := byID[item.ID]; dup {
			return &suggest.CardinalityError{
				Message: fmt.Sprintf("duplicate collection item id %d; expected many-to-one join", item.ID),
			}
		}
		byID[item.ID] = item
	}

	for i := range rows {
		if rows[i].Separator() {
			continue
		}
		item, ok := byID[rows[i].ID]
		if !ok {
			continue
		}
		if item.Rated {
			rows[i].Rating = item.Rating
		}
		rows[i].NumPlays = item.NumPlays
	}
	return nil
}

// LastPlayed reduces a play log to the most recent play date per game name.
// The mapping renames known duplicate editions to their canonical name
// before grouping.
func LastPlayed(plays []bgg.Play, mapping map[string]string) map[string]time.Time {
	last := make(map[string]time.Time)
	for _, play := range plays {
		name := play.GameName
		if canonical, ok := mapping[name]; ok {
			name = canonical
		}
		if play.Date.After(last[name]) {
			last[name] = play.Date
		}
	}
	return last
}

// AddLastPlayed joins per-game last-played dates onto the table by game name
// and derives days-since-last-played relative to now.
func AddLastPlayed(rows []suggest.Row, last map[string]time.Time, now time.Time) {
	for i := range rows {
		if rows[i].Separator() {
			continue
		}
		date, ok := last[rows[i].Name]
		if !ok || date.IsZero() {
			continue
		}
		rows[i].LastPlayed = date.Format("2006-01-02")
		days := int(now.Sub(date).Hours() / 24)
		rows[i].DaysSinceLastPlayed = &days
	}
}

// RepresentativeVersion picks the physical version that stands for a game's
// box size: versions with a positive volume are preferred, then English
// ones, then the largest volume wins.
func RepresentativeVersion(versions []bgg.Version) (bgg.Version, bool) {
	if len(versions) == 0 {
		return bgg.Version{}, false
	}

	candidates := versions
	var sized []bgg.Version
	for _, v := range candidates {
		if v.Volume() > 0 {
			sized = append(sized, v)
		}
	}
	if len(sized) > 0 {
		candidates = sized
	}

	var english []bgg.Version
	for _, v := range candidates {
		if v.Language == "English" {
			english = append(english, v)
		}
	}
	if len(english) > 0 {
		candidates = english
	}

	best := candidates[0]
	for _, v := range candidates[1:] {
		if v.Volume() > best.Volume() {
			best = v
		}
	}
	return best, true
}

// AddBoxSizes joins per-game box volumes onto the table by game id.
func AddBoxSizes(rows []suggest.Row, sizes map[int]float64) {
	for i := range rows {
		if rows[i].Separator() {
			continue
		}
		if size, ok := sizes[rows[i].ID]; ok {
			rows[i].BoxSize = size
		}
	}
}

// DedupeListings keeps the cheapest listing per item id, preserving the
// input order of surviving items.
func DedupeListings(listings []bgg.Listing) []bgg.Listing {
	cheapest := make(map[int]bgg.Listing, len(listings))
	order := make([]int, 0, len(listings))
	for _, l := range listings {
		existing, seen := cheapest[l.ItemID]
		if !seen {
			order = append(order, l.ItemID)
			cheapest[l.ItemID] = l
			continue
		}
		if l.Price < existing.Price {
			cheapest[l.ItemID] = l
		}
	}

	out := make([]bgg.Listing, 0, len(order))
	for _, id := range order {
		out = append(out, cheapest[id])
	}
	return out
}

// AddMarketplace joins marketplace prices onto the table by game id. The
// listings must already be deduplicated; a duplicate id aborts with a
// CardinalityError.
func AddMarketplace(rows []suggest.Row, listings []bgg.Listing) error {
	byID := make(map[int]bgg.Listing, len(listings))
	for _, l := range listings {
		if _, dup := byID[l.ItemID]; dup {
			return &suggest.CardinalityError{
				Message: fmt.Sprintf("duplicate marketplace listing for item %d; expected one-to-one join", l.ItemID),
			}
		}
		byID[l.ItemID] = l
	}

	for i := range rows {
		if rows[i].Separator() {
			continue
		}
		l, ok := byID[rows[i].ID]
		if !ok {
			continue
		}
		price := l.Price
		rows[i].MarketplacePrice = &price
		rows[i].MarketplaceCurrency = l.Currency
		rows[i].MarketplaceCondition = l.Condition
		rows[i].MarketplaceLink = l.URL
	}
	return nil
}

// GameIDs returns the distinct non-separator game ids of the table in
// ascending order.
func GameIDs(rows []suggest.Row) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, row := range rows {
		if row.Separator() {
			continue
		}
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}
		ids = append(ids, row.ID)
	}
	sort.Ints(ids)
	return ids
}
