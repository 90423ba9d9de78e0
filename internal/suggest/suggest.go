// Package suggest turns per-game player-count polls into the flattened,
// ranked recommendation table consumed by the chart step.
package suggest

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/nraw/bgg-shelf/bgg"
)

// bestMarker prefixes the display name of a game's best player count.
const bestMarker = "🔸 "

// Row is one (game, player count) recommendation, or a synthetic separator
// (Players == 0, Name "<minutes> minutes") used for presentation grouping.
type Row struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	CoolName        string `json:"cool_name"`
	URL             string `json:"url,omitempty"`
	Players         int    `json:"players"`
	BestPlayerCount int    `json:"best_player_count"`
	IsBestPlayer    bool   `json:"is_best_player"`

	AverageRating float64 `json:"average_rating"`
	PlayingTime   int     `json:"playingtime"`

	// Enrichment fields, populated by the enrich package.
	Rating                float64    `json:"rating,omitempty"`
	NumPlays              int        `json:"numplays,omitempty"`
	LastPlayed            string     `json:"last_played,omitempty"`
	DaysSinceLastPlayed   *int       `json:"days_since_last_played,omitempty"`
	BoxSize               float64    `json:"size,omitempty"`
	MarketplacePrice      *float64   `json:"marketplace_price,omitempty"`
	MarketplaceCurrency   string     `json:"marketplace_currency,omitempty"`
	MarketplaceCondition  string     `json:"marketplace_condition,omitempty"`
	MarketplaceLink       string     `json:"marketplace_link,omitempty"`
}

// Separator reports whether the row is a synthetic playing-time separator.
func (r Row) Separator() bool {
	return r.Players == 0
}

// CardinalityError reports a join whose expected cardinality was violated.
// It aborts the pipeline run rather than silently dropping rows.
type CardinalityError struct {
	Message string
}

func (e *CardinalityError) Error() string {
	return e.Message
}

// Table builds the ranked recommendation table from a set of games.
//
// A player count is included iff best + recommended − not_recommended > 0.
// A game's best player count is the option with the most "best" votes; ties
// keep the first option in poll order. That tie-break mirrors the encounter
// order of the source poll and is preserved for reproducibility, not because
// it is meaningful.
//
// Real rows are sorted by average rating descending (stable), then one
// separator row per distinct playing time is appended, sorted by playing
// time descending and carrying the table's minimum rating so it sorts after
// every real row of its tier.
func Table(games []bgg.Game) ([]Row, error) {
	seen := make(map[int]struct{}, len(games))
	var rows []Row

	for _, game := range games {
		if _, dup := seen[game.ID]; dup {
			return nil, &CardinalityError{
				Message: fmt.Sprintf("duplicate game id %d in input; expected one-to-many join", game.ID),
			}
		}
		seen[game.ID] = struct{}{}

		poll := game.SuggestedPlayers
		if len(poll.Counts) == 0 {
			// A game with an empty or missing poll contributes nothing.
			continue
		}

		best := bestPlayerCount(poll)
		for _, votes := range poll.Counts {
			score := votes.Best + votes.Recommended - votes.NotRecommended
			if score <= 0 {
				continue
			}
			isBest := votes.Players == best
			coolName := game.ShortName
			if isBest {
				coolName = bestMarker + coolName
			}
			rows = append(rows, Row{
				ID:              game.ID,
				Name:            game.Name,
				ShortName:       game.ShortName,
				CoolName:        coolName,
				URL:             game.URL,
				Players:         votes.Players,
				BestPlayerCount: best,
				IsBestPlayer:    isBest,
				AverageRating:   game.Stats.Average,
				PlayingTime:     game.PlayingTime,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AverageRating > rows[j].AverageRating
	})

	return append(rows, separatorRows(rows)...), nil
}

// bestPlayerCount returns the poll option with the most "best" votes.
// First-in-encounter-order wins ties.
func bestPlayerCount(poll bgg.Poll) int {
	best := poll.Counts[0]
	for _, votes := range poll.Counts[1:] {
		if votes.Best > best.Best {
			best = votes
		}
	}
	return best.Players
}

// separatorRows derives one row per distinct playing time present in the
// post-filter table. Separators carry the table's minimum rating.
func separatorRows(rows []Row) []Row {
	if len(rows) == 0 {
		return nil
	}

	minRating := rows[0].AverageRating
	times := make(map[int]struct{})
	for _, row := range rows {
		if row.AverageRating < minRating {
			minRating = row.AverageRating
		}
		times[row.PlayingTime] = struct{}{}
	}

	distinct := make([]int, 0, len(times))
	for t := range times {
		distinct = append(distinct, t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))

	separators := make([]Row, 0, len(distinct))
	for _, t := range distinct {
		name := strconv.Itoa(t) + " minutes"
		separators = append(separators, Row{
			ID:            t,
			Name:          name,
			ShortName:     name,
			CoolName:      name,
			Players:       0,
			AverageRating: minRating,
			PlayingTime:   t,
		})
	}
	return separators
}
