package suggest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Metrics summarizes the enriched table for the metrics step. Ratios and
// names are zero-valued when no game qualifies.
type Metrics struct {
	NumGames                   int     `json:"num_games"`
	GameLastPlayed             string  `json:"game_last_played,omitempty"`
	GamePlayedLatest           string  `json:"game_played_latest,omitempty"`
	AverageDaysSinceLastPlayed float64 `json:"average_days_since_last_played"`
	MaxDaysSinceLastPlayed     int     `json:"max_days_since_last_played"`
	GainFromMaxPlayed          float64 `json:"gain_from_max_played"`

	NumGamesForSale         int     `json:"num_games_for_sale"`
	TotalMarketplaceValue   float64 `json:"total_marketplace_value"`
	AverageMarketplacePrice float64 `json:"average_marketplace_price"`
	MostExpensiveGame       string  `json:"most_expensive_game,omitempty"`
	MostExpensivePrice      float64 `json:"most_expensive_price"`
}

// ComputeMetrics derives the metrics summary from an enriched table. Only
// best-player-count rows are considered, so each owned game counts once.
func ComputeMetrics(rows []Row) Metrics {
	var owned []Row
	for _, row := range rows {
		if row.IsBestPlayer {
			owned = append(owned, row)
		}
	}

	m := Metrics{NumGames: len(owned)}

	var played []Row
	for _, row := range owned {
		if row.LastPlayed != "" {
			played = append(played, row)
		}
	}
	if len(played) > 0 {
		sort.SliceStable(played, func(i, j int) bool {
			return played[i].LastPlayed > played[j].LastPlayed
		})
		m.GameLastPlayed = played[0].Name
		m.GamePlayedLatest = played[len(played)-1].Name

		var total, max int
		for _, row := range played {
			days := 0
			if row.DaysSinceLastPlayed != nil {
				days = *row.DaysSinceLastPlayed
			}
			total += days
			if days > max {
				max = days
			}
		}
		m.AverageDaysSinceLastPlayed = float64(total) / float64(len(played))
		m.MaxDaysSinceLastPlayed = max
		m.GainFromMaxPlayed = float64(max) / float64(len(played))
	}

	for _, row := range owned {
		if row.MarketplacePrice == nil {
			continue
		}
		price := *row.MarketplacePrice
		m.NumGamesForSale++
		m.TotalMarketplaceValue += price
		if price > m.MostExpensivePrice {
			m.MostExpensivePrice = price
			m.MostExpensiveGame = row.Name
		}
	}
	if m.NumGamesForSale > 0 {
		m.AverageMarketplacePrice = m.TotalMarketplaceValue / float64(m.NumGamesForSale)
	}

	return m
}

// WriteMetrics persists the metrics summary as JSON.
func WriteMetrics(path string, m Metrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
