package suggest

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetrics(t *testing.T) {
	days10, days40 := 10, 40
	price30, price90 := 30.0, 90.0

	rows := []Row{
		{ID: 1, Name: "Azul", Players: 2, IsBestPlayer: true, LastPlayed: "2026-08-19", DaysSinceLastPlayed: &days10, MarketplacePrice: &price30},
		{ID: 1, Name: "Azul", Players: 3},
		{ID: 2, Name: "Gloomhaven", Players: 3, IsBestPlayer: true, LastPlayed: "2026-07-20", DaysSinceLastPlayed: &days40, MarketplacePrice: &price90},
		{ID: 3, Name: "Jaipur", Players: 2, IsBestPlayer: true},
		{ID: 45, Name: "45 minutes", Players: 0},
	}

	m := ComputeMetrics(rows)

	assert.Equal(t, 3, m.NumGames, "one row per game, separators excluded")

	assert.Equal(t, "Azul", m.GameLastPlayed)
	assert.Equal(t, "Gloomhaven", m.GamePlayedLatest)
	assert.Equal(t, 25.0, m.AverageDaysSinceLastPlayed)
	assert.Equal(t, 40, m.MaxDaysSinceLastPlayed)
	assert.Equal(t, 20.0, m.GainFromMaxPlayed)

	assert.Equal(t, 2, m.NumGamesForSale)
	assert.Equal(t, 120.0, m.TotalMarketplaceValue)
	assert.Equal(t, 60.0, m.AverageMarketplacePrice)
	assert.Equal(t, "Gloomhaven", m.MostExpensiveGame)
	assert.Equal(t, 90.0, m.MostExpensivePrice)
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	assert.Equal(t, 0, m.NumGames)
	assert.Empty(t, m.GameLastPlayed)
	assert.Zero(t, m.AverageDaysSinceLastPlayed)
	assert.Zero(t, m.NumGamesForSale)
}

func TestWriteMetrics(t *testing.T) {
	path := t.TempDir() + "/out/metrics.json"
	want := Metrics{NumGames: 2, MostExpensiveGame: "Gloomhaven", MostExpensivePrice: 90}
	require.NoError(t, WriteMetrics(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Metrics
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}
