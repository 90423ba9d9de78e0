package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nraw/bgg-shelf/bgg"
)

func pollGame(id int, name string, rating float64, playingTime int, counts []bgg.PlayerCountVotes) bgg.Game {
	return bgg.Game{
		ID:          id,
		Name:        name,
		ShortName:   name,
		URL:         "https://boardgamegeek.com/boardgame/" + name,
		PlayingTime: playingTime,
		Stats:       bgg.Stats{Average: rating},
		SuggestedPlayers: bgg.Poll{
			TotalVotes: 1,
			Counts:     counts,
		},
	}
}

func TestTableScoring(t *testing.T) {
	game := pollGame(1, "Azul", 7.8, 45, []bgg.PlayerCountVotes{
		{Players: 2, Best: 10, Recommended: 2, NotRecommended: 0},
		{Players: 3, Best: 1, Recommended: 8, NotRecommended: 1},
		{Players: 4, Best: 0, Recommended: 0, NotRecommended: 9},
	})

	rows, err := Table([]bgg.Game{game})
	require.NoError(t, err)

	var real []Row
	for _, row := range rows {
		if !row.Separator() {
			real = append(real, row)
		}
	}
	require.Len(t, real, 2, "the 4-player entry scores negative and is excluded")

	assert.Equal(t, 2, real[0].Players)
	assert.True(t, real[0].IsBestPlayer)
	assert.Equal(t, 2, real[0].BestPlayerCount)
	assert.Equal(t, bestMarker+"Azul", real[0].CoolName)

	assert.Equal(t, 3, real[1].Players)
	assert.False(t, real[1].IsBestPlayer)
	assert.Equal(t, 2, real[1].BestPlayerCount)
	assert.Equal(t, "Azul", real[1].CoolName)
}

func TestTableBestTieBreak(t *testing.T) {
	// Equal "best" vote counts keep the first option in poll order.
	game := pollGame(1, "Jaipur", 7.5, 30, []bgg.PlayerCountVotes{
		{Players: 2, Best: 5, Recommended: 1},
		{Players: 3, Best: 5, Recommended: 1},
	})

	rows, err := Table([]bgg.Game{game})
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, 2, rows[0].BestPlayerCount)
}

func TestTableEmptyPollSkipped(t *testing.T) {
	withPoll := pollGame(1, "Azul", 7.8, 45, []bgg.PlayerCountVotes{
		{Players: 2, Best: 4, Recommended: 1},
	})
	withoutPoll := bgg.Game{ID: 2, Name: "Obscurio", ShortName: "Obscurio"}

	rows, err := Table([]bgg.Game{withPoll, withoutPoll})
	require.NoError(t, err)

	for _, row := range rows {
		assert.NotEqual(t, 2, row.ID, "a game without poll data must not appear")
	}
}

func TestTableAllNegativeScores(t *testing.T) {
	game := pollGame(1, "Monopoly", 4.4, 180, []bgg.PlayerCountVotes{
		{Players: 2, Best: 0, Recommended: 1, NotRecommended: 20},
		{Players: 3, Best: 1, Recommended: 0, NotRecommended: 20},
	})

	rows, err := Table([]bgg.Game{game})
	require.NoError(t, err)
	assert.Empty(t, rows, "no real rows means no separators either")
}

func TestTableSortAndSeparators(t *testing.T) {
	games := []bgg.Game{
		pollGame(1, "Azul", 7.8, 45, []bgg.PlayerCountVotes{
			{Players: 2, Best: 5, Recommended: 1},
		}),
		pollGame(2, "Gloomhaven", 8.6, 120, []bgg.PlayerCountVotes{
			{Players: 3, Best: 8, Recommended: 2},
		}),
		pollGame(3, "Jaipur", 7.5, 30, []bgg.PlayerCountVotes{
			{Players: 2, Best: 9, Recommended: 0},
		}),
	}

	rows, err := Table(games)
	require.NoError(t, err)
	require.Len(t, rows, 6, "3 real rows plus 3 separators")

	// Real rows sort by rating descending.
	assert.Equal(t, "Gloomhaven", rows[0].Name)
	assert.Equal(t, "Azul", rows[1].Name)
	assert.Equal(t, "Jaipur", rows[2].Name)

	// Separators follow, one per distinct playing time, longest first,
	// carrying the table's minimum rating.
	seps := rows[3:]
	assert.Equal(t, "120 minutes", seps[0].Name)
	assert.Equal(t, "45 minutes", seps[1].Name)
	assert.Equal(t, "30 minutes", seps[2].Name)
	for _, sep := range seps {
		assert.True(t, sep.Separator())
		assert.Equal(t, sep.PlayingTime, sep.ID)
		assert.Equal(t, 7.5, sep.AverageRating)
	}
}

func TestTableDuplicateGameID(t *testing.T) {
	game := pollGame(1, "Azul", 7.8, 45, []bgg.PlayerCountVotes{
		{Players: 2, Best: 5, Recommended: 1},
	})

	_, err := Table([]bgg.Game{game, game})
	var cardErr *CardinalityError
	require.ErrorAs(t, err, &cardErr)
	assert.Contains(t, cardErr.Message, "duplicate game id 1")
}

func TestTableSharedPlayingTime(t *testing.T) {
	games := []bgg.Game{
		pollGame(1, "Azul", 7.8, 45, []bgg.PlayerCountVotes{
			{Players: 2, Best: 5, Recommended: 1},
		}),
		pollGame(2, "Splendor", 7.4, 45, []bgg.PlayerCountVotes{
			{Players: 3, Best: 5, Recommended: 1},
		}),
	}

	rows, err := Table(games)
	require.NoError(t, err)

	var seps int
	for _, row := range rows {
		if row.Separator() {
			seps++
		}
	}
	assert.Equal(t, 1, seps, "one separator per distinct playing time")
}

func TestWriteReadTableRoundtrip(t *testing.T) {
	game := pollGame(1, "Azul", 7.8, 45, []bgg.PlayerCountVotes{
		{Players: 2, Best: 5, Recommended: 1},
		{Players: 3, Best: 1, Recommended: 4},
	})
	rows, err := Table([]bgg.Game{game})
	require.NoError(t, err)

	path := t.TempDir() + "/nested/suggested_players.json"
	require.NoError(t, WriteTable(path, rows))

	got, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
