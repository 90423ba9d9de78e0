package bgg

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Game retrieves detailed information about a single game by id.
func (c *Client) Game(ctx context.Context, id int) (*Game, error) {
	return c.game(ctx, id, false)
}

// GameWithVersions retrieves a game including its physical versions.
func (c *Client) GameWithVersions(ctx context.Context, id int) (*Game, error) {
	return c.game(ctx, id, true)
}

func (c *Client) game(ctx context.Context, id int, versions bool) (*Game, error) {
	if id <= 0 {
		return nil, newNotFoundError("game id must be positive")
	}

	params := url.Values{
		"id":    {strconv.Itoa(id)},
		"stats": {"1"},
		"type":  {"boardgame"},
	}
	if versions {
		params.Set("versions", "1")
	}

	body, err := c.fetchXML(ctx, "/thing", params, c.retry)
	if err != nil {
		return nil, err
	}

	xmlResp, err := parseXML[xmlThing](body, "failed to parse thing response")
	if err != nil {
		return nil, err
	}
	if len(xmlResp.Items) == 0 {
		return nil, newNotFoundError("game with id " + strconv.Itoa(id) + " not found")
	}

	game := convertGame(xmlResp.Items[0], versions)
	return &game, nil
}

// GameByName resolves a name to an id via search (exact match first, then
// fuzzy) and fetches the game.
func (c *Client) GameByName(ctx context.Context, name string) (*Game, error) {
	id, err := c.searchGameID(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Game(ctx, id)
}

// Games retrieves multiple games, batching ids into chunks to respect the
// service's request-size limits. Chunks are fetched by a bounded worker pool
// and each chunk retries independently under the batch policy. A failed
// chunk fails the whole call; an id the service simply omits from an
// otherwise successful chunk is silently absent from the result.
func (c *Client) Games(ctx context.Context, ids []int) ([]Game, error) {
	if len(ids) == 0 {
		return []Game{}, nil
	}

	chunks := chunkIDs(ids, c.batchSize)
	results := make([][]Game, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.workers)
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i], errs[i] = c.fetchGameChunk(ctx, chunk)
		}(i, chunk)
	}
	wg.Wait()

	var games []Game
	for i := range chunks {
		if errs[i] != nil {
			return nil, errs[i]
		}
		games = append(games, results[i]...)
	}
	return games, nil
}

func (c *Client) fetchGameChunk(ctx context.Context, ids []int) ([]Game, error) {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = strconv.Itoa(id)
	}

	params := url.Values{
		"id":    {strings.Join(idStrs, ",")},
		"stats": {"1"},
		"type":  {"boardgame"},
	}

	body, err := c.fetchXML(ctx, "/thing", params, c.batchRetry)
	if err != nil {
		return nil, err
	}

	xmlResp, err := parseXML[xmlThing](body, "failed to parse thing response")
	if err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(xmlResp.Items))
	for _, item := range xmlResp.Items {
		games = append(games, convertGame(item, false))
	}
	return games, nil
}

// chunkIDs splits ids into slices of at most size elements.
func chunkIDs(ids []int, size int) [][]int {
	var chunks [][]int
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	return append(chunks, ids)
}

// convertGame maps one XML thing item to a Game.
func convertGame(item xmlThingItem, versions bool) Game {
	name := primaryName(item.Names)

	game := Game{
		ID:          item.ID,
		Name:        name,
		ShortName:   shortenName(name),
		URL:         gameURL(item.ID),
		Thumbnail:   item.Thumbnail,
		MinPlayers:  atoiOr(item.MinPlayers.Value, 1),
		MaxPlayers:  atoiOr(item.MaxPlayers.Value, 1),
		PlayingTime: atoiOr(item.PlayingTime.Value, 0),
		Stats:       convertStats(item.Statistics.Ratings),
		Expansions:  []Expansion{},
	}
	if game.MaxPlayers < game.MinPlayers {
		game.MaxPlayers = game.MinPlayers
	}

	// Only outbound links represent this game's own expansions; inbound
	// links point from an expansion back at its base game.
	for _, link := range item.Links {
		if link.Type == "boardgameexpansion" && link.Inbound != "true" {
			game.Expansions = append(game.Expansions, Expansion{ID: link.ID, Name: link.Value})
		}
	}

	for _, poll := range item.Polls {
		if poll.Name == "suggested_numplayers" {
			game.SuggestedPlayers = convertPoll(poll)
			break
		}
	}

	if versions {
		game.Versions = convertVersions(item.Versions)
	}

	return game
}

// convertPoll classifies poll options at parse time: numeric player counts
// become Counts entries in document order, category labels go to Ignored.
func convertPoll(poll xmlPoll) Poll {
	out := Poll{
		TotalVotes: atoiOr(poll.TotalVotes, 0),
		Counts:     []PlayerCountVotes{},
	}

	for _, option := range poll.Results {
		if !isDigits(option.NumPlayers) {
			if option.NumPlayers != "" {
				out.Ignored = append(out.Ignored, option.NumPlayers)
			}
			continue
		}
		votes := PlayerCountVotes{Players: atoiOr(option.NumPlayers, 0)}
		for _, result := range option.Results {
			n := atoiOr(result.NumVotes, 0)
			switch result.Value {
			case "Best":
				votes.Best = n
			case "Recommended":
				votes.Recommended = n
			case "Not Recommended":
				votes.NotRecommended = n
			}
		}
		out.Counts = append(out.Counts, votes)
	}

	return out
}

func convertStats(r xmlRatings) Stats {
	stats := Stats{
		UsersRated:    atoiOr(r.UsersRated.Value, 0),
		Average:       atofOr(r.Average.Value, 0),
		BayesAverage:  atofOr(r.BayesAverage.Value, 0),
		StdDev:        atofOr(r.StdDev.Value, 0),
		Median:        atofOr(r.Median.Value, 0),
		AverageWeight: atofOr(r.AverageWeight.Value, 0),
		Ranks:         []Rank{},
	}

	for _, rank := range r.Ranks.Ranks {
		entry := Rank{
			ID:           rank.ID,
			Name:         rank.Name,
			FriendlyName: rank.FriendlyName,
		}
		if rank.Value != "" && rank.Value != notRankedSentinel {
			if v, err := strconv.Atoi(rank.Value); err == nil {
				entry.Value = v
				entry.Ranked = true
			}
		}
		stats.Ranks = append(stats.Ranks, entry)
	}

	return stats
}

func convertVersions(items []xmlVersion) []Version {
	versions := make([]Version, 0, len(items))
	for _, item := range items {
		v := Version{
			ItemID:   item.ID,
			Language: "Unknown",
			Width:    atofOr(item.Width.Value, 0),
			Length:   atofOr(item.Length.Value, 0),
			Depth:    atofOr(item.Depth.Value, 0),
		}
		for _, link := range item.Links {
			if link.Type == "language" {
				v.Language = link.Value
				break
			}
		}
		versions = append(versions, v)
	}
	return versions
}
