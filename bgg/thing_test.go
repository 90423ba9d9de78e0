package bgg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
)

func TestGame(t *testing.T) {
	testData, err := os.ReadFile("testdata/thing_response.xml")
	if err != nil {
		t.Fatalf("failed to read test data: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/thing" {
			t.Errorf("expected path '/thing', got %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("id") != "13" {
			t.Errorf("expected id '13', got %q", q.Get("id"))
		}
		if q.Get("stats") != "1" {
			t.Errorf("expected stats '1', got %q", q.Get("stats"))
		}
		if q.Get("versions") != "" {
			t.Errorf("versions must not be requested, got %q", q.Get("versions"))
		}
		w.WriteHeader(http.StatusOK)
		w.Write(testData)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	game, err := client.Game(context.Background(), 13)
	if err != nil {
		t.Fatalf("Game() error = %v", err)
	}

	if game.ID != 13 {
		t.Errorf("ID = %d, want 13", game.ID)
	}
	if game.Name != "CATAN" {
		t.Errorf("Name = %q, want 'CATAN' (primary name preferred)", game.Name)
	}
	if game.ShortName != "CATAN" {
		t.Errorf("ShortName = %q, want 'CATAN'", game.ShortName)
	}
	if game.URL != "https://boardgamegeek.com/boardgame/13" {
		t.Errorf("URL = %q", game.URL)
	}
	if game.MinPlayers != 3 || game.MaxPlayers != 4 {
		t.Errorf("players = %d-%d, want 3-4", game.MinPlayers, game.MaxPlayers)
	}
	if game.PlayingTime != 120 {
		t.Errorf("PlayingTime = %d, want 120", game.PlayingTime)
	}

	// Only outbound expansion links survive.
	if len(game.Expansions) != 2 {
		t.Fatalf("Expansions = %d entries, want 2", len(game.Expansions))
	}
	if game.Expansions[0].ID != 926 || game.Expansions[1].ID != 325 {
		t.Errorf("Expansions = %+v", game.Expansions)
	}

	// Poll classified at parse time: numeric options in document order,
	// category labels ignored.
	poll := game.SuggestedPlayers
	if poll.TotalVotes != 2122 {
		t.Errorf("TotalVotes = %d, want 2122", poll.TotalVotes)
	}
	if len(poll.Counts) != 3 {
		t.Fatalf("Counts = %d entries, want 3", len(poll.Counts))
	}
	if poll.Counts[0].Players != 2 || poll.Counts[1].Players != 3 || poll.Counts[2].Players != 4 {
		t.Errorf("Counts order = %+v", poll.Counts)
	}
	if poll.Counts[1].Best != 724 || poll.Counts[1].Recommended != 1083 || poll.Counts[1].NotRecommended != 93 {
		t.Errorf("Counts[1] = %+v", poll.Counts[1])
	}
	// Malformed vote count coerces to zero.
	if poll.Counts[2].Recommended != 0 {
		t.Errorf("Counts[2].Recommended = %d, want 0", poll.Counts[2].Recommended)
	}
	if len(poll.Ignored) != 1 || poll.Ignored[0] != "4+" {
		t.Errorf("Ignored = %v, want [4+]", poll.Ignored)
	}

	// Statistics with the "Not Ranked" sentinel handled per rank entry.
	if game.Stats.Average < 7.14 || game.Stats.Average > 7.15 {
		t.Errorf("Average = %f, want ~7.14", game.Stats.Average)
	}
	if game.Stats.UsersRated != 98765 {
		t.Errorf("UsersRated = %d, want 98765", game.Stats.UsersRated)
	}
	if len(game.Stats.Ranks) != 2 {
		t.Fatalf("Ranks = %d entries, want 2", len(game.Stats.Ranks))
	}
	if !game.Stats.Ranks[0].Ranked || game.Stats.Ranks[0].Value != 389 {
		t.Errorf("Ranks[0] = %+v, want ranked 389", game.Stats.Ranks[0])
	}
	if game.Stats.Ranks[1].Ranked {
		t.Errorf("Ranks[1] = %+v, want not ranked", game.Stats.Ranks[1])
	}

	if game.Versions != nil {
		t.Errorf("Versions = %v, want nil when not requested", game.Versions)
	}
}

func TestGameWithVersions(t *testing.T) {
	testData, err := os.ReadFile("testdata/thing_versions_response.xml")
	if err != nil {
		t.Fatalf("failed to read test data: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("versions") != "1" {
			t.Errorf("expected versions '1', got %q", r.URL.Query().Get("versions"))
		}
		w.WriteHeader(http.StatusOK)
		w.Write(testData)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	game, err := client.GameWithVersions(context.Background(), 174430)
	if err != nil {
		t.Fatalf("GameWithVersions() error = %v", err)
	}

	if len(game.Versions) != 3 {
		t.Fatalf("Versions = %d entries, want 3", len(game.Versions))
	}

	english := game.Versions[0]
	if english.Language != "English" {
		t.Errorf("Language = %q, want English", english.Language)
	}
	if english.Width != 11.6 || english.Length != 16.2 || english.Depth != 7.2 {
		t.Errorf("dimensions = %v", english)
	}

	// Empty dimensions default to zero; missing language defaults to Unknown.
	if game.Versions[1].Volume() != 0 {
		t.Errorf("Versions[1].Volume() = %f, want 0", game.Versions[1].Volume())
	}
	if game.Versions[2].Language != "Unknown" {
		t.Errorf("Versions[2].Language = %q, want Unknown", game.Versions[2].Language)
	}
}

func TestGameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<items></items>"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Game(context.Background(), 999999999)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestGameByName(t *testing.T) {
	var searches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			n := atomic.AddInt32(&searches, 1)
			if n == 1 {
				// Exact search comes first and finds nothing.
				if r.URL.Query().Get("exact") != "1" {
					t.Errorf("first search must be exact, got query %v", r.URL.Query())
				}
				w.Write([]byte("<items total=\"0\"></items>"))
				return
			}
			if r.URL.Query().Get("exact") == "1" {
				t.Error("fuzzy fallback must not set exact=1")
			}
			w.Write([]byte(`<items total="1"><item type="boardgame" id="13"><name type="primary" value="CATAN"/></item></items>`))
		case "/thing":
			testData, _ := os.ReadFile("testdata/thing_response.xml")
			w.Write(testData)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	game, err := client.GameByName(context.Background(), "Catan")
	if err != nil {
		t.Fatalf("GameByName() error = %v", err)
	}
	if game.ID != 13 {
		t.Errorf("ID = %d, want 13", game.ID)
	}
	if n := atomic.LoadInt32(&searches); n != 2 {
		t.Errorf("searches = %d, want 2 (exact then fuzzy)", n)
	}
}

func TestGameByNameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<items total=\"0\"></items>"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GameByName(context.Background(), "No Such Game")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestGamesChunking(t *testing.T) {
	// 45 ids with batch size 20 must issue exactly 3 chunk requests
	// (20, 20, 5) and concatenate every parsed game.
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		var b strings.Builder
		b.WriteString("<items>")
		for _, id := range ids {
			fmt.Fprintf(&b, `<item type="boardgame" id="%s"><name type="primary" value="Game %s"/><minplayers value="2"/><maxplayers value="4"/><playingtime value="30"/></item>`, id, id)
		}
		b.WriteString("</items>")
		w.Write([]byte(b.String()))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	ids := make([]int, 45)
	for i := range ids {
		ids[i] = i + 1
	}

	games, err := client.Games(context.Background(), ids)
	if err != nil {
		t.Fatalf("Games() error = %v", err)
	}
	if len(games) != 45 {
		t.Errorf("games = %d, want 45", len(games))
	}
	if n := atomic.LoadInt32(&requests); n != 3 {
		t.Errorf("requests = %d, want 3", n)
	}

	seen := make(map[int]bool)
	for _, game := range games {
		seen[game.ID] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Errorf("game %d missing from concatenated result", id)
		}
	}
}

func TestGamesEmpty(t *testing.T) {
	client := NewClient(Config{Logger: testLogger()})
	games, err := client.Games(context.Background(), nil)
	if err != nil {
		t.Fatalf("Games() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("games = %d, want 0", len(games))
	}
}

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want []int // chunk lengths
	}{
		{"single partial", 5, 20, []int{5}},
		{"exact", 40, 20, []int{20, 20}},
		{"remainder", 45, 20, []int{20, 20, 5}},
		{"one", 1, 20, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]int, tt.n)
			chunks := chunkIDs(ids, tt.size)
			if len(chunks) != len(tt.want) {
				t.Fatalf("chunks = %d, want %d", len(chunks), len(tt.want))
			}
			for i, chunk := range chunks {
				if len(chunk) != tt.want[i] {
					t.Errorf("chunk %d has %d ids, want %d", i, len(chunk), tt.want[i])
				}
			}
		})
	}
}
