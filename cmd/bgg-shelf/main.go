package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/nraw/bgg-shelf/bgg"
	"github.com/nraw/bgg-shelf/internal/config"
	"github.com/nraw/bgg-shelf/internal/enrich"
	"github.com/nraw/bgg-shelf/internal/suggest"
)

const version = "0.2.0"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default: ./"+config.DefaultFileName+")")
		withSizes   = flag.Bool("sizes", false, "fetch per-game box sizes (slow: one request per game)")
		withMarket  = flag.Bool("marketplace", false, "fetch marketplace listings")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("bgg-shelf " + version)
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "bgg-shelf",
		ReportTimestamp: true,
	})

	if err := run(*configPath, *withSizes, *withMarket, logger); err != nil {
		logger.Fatal("pipeline failed", "err", err)
	}
}

func run(configPath string, withSizes, withMarket bool, logger *log.Logger) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		_ = godotenv.Load()
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.User.Name == "" {
		return fmt.Errorf("no username configured; set user.name in %s", config.DefaultFileName)
	}

	client := bgg.NewClient(bgg.Config{
		Auth:    bgg.AuthFromEnv(),
		Timeout: cfg.Request.Timeout(),
		Retry: bgg.RetryPolicy{
			MaxAttempts: cfg.Request.Retries,
			Delay:       cfg.Request.RetryDelay(),
			Backoff:     1,
		},
		BatchRetry: bgg.RetryPolicy{
			MaxAttempts: cfg.Request.BatchRetries,
			Delay:       cfg.Request.RetryDelay(),
			Backoff:     cfg.Request.BatchBackoff,
		},
		BatchSize: cfg.Request.BatchSize,
		Workers:   cfg.Request.Workers,
		Logger:    logger.WithPrefix("bgg"),
	})

	ctx := context.Background()

	logger.Info("getting collection", "user", cfg.User.Name)
	items, err := client.Collection(ctx, cfg.User.Name, bgg.CollectionOptions{
		OwnedOnly:      true,
		ExcludeSubtype: "boardgameexpansion",
		ShowPrivate:    true,
	})
	if err != nil {
		return fmt.Errorf("fetching collection: %w", err)
	}
	logger.Info("got collection", "items", len(items))

	excluded := make(map[int]struct{}, len(cfg.User.Exclude))
	for _, id := range cfg.User.Exclude {
		excluded[id] = struct{}{}
	}
	var ids []int
	for _, item := range items {
		if !item.Owned {
			continue
		}
		if _, skip := excluded[item.ID]; skip {
			continue
		}
		ids = append(ids, item.ID)
	}

	logger.Info("getting games metadata", "games", len(ids))
	games, err := client.Games(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetching games: %w", err)
	}

	logger.Info("building suggested players table")
	rows, err := suggest.Table(games)
	if err != nil {
		return fmt.Errorf("aggregating suggested players: %w", err)
	}

	logger.Info("getting logged plays")
	plays, err := client.Plays(ctx, cfg.User.Name)
	if err != nil {
		return fmt.Errorf("fetching plays: %w", err)
	}
	enrich.AddLastPlayed(rows, enrich.LastPlayed(plays, cfg.User.NameMapping), time.Now())

	if err := enrich.AddRatings(rows, items); err != nil {
		return fmt.Errorf("joining ratings: %w", err)
	}

	if withSizes {
		logger.Info("getting box sizes", "games", len(ids))
		sizes, failures := enrich.FetchBoxSizes(ctx, client, enrich.GameIDs(rows), cfg.Request.Workers)
		for id, ferr := range failures {
			logger.Warn("box size unavailable", "game_id", id, "err", ferr)
		}
		enrich.AddBoxSizes(rows, sizes)
	}

	if withMarket {
		logger.Info("getting marketplace listings")
		listings, err := client.MarketplaceListings(ctx, cfg.User.Name)
		if err != nil {
			return fmt.Errorf("fetching marketplace listings: %w", err)
		}
		if err := enrich.AddMarketplace(rows, enrich.DedupeListings(listings)); err != nil {
			return fmt.Errorf("joining marketplace prices: %w", err)
		}
	}

	tablePath := cfg.Data.SuggestedPlayersPath()
	if err := suggest.WriteTable(tablePath, rows); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	metrics := suggest.ComputeMetrics(rows)
	if err := suggest.WriteMetrics(cfg.Data.MetricsPath(), metrics); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	printSummary(rows, metrics, tablePath)
	return nil
}

func printSummary(rows []suggest.Row, metrics suggest.Metrics, tablePath string) {
	separators := 0
	for _, row := range rows {
		if row.Separator() {
			separators++
		}
	}

	fmt.Println(titleStyle.Render("bgg-shelf"))
	printLine("games", fmt.Sprintf("%d", metrics.NumGames))
	printLine("rows", fmt.Sprintf("%d (+%d separators)", len(rows)-separators, separators))
	if metrics.GameLastPlayed != "" {
		printLine("last played", metrics.GameLastPlayed)
	}
	if metrics.NumGamesForSale > 0 {
		printLine("for sale", fmt.Sprintf("%d (total %.2f)", metrics.NumGamesForSale, metrics.TotalMarketplaceValue))
	}
	printLine("table", tablePath)
}

func printLine(label, value string) {
	fmt.Printf("%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
