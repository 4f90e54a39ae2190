package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cinema-times/internal/calendar"
	"github.com/pfrederiksen/cinema-times/internal/config"
	"github.com/pfrederiksen/cinema-times/internal/logger"
	"github.com/pfrederiksen/cinema-times/internal/ratings"
	"github.com/pfrederiksen/cinema-times/internal/ratings/cache"
	"github.com/pfrederiksen/cinema-times/internal/scraper"
	"github.com/pfrederiksen/cinema-times/internal/site"
	"github.com/pfrederiksen/cinema-times/internal/storage"
	"github.com/pfrederiksen/cinema-times/internal/titles"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig       string
	flagCinemaURL    string
	flagCinemaName   string
	flagOutput       string
	flagICal         string
	flagHTML         string
	flagAPIKey       string
	flagSkipScores   bool
	flagForceRefresh bool
	flagLimit        int
	flagCachePath    string
	flagDataDir      string
	flagFormat       string
	flagSort         string
	flagVerbose      bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cinema-times",
		Short: "Scrape cinema showtimes and rate the films",
		Long: `A CLI tool that scrapes a cinema's showtimes guide, cleans the movie
titles, looks up Rotten Tomatoes/Metacritic/IMDb scores via OMDb, and writes
a JSON guide plus optional iCal feed and HTML viewer.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Optional YAML config file")
	cmd.Flags().StringVar(&flagCinemaURL, "cinema-url", "", "Cinema guide URL")
	cmd.Flags().StringVar(&flagCinemaName, "cinema-name", "", "Cinema display name")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output JSON file (default cinema-times.json)")
	cmd.Flags().StringVar(&flagICal, "ical", "", "Also write an iCal feed to this path")
	cmd.Flags().StringVar(&flagHTML, "html", "", "Also write an HTML viewer to this path")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", os.Getenv("OMDB_API_KEY"), "OMDb API key (or env: OMDB_API_KEY)")
	cmd.Flags().BoolVar(&flagSkipScores, "skip-scores", false, "Skip the ratings lookup entirely")
	cmd.Flags().BoolVar(&flagForceRefresh, "force-refresh", false, "Ignore cached scores and re-fetch everything")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Limit number of titles to score (0 = no limit)")
	cmd.Flags().StringVar(&flagCachePath, "cache-path", "", "Score cache database path (default under data dir)")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/cinema-times", "Data directory for the score cache")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Run summary format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "time", "Showing sort order: time or title")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// resolveConfig loads the config file (or defaults) and applies flag overrides
func resolveConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if flagCinemaURL != "" {
		cfg.Cinema.URL = flagCinemaURL
	}
	if flagCinemaName != "" {
		cfg.Cinema.Name = flagCinemaName
	}
	if flagOutput != "" {
		cfg.Output.JSON = flagOutput
	}
	if flagICal != "" {
		cfg.Output.ICal = flagICal
	}
	if flagHTML != "" {
		cfg.Output.HTML = flagHTML
	}
	if flagAPIKey != "" {
		cfg.OMDb.APIKey = flagAPIKey
	}
	if flagCachePath != "" {
		cfg.OMDb.CachePath = flagCachePath
	}
	if cfg.OMDb.CachePath == "" {
		cfg.OMDb.CachePath = filepath.Join(expandHome(flagDataDir), "scores.db")
	}

	return cfg, nil
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	sortOrder := SortOrder(strings.ToLower(flagSort))
	if sortOrder != SortByTime && sortOrder != SortByTitle {
		return fmt.Errorf("invalid sort order: %s (must be 'time' or 'title')", flagSort)
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Output.JSON)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	// Scrape
	sc := scraper.New(cfg.Cinema.URL, cfg.Cinema.Name)
	logger.Debug("Fetching guide", logger.Fields{"url": cfg.Cinema.URL})

	fetchStart := time.Now()
	showings, err := sc.FetchShowings()
	if err != nil {
		return fmt.Errorf("fetching showings: %w", err)
	}
	logger.RecordTiming("scrape.fetch", time.Since(fetchStart))
	logger.AddCounter("showings.scraped", int64(len(showings)))

	logger.Info("Scraped guide", logger.Fields{
		"cinema":   cfg.Cinema.Name,
		"showings": len(showings),
	})

	// Clean titles
	cleaned := 0
	for _, sh := range showings {
		title, tags := titles.Clean(sh.RawTitle)
		if title != sh.RawTitle {
			cleaned++
		}
		sh.Title = title
		sh.TitleTags = tags
	}
	if cleaned > 0 {
		logger.Debug("Cleaned titles", logger.Fields{"changed": cleaned})
	}

	sortShowings(showings, sortOrder)

	guide := storage.NewGuide(cfg.Cinema.Name, cfg.Cinema.URL)
	guide.Showings = showings

	summary := &RunSummary{
		ScrapedAt:    time.Now().UTC(),
		Cinema:       cfg.Cinema.Name,
		ShowingCount: len(showings),
		UniqueTitles: len(guide.UniqueTitles()),
		OutputPath:   store.Path(),
	}

	// Score lookup
	if flagSkipScores {
		logger.Info("Score lookup skipped by flag", nil)
	} else if cfg.OMDb.APIKey == "" {
		logger.Warn("No OMDb API key: score lookup disabled", logger.Fields{
			"hint": "set OMDB_API_KEY or pass --api-key",
		})
	} else {
		summary.ScoredTitles, summary.MissingTitles = fetchScores(cfg, guide)
	}

	// Write outputs
	if err := store.Save(guide); err != nil {
		return fmt.Errorf("saving guide: %w", err)
	}
	logger.Info("Saved guide", logger.Fields{"path": store.Path(), "showings": len(showings)})

	if cfg.Output.ICal != "" {
		ics, events := calendar.GenerateICS(guide.Showings)
		if skipped := len(guide.Showings) - events; skipped > 0 {
			logger.Warn("Skipped showings with unparseable times", logger.Fields{"skipped": skipped})
		}
		if err := os.WriteFile(cfg.Output.ICal, []byte(ics), 0644); err != nil {
			return fmt.Errorf("writing iCal feed: %w", err)
		}
		summary.ICalPath = cfg.Output.ICal
		summary.ICalEvents = events
		logger.Info("Wrote iCal feed", logger.Fields{"path": cfg.Output.ICal, "events": events})
	}

	if cfg.Output.HTML != "" {
		if err := site.WriteFile(cfg.Output.HTML, guide); err != nil {
			return fmt.Errorf("writing HTML viewer: %w", err)
		}
		summary.HTMLPath = cfg.Output.HTML
		logger.Info("Wrote HTML viewer", logger.Fields{"path": cfg.Output.HTML})
	}

	if flagVerbose {
		logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	}

	return WriteOutput(os.Stdout, summary, format, flagVerbose)
}

// fetchScores looks up every unique title and merges the results into the
// guide. Individual lookup failures are logged and skipped; the guide still
// carries every showing.
func fetchScores(cfg *config.Config, guide *storage.Guide) (scored, missing int) {
	var scoreCache cache.Cache
	sqlCache, err := cache.NewSQLiteCache(cfg.OMDb.CachePath)
	if err != nil {
		logger.Warn("Score cache unavailable, continuing without", logger.Fields{
			"path": cfg.OMDb.CachePath,
		})
	} else {
		scoreCache = sqlCache
		defer sqlCache.Close()
	}

	client := ratings.NewClient(ratings.Config{
		APIKey:       cfg.OMDb.APIKey,
		Cache:        scoreCache,
		CacheTTL:     time.Duration(cfg.OMDb.CacheTTLDays) * 24 * time.Hour,
		RateDelay:    time.Duration(cfg.OMDb.RateLimitDelayMs) * time.Millisecond,
		MaxAttempts:  cfg.OMDb.MaxAttempts,
		ForceRefresh: flagForceRefresh,
	})

	uniqueTitles := guide.UniqueTitles()
	if flagLimit > 0 && len(uniqueTitles) > flagLimit {
		logger.Debug("Limiting scored titles", logger.Fields{"limit": flagLimit})
		uniqueTitles = uniqueTitles[:flagLimit]
	}

	records := make(map[string]*ratings.ScoreRecord)
	for _, title := range uniqueTitles {
		lookupStart := time.Now()
		rec, err := client.Lookup(title)
		logger.RecordTiming("scores.lookup", time.Since(lookupStart))

		if err != nil {
			logger.Error("Ratings lookup failed", logger.Fields{"title": title}, err)
			logger.IncrCounter("scores.errors")
			continue
		}

		records[strings.ToLower(title)] = rec
		if rec.HasScore {
			scored++
			logger.Debug("Scored title", logger.Fields{
				"title":     title,
				"composite": rec.CompositeScore,
				"sources":   rec.Sources,
			})
		} else {
			missing++
			logger.Debug("No scores found", logger.Fields{"title": title})
		}
	}

	updated := guide.MergeScores(records)
	logger.Info("Merged scores", logger.Fields{
		"scored_titles":  scored,
		"missing_titles": missing,
		"showings":       updated,
	})

	return scored, missing
}

// expandHome expands a leading ~/ to the user's home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
