package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tesso57/gazette/internal/application/usecase"
	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/bookmarks"
	"github.com/tesso57/gazette/internal/infrastructure/config"
	"github.com/tesso57/gazette/internal/infrastructure/logging"
	"github.com/tesso57/gazette/internal/infrastructure/source"
	"github.com/tesso57/gazette/internal/infrastructure/source/cbc"
	"github.com/tesso57/gazette/internal/infrastructure/source/rss"
	"github.com/tesso57/gazette/internal/infrastructure/theme"
	"github.com/tesso57/gazette/internal/presentation/tui"
	"github.com/tesso57/gazette/internal/presentation/tui/update"
)

var cli struct {
	Config       string `help:"Config file path." type:"path"`
	Theme        string `help:"Color theme for this session."`
	Debug        bool   `help:"Enable debug logging."`
	ListSections bool   `help:"Print the sections CBC currently serves and exit."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("gazette"),
		kong.Description("A terminal news reader for CBC Lite and RSS feeds."),
	)
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gazette:", err)
		os.Exit(1)
	}
}

func run() error {
	store, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := store.Settings
	if cli.Theme != "" {
		cfg.Theme = cli.Theme
	}
	if cli.Debug {
		cfg.Debug = true
	}

	client := source.NewHTTPClient()
	cbcSource := cbc.New(client, cfg.Sources.CBC.Sections, cfg.Fetch.Retries)
	if cli.ListSections {
		return listSections(cbcSource, cfg.Fetch.Timeout())
	}

	logger, logFile, err := logging.Open(config.DefaultLogDir(), cfg.Debug)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	// The default source's sections lead the sidebar.
	rssSource := rss.New(cfg.Sources.RSS.Feeds, cfg.RSSFeedNames())
	adapters := []source.Adapter{cbcSource, rssSource}
	if cfg.Source == "rss" {
		adapters = []source.Adapter{rssSource, cbcSource}
	}

	registry := source.Build(adapters, cfg.MetaSections, cfg.MetaNames())

	var notices []string
	problems := make([]*news.ConfigError, 0, len(store.Warnings)+len(registry.Errors()))
	problems = append(problems, store.Warnings...)
	problems = append(problems, registry.Errors()...)
	for _, cerr := range problems {
		logger.Warn("configuration problem", "name", cerr.Name, "reason", cerr.Reason)
		notices = append(notices, cerr.Error())
	}

	aggregate := usecase.NewAggregateService(registry, cfg.Fetch.Timeout(), cfg.Fetch.Parallelism)
	content := usecase.NewContentService(registry, cfg.Fetch.Timeout())

	var repo usecase.BookmarkRepository
	if db, err := bookmarks.Open(cfg.BookmarksFile); err != nil {
		logger.Warn("bookmark store unavailable, continuing in memory", "path", cfg.BookmarksFile, "err", err)
	} else {
		repo = db
		defer func() { _ = db.Close() }()
	}
	bookmarkSvc := usecase.NewBookmarkService(repo, logger, time.Now)

	themesDir := cfg.ThemesDir
	if active, ok := theme.Load(themesDir, cfg.Theme); !ok {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme, "fallback", active.Name)
	}

	model := tui.NewModel(cfg, aggregate, content, bookmarkSvc, tui.Options{
		LoadTheme:  func(name string) (theme.Theme, bool) { return theme.Load(themesDir, name) },
		SaveTheme:  store.SetTheme,
		ThemeNames: func() []string { return theme.Names(themesDir) },
		Logger:     logger,
		Notices:    notices,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	if watcher, err := theme.Watch(themesDir); err != nil {
		logger.Warn("theme watcher unavailable", "dir", themesDir, "err", err)
	} else {
		defer func() { _ = watcher.Close() }()
		go func() {
			for name := range watcher.Events() {
				if t, ok := theme.Load(themesDir, name); ok {
					program.Send(update.ThemeChangedMsg{Theme: t})
				}
			}
		}()
	}

	logger.Info("starting", "sections", len(registry.PhysicalSections()), "metas", len(registry.MetaSections()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func listSections(src *cbc.Source, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	names, err := src.DiscoverSections(ctx)
	if err != nil {
		return fmt.Errorf("discover sections: %w", err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
