// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/tesso57/gazette/internal/application/settings"
	"github.com/tesso57/gazette/internal/domain/news"
)

// Store manages persisted application settings.
type Store struct {
	Settings settings.Settings
	// Warnings collects recoverable configuration problems for a
	// one-time report at startup.
	Warnings   []*news.ConfigError
	configPath string
}

// Load reads the configuration from the given path or the default
// location, writing a default file on first run.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(home, ".config", "gazette", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := settings.Settings{}
	store := &Store{configPath: configPath}

	var options []kong.Option
	if data, err := os.ReadFile(configPath); err == nil {
		// Map-valued settings are invisible to kong, so they are
		// decoded straight from the file before flags resolve.
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse([]string{}); err != nil {
		return nil, err
	}

	store.Settings = cfg
	store.Settings.Sources.RSS.Feeds, store.Warnings = normalizeFeeds(store.Settings.Sources.RSS.Feeds)

	if store.Settings.BookmarksFile == "" {
		store.Settings.BookmarksFile = filepath.Join(defaultDataHome(), "gazette", "bookmarks.db")
	}
	if store.Settings.ThemesDir == "" {
		store.Settings.ThemesDir = filepath.Join(filepath.Dir(configPath), "themes")
	}

	// Save defaults if new file
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return store, nil
}

// normalizeFeeds drops feeds whose URL cannot be fetched, reporting
// each dropped entry.
func normalizeFeeds(feeds map[string]string) (map[string]string, []*news.ConfigError) {
	if len(feeds) == 0 {
		return feeds, nil
	}
	valid := make(map[string]string, len(feeds))
	var warnings []*news.ConfigError
	for name, raw := range feeds {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			warnings = append(warnings, &news.ConfigError{
				Name:   name,
				Reason: fmt.Sprintf("invalid feed URL %q", raw),
			})
			continue
		}
		valid[name] = u.String()
	}
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Name < warnings[j].Name })
	return valid, warnings
}

func defaultDataHome() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome != "" {
		return dataHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultLogDir returns where log files go.
func DefaultLogDir() string {
	return filepath.Join(defaultDataHome(), "gazette", "logs")
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil // Return nil resolver (no op)
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		// Try various naming conventions
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			// Check direct match
			if v, ok := values[name]; ok {
				return v, nil
			}

			// Check nested dot-notation
			parts := strings.Split(name, ".")
			if len(parts) > 1 {
				curr := values
				for i, part := range parts {
					if i == len(parts)-1 {
						if v, ok := curr[part]; ok {
							return v, nil
						}
					} else {
						if nextMap, ok := curr[part].(map[string]any); ok {
							curr = nextMap
						} else {
							break
						}
					}
				}
			}
		}
		return nil, nil
	}
	return f, nil
}

// SetTheme records a new theme choice and saves the configuration.
func (s *Store) SetTheme(name string) error {
	s.Settings.Theme = name
	return s.Save()
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.configPath
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return yaml.NewEncoder(f).Encode(s.Settings)
}
