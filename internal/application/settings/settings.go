// Package settings defines application-level configuration data.
package settings

import (
	"sort"
	"time"
)

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up            string `yaml:"up" kong:"help='Up key',default='k'"`
	Down          string `yaml:"down" kong:"help='Down key',default='j'"`
	Left          string `yaml:"left" kong:"help='Focus pane left key',default='h'"`
	Right         string `yaml:"right" kong:"help='Focus pane right key',default='l'"`
	UpPage        string `yaml:"up_page" kong:"help='Page Up key',default='ctrl+u'"`
	DownPage      string `yaml:"down_page" kong:"help='Page Down key',default='ctrl+d'"`
	Top           string `yaml:"top" kong:"help='Top key',default='g'"`
	Bottom        string `yaml:"bottom" kong:"help='Bottom key',default='G'"`
	Open          string `yaml:"open" kong:"help='Open key',default='enter'"`
	Back          string `yaml:"back" kong:"help='Back key',default='esc'"`
	Quit          string `yaml:"quit" kong:"help='Quit key',default='q'"`
	Refresh       string `yaml:"refresh" kong:"help='Refresh key',default='r'"`
	Bookmark      string `yaml:"bookmark" kong:"help='Toggle bookmark key',default='b'"`
	Bookmarks     string `yaml:"bookmarks" kong:"help='Bookmarks view key',default='B'"`
	Filter        string `yaml:"filter" kong:"help='Filter headlines key',default='/'"`
	Palette       string `yaml:"palette" kong:"help='Command palette key',default='ctrl+p'"`
	Settings      string `yaml:"settings" kong:"help='Settings key',default='s'"`
	ToggleSidebar string `yaml:"toggle_sidebar" kong:"help='Toggle sections pane key',default='t'"`
	OpenBrowser   string `yaml:"open_browser" kong:"help='Open story in browser key',default='o'"`
}

// CBCConfig configures the scraped CBC Lite source.
// An empty section list means "all available".
type CBCConfig struct {
	Sections []string `yaml:"sections" kong:"help='CBC sections to load (empty means all available)'"`
}

// RSSConfig configures RSS/Atom feeds as a feed-name to URL mapping.
type RSSConfig struct {
	Feeds map[string]string `yaml:"feeds" kong:"-"`
}

// SourcesConfig groups per-source configuration.
type SourcesConfig struct {
	CBC CBCConfig `yaml:"cbc" kong:"embed,prefix='cbc.'"`
	RSS RSSConfig `yaml:"rss" kong:"embed"`
}

// FetchConfig tunes the aggregation engine.
type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds" kong:"help='Per-request fetch deadline in seconds',default='15'"`
	Retries        int `yaml:"retries" kong:"help='Fetch attempts per request',default='4'"`
	Parallelism    int `yaml:"parallelism" kong:"help='Max concurrent section fetches',default='4'"`
}

// Timeout returns the per-request fetch deadline.
func (f FetchConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Settings represents the application configuration.
type Settings struct {
	Theme         string              `yaml:"theme" kong:"help='Color theme name',default='dracula'"`
	Source        string              `yaml:"source" kong:"help='Default source (cbc or rss)',default='cbc',enum='cbc,rss'"`
	Sources       SourcesConfig       `yaml:"sources" kong:"embed,prefix='sources.'"`
	MetaSections  map[string][]string `yaml:"meta_sections" kong:"-"`
	Fetch         FetchConfig         `yaml:"fetch" kong:"embed,prefix='fetch.'"`
	KeyMap        KeyMapConfig        `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	ThemesDir     string              `yaml:"themes_dir" kong:"help='Directory of user theme files'"`
	BookmarksFile string              `yaml:"bookmarks_file" kong:"help='Bookmarks database path'"`
	Debug         bool                `yaml:"debug" kong:"help='Enable debug logging'"`
}

// RSSFeedNames returns the configured feed names in deterministic
// (sorted) order, since the yaml mapping carries none.
func (s Settings) RSSFeedNames() []string {
	names := make([]string, 0, len(s.Sources.RSS.Feeds))
	for name := range s.Sources.RSS.Feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MetaNames returns the configured meta section names in deterministic
// (sorted) order.
func (s Settings) MetaNames() []string {
	names := make([]string, 0, len(s.MetaSections))
	for name := range s.MetaSections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
