package model

import (
	"net/url"
	"strings"
)

// ThemeMode is the dashboard color scheme.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// BorderRadius is the corner rounding preset.
type BorderRadius string

const (
	RadiusNone   BorderRadius = "none"
	RadiusSmall  BorderRadius = "small"
	RadiusMedium BorderRadius = "medium"
	RadiusLarge  BorderRadius = "large"
	RadiusXLarge BorderRadius = "xlarge"
)

// SearchEngine is a query URL prefix the search bar can target.
type SearchEngine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

// Settings is the persisted dashboard configuration.
// It is stored as one unit and merged over DefaultSettings on load.
type Settings struct {
	BackgroundImage            string         `json:"backgroundImage"`
	BackgroundImageLight       string         `json:"backgroundImageLight"`
	CustomBackgroundImage      string         `json:"customBackgroundImage"`
	CustomBackgroundImageLight string         `json:"customBackgroundImageLight"`
	BackgroundOverlayDark      float64        `json:"backgroundOverlayDark"`
	BackgroundOverlayLight     float64        `json:"backgroundOverlayLight"`
	BackgroundBlurDark         int            `json:"backgroundBlurDark"`
	BackgroundBlurLight        int            `json:"backgroundBlurLight"`
	DefaultSearchEngine        string         `json:"defaultSearchEngine"`
	EnabledSearchEngines       []string       `json:"enabledSearchEngines"`
	CustomSearchEngines        []SearchEngine `json:"customSearchEngines"`
	ShowRecentVisits           bool           `json:"showRecentVisits"`
	ShowQuickLinks             bool           `json:"showQuickLinks"`
	ShowBookmarks              bool           `json:"showBookmarks"`
	ShowClock                  bool           `json:"showClock"`
	ShowSeconds                bool           `json:"showSeconds"`
	ClockColor                 string         `json:"clockColor"`
	ShowQuote                  bool           `json:"showQuote"`
	ShowThemeToggle            bool           `json:"showThemeToggle"`
	UserName                   string         `json:"userName"`
	ThemeMode                  ThemeMode      `json:"themeMode"`
	AccentColor                string         `json:"accentColor"`
	ShowWallpaperButton        bool           `json:"showWallpaperButton"`
	RandomWallpaperImage       string         `json:"randomWallpaperImage"`
	RandomWallpaperImageLight  string         `json:"randomWallpaperImageLight"`
	Locale                     string         `json:"locale"`
	BorderRadius               BorderRadius   `json:"borderRadius"`
}

// DefaultEnabledEngineIDs are the engines enabled on a fresh install.
var DefaultEnabledEngineIDs = []string{"google", "baidu", "bing", "github"}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		BackgroundImage:        "/wallpapers/dark-default.jpg",
		BackgroundImageLight:   "/wallpapers/light-default.jpg",
		BackgroundOverlayDark:  0.6,
		BackgroundOverlayLight: 0.3,
		BackgroundBlurDark:     0,
		BackgroundBlurLight:    8,
		DefaultSearchEngine:    "google",
		EnabledSearchEngines:   append([]string(nil), DefaultEnabledEngineIDs...),
		CustomSearchEngines:    []SearchEngine{},
		ShowRecentVisits:       true,
		ShowQuickLinks:         true,
		ShowBookmarks:          true,
		ShowClock:              true,
		ClockColor:             "#ffffff",
		ShowQuote:              true,
		ThemeMode:              ThemeDark,
		AccentColor:            "#f59e0b",
		Locale:                 "zh-CN",
		BorderRadius:           RadiusMedium,
	}
}

// ActiveWallpaper returns the wallpaper for the current theme,
// preferring a custom image over a random one over the default.
func (s Settings) ActiveWallpaper() string {
	if s.ThemeMode == ThemeLight {
		return firstNonEmpty(s.CustomBackgroundImageLight, s.RandomWallpaperImageLight, s.BackgroundImageLight)
	}
	return firstNonEmpty(s.CustomBackgroundImage, s.RandomWallpaperImage, s.BackgroundImage)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// AllSearchEngines lists the built-in engines.
var AllSearchEngines = []SearchEngine{
	{ID: "baidu", Name: "百度", URL: "https://www.baidu.com/s?wd="},
	{ID: "google", Name: "Google", URL: "https://www.google.com/search?q="},
	{ID: "bing", Name: "必应", URL: "https://www.bing.com/search?q="},
	{ID: "yandex", Name: "Yandex", URL: "https://yandex.com/search/?text="},
	{ID: "so", Name: "综合搜索", URL: "https://www.so.com/s?q="},
	{ID: "sogou", Name: "搜狗", URL: "https://www.sogou.com/web?query="},
	{ID: "metaso", Name: "秘塔AI", URL: "https://metaso.cn/?q="},
	{ID: "github", Name: "GitHub", URL: "https://github.com/search?q="},
	{ID: "bilibili", Name: "哔哩哔哩", URL: "https://search.bilibili.com/all?keyword="},
	{ID: "duckduckgo", Name: "DuckDuckGo", URL: "https://duckduckgo.com/?q="},
	{ID: "zhihu", Name: "知乎", URL: "https://www.zhihu.com/search?type=content&q="},
	{ID: "stackoverflow", Name: "StackOverflow", URL: "https://stackoverflow.com/search?q="},
	{ID: "mdn", Name: "MDN", URL: "https://developer.mozilla.org/zh-CN/search?q="},
	{ID: "yahoo", Name: "Yahoo", URL: "https://search.yahoo.com/search?p="},
	{ID: "scholar", Name: "Google Scholar", URL: "https://scholar.google.com/scholar?q="},
}

// EnabledEngines resolves engine ids against built-in and custom engines,
// keeping the order of ids and dropping unknown ones.
func EnabledEngines(ids []string, custom []SearchEngine) []SearchEngine {
	all := make(map[string]SearchEngine, len(AllSearchEngines)+len(custom))
	for _, e := range AllSearchEngines {
		all[e.ID] = e
	}
	for _, e := range custom {
		all[e.ID] = e
	}

	var result []SearchEngine
	for _, id := range ids {
		if e, ok := all[id]; ok {
			result = append(result, e)
		}
	}
	return result
}

// SearchURL builds the query URL for engine.
func SearchURL(engine SearchEngine, query string) string {
	return engine.URL + url.QueryEscape(strings.TrimSpace(query))
}
