// Package config loads application configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/chmouel/lazystatus/internal/theme"
	"gopkg.in/yaml.v3"
)

// Removal strategy names accepted by the removal option. "auto" probes the
// PATH once at startup for a trash helper.
const (
	RemovalAuto      = "auto"
	RemovalPermanent = "permanent"
	RemovalTrashPut  = "trash-put"
	RemovalRmtrash   = "rmtrash"
)

var removalStrategies = []string{RemovalAuto, RemovalPermanent, RemovalTrashPut, RemovalRmtrash}

// AppConfig defines the global lazystatus configuration options.
type AppConfig struct {
	Theme           string   // Theme name: see AvailableThemes in internal/theme
	ShowIcons       bool     // Render Nerd Font icons next to candidate paths (default: true)
	Pager           string   // Pager for full-screen text views
	Editor          string   // Editor for opening candidate files
	GitPager        string   // Diff formatter piped over previews (default: "delta")
	GitPagerArgs    []string // Extra arguments for the diff formatter
	GitPagerArgsSet bool     `yaml:"-"`
	AutoRefresh     bool     // Watch the repository and reload the listing on changes (default: true)
	StrictGitErrors bool     // Surface status subprocess failures instead of showing an empty list
	Removal         string   // How reset deletes untracked files: auto, permanent, trash-put, rmtrash
	DebugLog        string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		ShowIcons:    true,
		GitPager:     "delta",
		GitPagerArgs: DefaultGitPagerArgsForTheme(theme.DraculaName),
		AutoRefresh:  true,
		Removal:      RemovalAuto,
	}
}

// flexBool accepts bool, numeric, and common string spellings so configs
// written with quoted or vim-style values still parse. Unrecognised values
// leave the default untouched.
type flexBool struct {
	set   bool
	value bool
}

func (b *flexBool) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if parsed, ok := parseBool(raw); ok {
		b.set = true
		b.value = parsed
	}
	return nil
}

func parseBool(raw any) (value, ok bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true, true
		case "0", "false", "no", "n", "off":
			return false, true
		}
	}
	return false, false
}

// argsList accepts either a whitespace-separated string or a YAML sequence.
type argsList struct {
	set    bool
	values []string
}

func (a *argsList) UnmarshalYAML(node *yaml.Node) error {
	a.set = true
	a.values = []string{}
	switch node.Kind {
	case yaml.ScalarNode:
		a.values = splitArgs(node.Value)
	case yaml.SequenceNode:
		var items []any
		if err := node.Decode(&items); err != nil {
			return err
		}
		for _, item := range items {
			if item == nil {
				continue
			}
			if text := strings.TrimSpace(fmt.Sprintf("%v", item)); text != "" {
				a.values = append(a.values, text)
			}
		}
	}
	return nil
}

func splitArgs(value string) []string {
	return strings.Fields(strings.TrimSpace(value))
}

func normalizeRemoval(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if slices.Contains(removalStrategies, value) {
		return value
	}
	return ""
}

// rawConfig is the YAML shape of the config file. Fields that need to
// distinguish "absent" from "set to a zero value" use pointers or carry
// their own set flag.
type rawConfig struct {
	Theme           string   `yaml:"theme"`
	ShowIcons       flexBool `yaml:"show_icons"`
	Pager           string   `yaml:"pager"`
	Editor          string   `yaml:"editor"`
	GitPager        *string  `yaml:"git_pager"`
	GitPagerArgs    argsList `yaml:"git_pager_args"`
	AutoRefresh     flexBool `yaml:"auto_refresh"`
	StrictGitErrors flexBool `yaml:"strict_git_errors"`
	Removal         string   `yaml:"removal"`
	DebugLog        string   `yaml:"debug_log"`
}

// merge layers the file values over cfg. Invalid values keep the default
// rather than failing the load.
func (raw *rawConfig) merge(cfg *AppConfig) {
	if text := strings.TrimSpace(raw.DebugLog); text != "" {
		cfg.DebugLog = text
	}
	if text := strings.TrimSpace(raw.Pager); text != "" {
		cfg.Pager = text
	}
	if text := strings.TrimSpace(raw.Editor); text != "" {
		cfg.Editor = text
	}
	if raw.ShowIcons.set {
		cfg.ShowIcons = raw.ShowIcons.value
	}
	if raw.AutoRefresh.set {
		cfg.AutoRefresh = raw.AutoRefresh.value
	}
	if raw.StrictGitErrors.set {
		cfg.StrictGitErrors = raw.StrictGitErrors.value
	}
	if normalized := normalizeRemoval(raw.Removal); normalized != "" {
		cfg.Removal = normalized
	}
	if raw.GitPager != nil {
		cfg.GitPager = strings.TrimSpace(*raw.GitPager)
	}
	if raw.GitPagerArgs.set {
		cfg.GitPagerArgs = raw.GitPagerArgs.values
		cfg.GitPagerArgsSet = true
	}
	if normalized := NormalizeThemeName(raw.Theme); normalized != "" {
		cfg.Theme = normalized
	}
	if !cfg.GitPagerArgsSet {
		cfg.GitPagerArgs = DefaultGitPagerArgsForTheme(cfg.Theme)
	}
}

// ApplyCLIOverrides applies command line "key=value" pairs on top of the
// loaded configuration, the highest precedence layer. Keys may carry the
// "ls." prefix used in documentation, e.g. "ls.theme=nord".
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		if !found {
			return fmt.Errorf("invalid override %q, expected key=value", override)
		}
		key = strings.TrimPrefix(strings.TrimSpace(key), "ls.")
		value = strings.TrimSpace(value)

		switch key {
		case "theme":
			normalized := NormalizeThemeName(value)
			if normalized == "" {
				return fmt.Errorf("unknown theme %q", value)
			}
			c.Theme = normalized
		case "show_icons":
			if parsed, ok := parseBool(value); ok {
				c.ShowIcons = parsed
			}
		case "pager":
			c.Pager = value
		case "editor":
			c.Editor = value
		case "git_pager":
			c.GitPager = value
		case "git_pager_args":
			c.GitPagerArgs = splitArgs(value)
			c.GitPagerArgsSet = true
		case "auto_refresh":
			if parsed, ok := parseBool(value); ok {
				c.AutoRefresh = parsed
			}
		case "strict_git_errors":
			if parsed, ok := parseBool(value); ok {
				c.StrictGitErrors = parsed
			}
		case "removal":
			normalized := normalizeRemoval(value)
			if normalized == "" {
				return fmt.Errorf("unknown removal strategy %q", value)
			}
			c.Removal = normalized
		case "debug_log":
			c.DebugLog = value
		default:
			return fmt.Errorf("unknown configuration key %q", key)
		}
	}
	return nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// searchPaths validates an explicit config path or lists the default
// candidates. Explicit paths must stay inside the lazystatus config
// directory.
func searchPaths(base, explicit string) ([]string, error) {
	if explicit == "" {
		return []string{
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
		}, nil
	}
	expanded, err := expandPath(explicit)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, err
	}
	if !isPathWithin(base, abs) {
		return nil, fmt.Errorf("config path must reside inside %s", base)
	}
	return []string{abs}, nil
}

// LoadConfig reads the application configuration from a YAML file. A file
// that fails to parse falls back to the defaults rather than running with
// half a config.
func LoadConfig(configPath string) (*AppConfig, error) {
	base := filepath.Clean(filepath.Join(configDir(), "lazystatus"))

	paths, err := searchPaths(base, configPath)
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	for _, path := range paths {
		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var raw rawConfig
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return DefaultConfig(), nil
		}
		raw.merge(cfg)
		break
	}

	if cfg.Theme == "" {
		if detected, err := theme.DetectBackground(500 * time.Millisecond); err == nil {
			cfg.Theme = detected
		} else {
			cfg.Theme = theme.DefaultDark()
		}
		if !cfg.GitPagerArgsSet {
			cfg.GitPagerArgs = DefaultGitPagerArgsForTheme(cfg.Theme)
		}
	}

	return cfg, nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}

// deltaSyntaxThemes pairs each UI theme with delta's matching syntax theme.
// Multi-word names keep their quotes because the args later pass through a
// shell.
var deltaSyntaxThemes = map[string]string{
	theme.DraculaName:         "Dracula",
	theme.CleanLightName:      "GitHub",
	theme.SolarizedDarkName:   `"Solarized (dark)"`,
	theme.SolarizedLightName:  `"Solarized (light)"`,
	theme.GruvboxDarkName:     `"Gruvbox Dark"`,
	theme.NordName:            `"Nord"`,
	theme.CatppuccinMochaName: `"Catppuccin Mocha"`,
	theme.CatppuccinLatteName: `"Catppuccin Latte"`,
}

// DefaultGitPagerArgsForTheme returns the default diff formatter arguments
// for a given theme.
func DefaultGitPagerArgsForTheme(themeName string) []string {
	syntax, ok := deltaSyntaxThemes[themeName]
	if !ok {
		syntax = "Dracula"
	}
	return []string{"--syntax-theme", syntax}
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if slices.Contains(theme.AvailableThemes(), name) {
		return name
	}
	return ""
}
