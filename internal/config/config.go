package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kk-code-lab/ansigen/internal/styling"
)

const (
	appName        = "ansigen"
	fileName       = "config.toml"
	envConfigPath  = "ANSIGEN_CONFIG"
	defaultLang    = "ansi"
	defaultSeed    = "Welcome to Discord Text Generator!"
	defaultFgColor = "#ffffff"
	defaultBgColor = "#36393f"
)

// DefaultPalette approximates the colors chat clients render for ANSI blocks.
var DefaultPalette = []string{
	"#ffffff",
	"#4f545c",
	"#dc322f",
	"#859900",
	"#b58900",
	"#268bd2",
	"#d33682",
	"#2aa198",
}

// Config is the user configuration.
type Config struct {
	SeedText  string          `toml:"seed_text"`
	Language  string          `toml:"language"`
	Coalesce  bool            `toml:"coalesce"`
	Palette   []string        `toml:"palette"`
	Default   ColorsConfig    `toml:"default"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Debug     bool            `toml:"debug"`

	// Source is the file the configuration was read from, if any.
	Source string `toml:"-"`
}

// ColorsConfig holds a foreground/background pair as hex strings.
type ColorsConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// ClipboardConfig overrides clipboard detection.
type ClipboardConfig struct {
	Command []string `toml:"command"`
}

// Default returns the builtin configuration.
func Default() Config {
	return Config{
		SeedText: defaultSeed,
		Language: defaultLang,
		Palette:  append([]string(nil), DefaultPalette...),
		Default: ColorsConfig{
			Foreground: defaultFgColor,
			Background: defaultBgColor,
		},
	}
}

// FileSystem abstracts file reads so tests can supply content.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS reads from the real file system.
func DefaultFS() FileSystem {
	return osFS{}
}

// Loader resolves configuration from a TOML file and the environment.
type Loader struct {
	fs        FileSystem
	getenv    func(string) string
	configDir func() (string, error)
}

// NewLoader returns a loader backed by the OS.
func NewLoader() *Loader {
	return &Loader{
		fs:        DefaultFS(),
		getenv:    os.Getenv,
		configDir: os.UserConfigDir,
	}
}

// NewLoaderWithFS returns a loader with injected dependencies.
func NewLoaderWithFS(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{
		fs:     fs,
		getenv: getenv,
		configDir: func() (string, error) {
			return "", errors.New("no config dir")
		},
	}
}

// Load reads the configuration. An explicit path must exist; the default
// locations may be absent. Environment variables override file values.
func (l *Loader) Load(explicitPath string) (Config, error) {
	cfg := Default()

	path, required := l.resolvePath(explicitPath)
	if path != "" {
		data, err := l.fs.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, &cfg); err != nil {
				return cfg, err
			}
			cfg.Source = path
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.Validate()
	return cfg, nil
}

func (l *Loader) resolvePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := l.getenv(envConfigPath); env != "" {
		return env, true
	}
	if xdg := l.getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fileName), false
	}
	dir, err := l.configDir()
	if err != nil || dir == "" {
		return "", false
	}
	return filepath.Join(dir, appName, fileName), false
}

// decode overlays the non-empty values of a TOML document on cfg.
func decode(source string, data []byte, cfg *Config) error {
	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			pe.Line, pe.Column = decodeErr.Position()
		}
		return pe
	}
	if file.SeedText != "" {
		cfg.SeedText = file.SeedText
	}
	if file.Language != "" {
		cfg.Language = file.Language
	}
	if len(file.Palette) > 0 {
		cfg.Palette = file.Palette
	}
	if file.Default.Foreground != "" {
		cfg.Default.Foreground = file.Default.Foreground
	}
	if file.Default.Background != "" {
		cfg.Default.Background = file.Default.Background
	}
	if len(file.Clipboard.Command) > 0 {
		cfg.Clipboard.Command = file.Clipboard.Command
	}
	cfg.Coalesce = cfg.Coalesce || file.Coalesce
	cfg.Debug = cfg.Debug || file.Debug
	return nil
}

func (l *Loader) applyEnv(cfg *Config) error {
	if v := l.getenv("ANSIGEN_SEED_TEXT"); v != "" {
		cfg.SeedText = v
	}
	if v := l.getenv("ANSIGEN_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := l.getenv("ANSIGEN_DEFAULT_FG"); v != "" {
		cfg.Default.Foreground = v
	}
	if v := l.getenv("ANSIGEN_DEFAULT_BG"); v != "" {
		cfg.Default.Background = v
	}
	if v := l.getenv("ANSIGEN_CLIPBOARD"); v != "" {
		cfg.Clipboard.Command = strings.Fields(v)
	}
	for name, dst := range map[string]*bool{
		"ANSIGEN_COALESCE": &cfg.Coalesce,
		"ANSIGEN_DEBUG":    &cfg.Debug,
	} {
		v := l.getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*dst = b
	}
	return nil
}

// Validate drops unusable palette entries and restores builtin values for
// invalid default colors or an empty language.
func (c *Config) Validate() {
	if strings.TrimSpace(c.Language) == "" {
		c.Language = defaultLang
	}
	if !styling.ParseColor(c.Default.Foreground).Valid {
		c.Default.Foreground = defaultFgColor
	}
	if !styling.ParseColor(c.Default.Background).Valid {
		c.Default.Background = defaultBgColor
	}
	palette := c.Palette[:0]
	for _, hex := range c.Palette {
		if styling.ParseColor(hex).Valid {
			palette = append(palette, hex)
		}
	}
	c.Palette = palette
	if len(c.Palette) == 0 {
		c.Palette = append([]string(nil), DefaultPalette...)
	}
}

// PaletteColors parses the palette.
func (c Config) PaletteColors() []styling.Color {
	out := make([]styling.Color, 0, len(c.Palette))
	for _, hex := range c.Palette {
		if col := styling.ParseColor(hex); col.Valid {
			out = append(out, col)
		}
	}
	return out
}

// EncodeOptions returns the encoder settings.
func (c Config) EncodeOptions() styling.EncodeOptions {
	return styling.EncodeOptions{Language: c.Language, Coalesce: c.Coalesce}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
