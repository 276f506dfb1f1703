package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jask/headerscroll/internal/scroll"
)

// Config holds application configuration.
type Config struct {
	Scroll   ScrollConfig
	Database DatabaseConfig
	State    StateConfig
	UI       UIConfig
	Log      LogConfig
}

// ScrollConfig tunes the scroll engine. Distances are in offset units.
type ScrollConfig struct {
	MaxScroll          int     `mapstructure:"max_scroll"`
	AutoMaxScroll      bool    `mapstructure:"auto_max_scroll"`
	AutoMaxScrollChild string  `mapstructure:"auto_max_scroll_child"`
	Friction           float64 `mapstructure:"friction"`
	Flywheel           bool    `mapstructure:"flywheel"`
	Density            float64 `mapstructure:"density"`
	TouchSlop          float64 `mapstructure:"touch_slop"`
	MinFlingVelocity   float64 `mapstructure:"min_fling_velocity"`
	MinFlingDistance   float64 `mapstructure:"min_fling_distance"`

	ConsiderIdle    time.Duration `mapstructure:"consider_idle"`
	CloseUpDuration time.Duration `mapstructure:"close_up_duration"`
	CloseUpEasing   string        `mapstructure:"close_up_easing"`
	DefaultCloseUp  bool          `mapstructure:"default_close_up"`

	OverscrollDivisor int           `mapstructure:"overscroll_divisor"`
	RelaxDuration     time.Duration `mapstructure:"relax_duration"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StateConfig selects where saved container state lives.
type StateConfig struct {
	// Backend is "sqlite" or "file".
	Backend   string `mapstructure:"backend"`
	File      string `mapstructure:"file"`
	Container string `mapstructure:"container"`
}

// UIConfig holds terminal host settings.
type UIConfig struct {
	RowUnits     int  `mapstructure:"row_units"`
	FPS          int  `mapstructure:"fps"`
	HeaderRows   int  `mapstructure:"header_rows"`
	Pages        int  `mapstructure:"pages"`
	PageRows     int  `mapstructure:"page_rows"`
	Overscroll   bool `mapstructure:"overscroll"`
	Trace        bool `mapstructure:"trace"`
	TraceSeconds int  `mapstructure:"trace_seconds"`
}

// LogConfig holds logging settings. The terminal belongs to the UI, so
// logs only ever go to a file.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"

	envPrefix = "HEADERSCROLL"
	envConfig = "HEADERSCROLL_CONFIG"
)

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "headerscroll")
}

// Path returns the config file location, honouring HEADERSCROLL_CONFIG.
func Path() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "headerscroll", "config.toml")
}

// UsePath points Load, Watch and Save at path.
func UsePath(path string) error {
	return os.Setenv(envConfig, path)
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("scroll.max_scroll", 0)
	v.SetDefault("scroll.auto_max_scroll", true)
	v.SetDefault("scroll.auto_max_scroll_child", "header")
	v.SetDefault("scroll.friction", scroll.DefaultFriction)
	v.SetDefault("scroll.flywheel", false)
	v.SetDefault("scroll.density", 1.0)
	v.SetDefault("scroll.touch_slop", 8.0)
	v.SetDefault("scroll.min_fling_velocity", 50.0)
	v.SetDefault("scroll.min_fling_distance", 12.0)
	v.SetDefault("scroll.consider_idle", scroll.DefaultConsiderIdle)
	v.SetDefault("scroll.close_up_duration", scroll.DefaultCloseUpDuration)
	v.SetDefault("scroll.close_up_easing", "decelerate")
	v.SetDefault("scroll.default_close_up", true)
	v.SetDefault("scroll.overscroll_divisor", 2)
	v.SetDefault("scroll.relax_duration", scroll.DefaultRelaxDuration)
	v.SetDefault("database.path", filepath.Join(dataDir(), "headerscroll.db"))
	v.SetDefault("state.backend", BackendSQLite)
	v.SetDefault("state.file", filepath.Join(dataDir(), "state.json"))
	v.SetDefault("state.container", "main")
	v.SetDefault("ui.row_units", 16)
	v.SetDefault("ui.fps", 60)
	v.SetDefault("ui.header_rows", 6)
	v.SetDefault("ui.pages", 3)
	v.SetDefault("ui.page_rows", 120)
	v.SetDefault("ui.overscroll", true)
	v.SetDefault("ui.trace", false)
	v.SetDefault("ui.trace_seconds", 10)
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "headerscroll.log"))

	v.SetConfigType("toml")

	if cfgPath := os.Getenv(envConfig); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "headerscroll"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Normalize()
	return c, nil
}

// Load reads configuration from file and env. Env var overrides use prefix HEADERSCROLL_.
func Load() (Config, error) {
	v := newViper()

	// read config file if present
	_ = v.ReadInConfig()

	return decode(v)
}

// Watch reads the config file and calls fn with the reloaded config every
// time the file changes. fn runs on the watcher goroutine.
func Watch(fn func(Config), log *zap.Logger) error {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(ev fsnotify.Event) {
		c, err := decode(v)
		if err != nil {
			log.Warn("config reload failed", zap.String("file", ev.Name), zap.Error(err))
			return
		}
		log.Info("config reloaded", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
		fn(c)
	})
	v.WatchConfig()
	return nil
}

// Normalize replaces invalid values with their defaults.
func (c *Config) Normalize() {
	s := &c.Scroll
	if s.MaxScroll < 0 {
		s.MaxScroll = 0
	}
	if s.Friction <= 0 {
		s.Friction = scroll.DefaultFriction
	}
	if s.Density <= 0 {
		s.Density = 1
	}
	if s.TouchSlop < 0 {
		s.TouchSlop = 0
	}
	if s.MinFlingVelocity < 0 {
		s.MinFlingVelocity = 0
	}
	if s.MinFlingDistance < 0 {
		s.MinFlingDistance = 0
	}
	if s.ConsiderIdle < 0 {
		s.ConsiderIdle = scroll.DefaultConsiderIdle
	}
	if s.CloseUpDuration < 0 {
		s.CloseUpDuration = scroll.DefaultCloseUpDuration
	}
	if s.OverscrollDivisor <= 0 {
		s.OverscrollDivisor = 2
	}
	if s.RelaxDuration <= 0 {
		s.RelaxDuration = scroll.DefaultRelaxDuration
	}

	c.State.Backend = strings.ToLower(strings.TrimSpace(c.State.Backend))
	if c.State.Backend != BackendFile {
		c.State.Backend = BackendSQLite
	}
	if c.State.Container == "" {
		c.State.Container = "main"
	}

	u := &c.UI
	if u.RowUnits <= 0 {
		u.RowUnits = 16
	}
	if u.FPS <= 0 || u.FPS > 240 {
		u.FPS = 60
	}
	if u.HeaderRows < 1 {
		u.HeaderRows = 1
	}
	if u.Pages < 1 {
		u.Pages = 1
	}
	if u.PageRows < 0 {
		u.PageRows = 0
	}
	if u.TraceSeconds <= 0 {
		u.TraceSeconds = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// ToScroll builds the engine configuration. Unknown easing names are an error.
func (c Config) ToScroll(log *zap.Logger, clock func() time.Time) (scroll.Config, error) {
	s := c.Scroll
	easing, err := scroll.EasingByName(s.CloseUpEasing)
	if err != nil {
		return scroll.Config{}, fmt.Errorf("scroll.close_up_easing: %w", err)
	}
	out := scroll.Config{
		MaxScroll:          s.MaxScroll,
		AutoMaxScroll:      s.AutoMaxScroll,
		AutoMaxScrollChild: s.AutoMaxScrollChild,
		Friction:           s.Friction,
		Flywheel:           s.Flywheel,
		Density:            s.Density,
		TouchSlop:          s.TouchSlop,
		MinFlingVelocity:   s.MinFlingVelocity,
		MinFlingDistance:   s.MinFlingDistance,
		ConsiderIdle:       s.ConsiderIdle,
		CloseUpDuration:    scroll.FixedDuration(s.CloseUpDuration),
		CloseUpEasing:      easing,
		MaxPull:            scroll.BoundDivisor(s.OverscrollDivisor),
		RelaxDuration:      s.RelaxDuration,
		Logger:             log,
		Clock:              clock,
	}
	if s.DefaultCloseUp {
		out.CloseUp = scroll.QuartileCloseUp{}
	}
	return out, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("scroll.max_scroll", cfg.Scroll.MaxScroll)
	v.Set("scroll.auto_max_scroll", cfg.Scroll.AutoMaxScroll)
	v.Set("scroll.auto_max_scroll_child", cfg.Scroll.AutoMaxScrollChild)
	v.Set("scroll.friction", cfg.Scroll.Friction)
	v.Set("scroll.flywheel", cfg.Scroll.Flywheel)
	v.Set("scroll.density", cfg.Scroll.Density)
	v.Set("scroll.touch_slop", cfg.Scroll.TouchSlop)
	v.Set("scroll.min_fling_velocity", cfg.Scroll.MinFlingVelocity)
	v.Set("scroll.min_fling_distance", cfg.Scroll.MinFlingDistance)
	v.Set("scroll.consider_idle", cfg.Scroll.ConsiderIdle.String())
	v.Set("scroll.close_up_duration", cfg.Scroll.CloseUpDuration.String())
	v.Set("scroll.close_up_easing", cfg.Scroll.CloseUpEasing)
	v.Set("scroll.default_close_up", cfg.Scroll.DefaultCloseUp)
	v.Set("scroll.overscroll_divisor", cfg.Scroll.OverscrollDivisor)
	v.Set("scroll.relax_duration", cfg.Scroll.RelaxDuration.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("state.backend", cfg.State.Backend)
	v.Set("state.file", cfg.State.File)
	v.Set("state.container", cfg.State.Container)
	v.Set("ui.row_units", cfg.UI.RowUnits)
	v.Set("ui.fps", cfg.UI.FPS)
	v.Set("ui.header_rows", cfg.UI.HeaderRows)
	v.Set("ui.pages", cfg.UI.Pages)
	v.Set("ui.page_rows", cfg.UI.PageRows)
	v.Set("ui.overscroll", cfg.UI.Overscroll)
	v.Set("ui.trace", cfg.UI.Trace)
	v.Set("ui.trace_seconds", cfg.UI.TraceSeconds)
	v.Set("log.enabled", cfg.Log.Enabled)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
