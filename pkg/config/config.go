// Package config loads the dashboard configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Window     WindowConfig    `mapstructure:"window"`
	Grid       GridConfig      `mapstructure:"grid"`
	ColorBlind string          `mapstructure:"colorblind"`
	CacheTTL   time.Duration   `mapstructure:"cache_ttl"`
	Gauges     []GaugeConfig   `mapstructure:"gauges"`
	Bars       []BarConfig     `mapstructure:"bars"`
	Derived    []DerivedConfig `mapstructure:"derived"`
	Alarms     []AlarmConfig   `mapstructure:"alarms"`
	Sources    SourcesConfig   `mapstructure:"sources"`
	Record     RecordConfig    `mapstructure:"record"`
	Server     ServerConfig    `mapstructure:"server"`
	Log        LogConfig       `mapstructure:"log"`
}

type WindowConfig struct {
	Title      string  `mapstructure:"title"`
	Width      float32 `mapstructure:"width"`
	Height     float32 `mapstructure:"height"`
	Fullscreen bool    `mapstructure:"fullscreen"`
}

type GridConfig struct {
	Cols    int     `mapstructure:"cols"`
	Rows    int     `mapstructure:"rows"`
	Padding float32 `mapstructure:"padding"`
}

// GaugeConfig places a preset and binds it to a bus topic. Attitude presets
// take their readings from Pitch and Roll instead.
type GaugeConfig struct {
	Preset string `mapstructure:"preset"`
	Topic  string `mapstructure:"topic"`
	Pitch  string `mapstructure:"pitch"`
	Roll   string `mapstructure:"roll"`
}

type BarConfig struct {
	Type      string   `mapstructure:"type"` // "bar" or "ring"
	Topic     string   `mapstructure:"topic"`
	Min       float64  `mapstructure:"min"`
	Max       float64  `mapstructure:"max"`
	Vertical  bool     `mapstructure:"vertical"`
	Rulers    []string `mapstructure:"rulers"`
	Precision int      `mapstructure:"precision"`
	LongStep  int      `mapstructure:"long_step"`
	ShortStep int      `mapstructure:"short_step"`
}

// DerivedConfig publishes a topic computed from others.
type DerivedConfig struct {
	Type   string   `mapstructure:"type"` // diff, scale or smooth
	Inputs []string `mapstructure:"inputs"`
	Output string   `mapstructure:"output"`
	Factor float64  `mapstructure:"factor"`
	Offset float64  `mapstructure:"offset"`
	Alpha  float64  `mapstructure:"alpha"`
}

// AlarmConfig warns when Topic leaves [Below,Above]. Sound is "beep"
// (the default), "none" or the path of a 44.1 kHz mp3 clip.
type AlarmConfig struct {
	Topic      string   `mapstructure:"topic"`
	Above      *float64 `mapstructure:"above"`
	Below      *float64 `mapstructure:"below"`
	Hysteresis float64  `mapstructure:"hysteresis"`
	Sound      string   `mapstructure:"sound"`
}

type SourcesConfig struct {
	Sysstat SysstatConfig  `mapstructure:"sysstat"`
	Serial  []SerialConfig `mapstructure:"serial"`
	Replay  ReplayConfig   `mapstructure:"replay"`
}

// ReplayConfig plays back a CSV log recorded earlier.
type ReplayConfig struct {
	File  string  `mapstructure:"file"`
	Speed float64 `mapstructure:"speed"`
	Loop  bool    `mapstructure:"loop"`
}

// RecordConfig samples every dashboard topic into a CSV log.
type RecordConfig struct {
	File     string        `mapstructure:"file"`
	Interval time.Duration `mapstructure:"interval"`
}

type SysstatConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	Prefix   string        `mapstructure:"prefix"`
}

type SerialConfig struct {
	Port    string        `mapstructure:"port"`
	Baud    int           `mapstructure:"baud"`
	Prefix  string        `mapstructure:"prefix"`
	Retries uint          `mapstructure:"retries"`
	Backoff time.Duration `mapstructure:"backoff"`
}

type ServerConfig struct {
	Listen     string        `mapstructure:"listen"`
	ImageCache time.Duration `mapstructure:"image_cache"`
	MDNS       string        `mapstructure:"mdns"` // answer <mdns>.local when set
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Debug bool   `mapstructure:"debug"` // mirror log lines into debug.log
}

// Default returns a system monitor dashboard that runs without any
// configuration file.
func Default() *Config {
	return &Config{
		Window:     WindowConfig{Title: "txgauge", Width: 900, Height: 600},
		Grid:       GridConfig{Cols: 3, Rows: 2, Padding: 4},
		ColorBlind: "normal",
		CacheTTL:   time.Minute,
		Gauges: []GaugeConfig{
			{Preset: "percent", Topic: "sys.cpu"},
			{Preset: "thermometer", Topic: "sys.temp"},
		},
		Bars: []BarConfig{
			{Type: "ring", Topic: "sys.mem", Min: 0, Max: 100},
			{Type: "bar", Topic: "sys.disk", Min: 0, Max: 100, Rulers: []string{"bottom"}, LongStep: 10, ShortStep: 2},
			{Type: "ring", Topic: "sys.swap", Min: 0, Max: 100},
			{Type: "bar", Topic: "sys.load1", Min: 0, Max: 8, Vertical: true, Rulers: []string{"left"}, LongStep: 1, ShortStep: 1, Precision: 0},
		},
		Sources: SourcesConfig{
			Sysstat: SysstatConfig{Enabled: true, Interval: time.Second, Prefix: "sys."},
		},
		Record: RecordConfig{Interval: 100 * time.Millisecond},
		Server: ServerConfig{Listen: ":8080", ImageCache: time.Second},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path, or txgauge.{yaml,json,toml} from the working directory
// and the user config directory when path is empty. A missing default file
// is not an error. TXGAUGE_* environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("TXGAUGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("txgauge")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/txgauge")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if !v.IsSet("gauges") && !v.IsSet("bars") {
		def := Default()
		cfg.Gauges, cfg.Bars = def.Gauges, def.Bars
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)
	v.SetDefault("grid.cols", d.Grid.Cols)
	v.SetDefault("grid.rows", d.Grid.Rows)
	v.SetDefault("grid.padding", d.Grid.Padding)
	v.SetDefault("colorblind", d.ColorBlind)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("sources.sysstat.enabled", d.Sources.Sysstat.Enabled)
	v.SetDefault("sources.sysstat.interval", d.Sources.Sysstat.Interval)
	v.SetDefault("sources.sysstat.prefix", d.Sources.Sysstat.Prefix)
	v.SetDefault("sources.replay.speed", 1.0)
	v.SetDefault("record.interval", d.Record.Interval)
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("server.image_cache", d.Server.ImageCache)
	v.SetDefault("server.mdns", d.Server.MDNS)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Grid.Cols <= 0 || c.Grid.Rows <= 0 {
		return &ConfigError{Field: "grid", Message: "cols and rows must be positive"}
	}
	if n := len(c.Gauges) + len(c.Bars); n > c.Grid.Cols*c.Grid.Rows {
		return &ConfigError{Field: "grid", Message: fmt.Sprintf("%d cells cannot hold %d widgets", c.Grid.Cols*c.Grid.Rows, n)}
	}
	if c.CacheTTL <= 0 {
		return &ConfigError{Field: "cache_ttl", Message: "must be positive"}
	}
	if c.Server.ImageCache <= 0 {
		return &ConfigError{Field: "server.image_cache", Message: "must be positive"}
	}
	for i, g := range c.Gauges {
		field := fmt.Sprintf("gauges[%d]", i)
		if g.Preset == "" {
			return &ConfigError{Field: field, Message: "preset must not be empty"}
		}
		if g.Topic == "" && g.Pitch == "" && g.Roll == "" {
			return &ConfigError{Field: field, Message: "needs a topic"}
		}
	}
	for i, b := range c.Bars {
		field := fmt.Sprintf("bars[%d]", i)
		switch b.Type {
		case "bar", "ring":
		default:
			return &ConfigError{Field: field, Message: fmt.Sprintf("unknown type %q", b.Type)}
		}
		if b.Topic == "" {
			return &ConfigError{Field: field, Message: "needs a topic"}
		}
		if !(b.Min < b.Max) {
			return &ConfigError{Field: field, Message: "min must be below max"}
		}
		for _, r := range b.Rulers {
			switch r {
			case "top", "bottom", "left", "right":
			default:
				return &ConfigError{Field: field, Message: fmt.Sprintf("unknown ruler %q", r)}
			}
		}
		if b.LongStep < 0 || b.ShortStep < 0 {
			return &ConfigError{Field: field, Message: "steps must not be negative"}
		}
	}
	for i, a := range c.Alarms {
		field := fmt.Sprintf("alarms[%d]", i)
		switch {
		case a.Topic == "":
			return &ConfigError{Field: field, Message: "needs a topic"}
		case a.Above == nil && a.Below == nil:
			return &ConfigError{Field: field, Message: "needs above or below"}
		case a.Above != nil && a.Below != nil && !(*a.Below < *a.Above):
			return &ConfigError{Field: field, Message: "below must be less than above"}
		case a.Hysteresis < 0:
			return &ConfigError{Field: field, Message: "hysteresis must not be negative"}
		}
	}
	if c.Record.File != "" && c.Record.Interval <= 0 {
		return &ConfigError{Field: "record.interval", Message: "must be positive"}
	}
	if c.Sources.Replay.Speed < 0 {
		return &ConfigError{Field: "sources.replay.speed", Message: "must not be negative"}
	}
	for i, d := range c.Derived {
		field := fmt.Sprintf("derived[%d]", i)
		want := 1
		switch d.Type {
		case "diff":
			want = 2
		case "scale", "smooth":
		default:
			return &ConfigError{Field: field, Message: fmt.Sprintf("unknown type %q", d.Type)}
		}
		if len(d.Inputs) != want {
			return &ConfigError{Field: field, Message: fmt.Sprintf("%s takes %d inputs", d.Type, want)}
		}
		if d.Output == "" {
			return &ConfigError{Field: field, Message: "output must not be empty"}
		}
	}
	if c.Sources.Sysstat.Enabled && c.Sources.Sysstat.Interval <= 0 {
		return &ConfigError{Field: "sources.sysstat.interval", Message: "must be positive"}
	}
	for i, s := range c.Sources.Serial {
		field := fmt.Sprintf("sources.serial[%d]", i)
		if s.Port == "" {
			return &ConfigError{Field: field, Message: "port must not be empty"}
		}
		if s.Baud < 0 {
			return &ConfigError{Field: field, Message: "baud must not be negative"}
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return &ConfigError{Field: "log.level", Message: err.Error()}
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(l.Level))
	return lvl, err
}

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
