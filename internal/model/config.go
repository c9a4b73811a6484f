package model

import "time"

// DefaultDatasetURL is the gapminder table the dashboard was built around
const DefaultDatasetURL = "https://raw.githubusercontent.com/plotly/datasets/master/gapminder_unfiltered.csv"

// Config is the complete gapdash configuration.
// yaml tags drive `config show|init`, mapstructure tags drive viper.
type Config struct {
	Dataset      DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	HTTP         HTTPConfig      `yaml:"http" mapstructure:"http"`
	Server       ServerConfig    `yaml:"server" mapstructure:"server"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Render       RenderConfig    `yaml:"render" mapstructure:"render"`
	UI           UIConfig        `yaml:"ui" mapstructure:"ui"`
	Log          LogConfig       `yaml:"log" mapstructure:"log"`
}

// DatasetConfig selects where the CSV comes from
type DatasetConfig struct {
	URL           string `yaml:"url" mapstructure:"url"`
	Path          string `yaml:"path" mapstructure:"path"` // local file, wins over URL when set
	RespectRobots bool   `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// HTTPConfig controls the outbound client used for the dataset fetch
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
}

// ServerConfig controls the dashboard listener
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	WSWriteWait     time.Duration `yaml:"ws_write_wait" mapstructure:"ws_write_wait"`
	WSPongWait      time.Duration `yaml:"ws_pong_wait" mapstructure:"ws_pong_wait"`
}

// RateLimitConfig controls per-client request throttling
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	ClientIdleTTL     time.Duration `yaml:"client_idle_ttl" mapstructure:"client_idle_ttl"`
}

// RenderConfig controls chart image output
type RenderConfig struct {
	WidthInches  float64 `yaml:"width_inches" mapstructure:"width_inches"`
	HeightInches float64 `yaml:"height_inches" mapstructure:"height_inches"`
	Workers      int     `yaml:"workers" mapstructure:"workers"`
}

// UIConfig controls page text
type UIConfig struct {
	Title  string `yaml:"title" mapstructure:"title"`
	Locale string `yaml:"locale" mapstructure:"locale"` // ru, en
}

// LogConfig controls logrus output
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			URL:           DefaultDatasetURL,
			RespectRobots: true,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "gapdash/0.1 (+https://github.com/ppiankov/gapdash)",
			MaxBodyBytes: 64 << 20,
			MaxRetries:   3,
		},
		Server: ServerConfig{
			Addr:            ":8050",
			ShutdownTimeout: 5 * time.Second,
			WSWriteWait:     10 * time.Second,
			WSPongWait:      60 * time.Second,
		},
		RateLimiting: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			BurstSize:         40,
			ClientIdleTTL:     10 * time.Minute,
		},
		Render: RenderConfig{
			WidthInches:  8,
			HeightInches: 5,
			Workers:      4,
		},
		UI: UIConfig{
			Title:  "Title of Dash App",
			Locale: "ru",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
