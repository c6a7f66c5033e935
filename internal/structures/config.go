package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// RemoteConfig selects where synced sightings live. The rest driver talks to a
// PostgREST compatible endpoint, sqlite keeps the table in a local file.
type RemoteConfig struct {
	Driver     string        `yaml:"driver" validate:"required|in:rest,sqlite"`
	URL        string        `yaml:"url"`
	APIKey     string        `yaml:"apiKey"`
	Table      string        `yaml:"table"`
	Timeout    time.Duration `yaml:"timeout"`
	SqlitePath string        `yaml:"sqlitePath"`
}

type QueueConfig struct {
	Driver string `yaml:"driver" validate:"required|in:file,bolt"`
	Path   string `yaml:"path" validate:"required|unixPath"`
}

type SyncConfig struct {
	ProbeInterval time.Duration `yaml:"probeInterval" validate:"required|min:1"`
	ProbeTimeout  time.Duration `yaml:"probeTimeout"`
	FlushTimeout  time.Duration `yaml:"flushTimeout"`
	ForceOffline  bool          `yaml:"forceOffline"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Remote    RemoteConfig  `yaml:"remote"`
	Queue     QueueConfig   `yaml:"queue"`
	Sync      SyncConfig    `yaml:"sync"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
