package configs

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Timelog TimelogConfig `mapstructure:"timelog" validate:"required"`
	Routes  []RouteConfig `mapstructure:"routes" validate:"dive"`
	State   StateConfig   `mapstructure:"state"`
	Push    PushConfig    `mapstructure:"push"`
}

// ServerConfig holds server-related configuration. Only validated by the server binary.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"min=0,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"min=0"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"min=0"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"min=0"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"min=0"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// TimelogConfig describes the access/performance log being analyzed.
type TimelogConfig struct {
	LogFile      string   `mapstructure:"log_file" validate:"required"`
	IgnoreURIs   []string `mapstructure:"ignore_uris" validate:"dive,regexp"`
	ResolveNames bool     `mapstructure:"resolve_names"`
}

// RouteConfig maps a chi-style path pattern to the component that owns it.
type RouteConfig struct {
	Pattern string `mapstructure:"pattern" validate:"required,startswith=/"`
	Module  string `mapstructure:"module"`
	Handler string `mapstructure:"handler"`
}

// StateConfig selects where the push job keeps its lock and checkpoint.
type StateConfig struct {
	Backend     string      `mapstructure:"backend" validate:"oneof=file redis"`
	FileRootDir string      `mapstructure:"file_root_dir" validate:"required_if=Backend file"`
	Redis       RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

// PushConfig holds the scheduled metrics push settings.
type PushConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	IntervalSeconds int    `mapstructure:"interval_seconds" validate:"required_if=Enabled true,min=0"`
	GatewayURL      string `mapstructure:"gateway_url" validate:"required_if=Enabled true"`
	Job             string `mapstructure:"job"`
	Env             string `mapstructure:"env" validate:"required_if=Enabled true"`
	Server          string `mapstructure:"server" validate:"required_if=Enabled true"`
}
