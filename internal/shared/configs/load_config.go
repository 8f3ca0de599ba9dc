package configs

import (
	"fmt"
	"strings"

	"timelog/internal/shared/validators"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// setDefaults registers the values used when the config file leaves a key out.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("timelog.resolve_names", true)
	v.SetDefault("state.backend", BackendFile)
	v.SetDefault("state.file_root_dir", "./data")
	v.SetDefault("state.redis.addr", "localhost:6379")
	v.SetDefault("push.interval_seconds", 60)
	v.SetDefault("push.job", "timelog")
}

// LoadConfig reads configuration from file and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	return LoadConfigWithFlags(configPath, nil, nil)
}

// LoadConfigWithFlags reads the config file, then overlays any flags that were
// explicitly set. bindings maps a config key (e.g. "timelog.log_file") to a flag name.
func LoadConfigWithFlags(configPath string, flags *pflag.FlagSet, bindings map[string]string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	// an empty path means flags and defaults only
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	for key, flagName := range bindings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			return nil, fmt.Errorf("unknown flag %q bound to %q", flagName, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %q: %w", flagName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		} else {
			validationErrors = append(validationErrors, err.Error())
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// ValidateServer checks the fields only the long-running server needs.
func (c *Config) ValidateServer() error {
	if c.Server.Port < 1 {
		return fmt.Errorf("config validation failed: server.port (required)")
	}
	return nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// "Config.Timelog.IgnoreURIs[1]" -> "timelog.ignoreuris[1]"
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "required_if", "min", "max", "oneof", "startswith":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	case validators.TagRegexp:
		return fmt.Sprintf("%s (invalid regexp %q)", field, e.Value())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
