package configs

import (
	"fmt"
	"path/filepath"
	"strings"

	"log-analyzer/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LOG_ANALYZER_REPORT_DIR.
const EnvPrefix = "LOG_ANALYZER"

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "./configs/config.yml"

// LoadConfig reads configuration from file and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	if filepath.Ext(configPath) == "" {
		v.SetConfigType("yaml")
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, errConfigInvalid(fmt.Sprintf("failed to read config file %q", configPath), err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errConfigInvalid("failed to unmarshal config", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, errConfigInvalid(fmt.Sprintf("config validation failed: %s", strings.Join(validationErrors, ", ")), err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
	v.SetDefault("source.log_dir", "")
	v.SetDefault("parser.malformed_lines", "skip")
	v.SetDefault("parser.max_malformed_ratio", 0.0)
	v.SetDefault("aggregation.workers", 1)
	v.SetDefault("report.dir", "")
	v.SetDefault("report.template_path", "")
	v.SetDefault("report.overwrite", true)
	v.SetDefault("metrics.textfile_path", "")
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path from the document keys (e.g., "Config.source.log_dir" -> "source.log_dir")
	if e.Namespace() != "" {
		parts := strings.Split(e.Namespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix
			field = strings.Join(parts[1:], ".")
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
