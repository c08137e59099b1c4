package configs

// Config holds all configuration for the application.
type Config struct {
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Source      SourceConfig      `mapstructure:"source" validate:"required"`
	Parser      ParserConfig      `mapstructure:"parser" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
	Report      ReportConfig      `mapstructure:"report" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// LogConfig holds diagnostics logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	Dir   string `mapstructure:"dir"` // empty logs to stdout
}

// SourceConfig holds the location of the access logs to analyze.
type SourceConfig struct {
	LogDir string `mapstructure:"log_dir" validate:"required"`
}

// ParserConfig holds the malformed line policy.
type ParserConfig struct {
	MalformedLines    string  `mapstructure:"malformed_lines" validate:"required,oneof=skip fail"`
	MaxMalformedRatio float64 `mapstructure:"max_malformed_ratio" validate:"min=0,max=1"` // 0 disables the check
}

// AggregationConfig holds aggregation configuration.
type AggregationConfig struct {
	Workers int `mapstructure:"workers" validate:"min=1,max=64"`
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	Dir          string `mapstructure:"dir" validate:"required"`
	TemplatePath string `mapstructure:"template_path"` // empty uses the built-in template
	Overwrite    bool   `mapstructure:"overwrite"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"` // empty disables the export
}
