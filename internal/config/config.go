// Package config provides configuration loading for the survey analysis
// tools. Values come from environment variables (prefix SURVEY) merged with
// an optional YAML file next to the executable, and are validated before use.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Survey  SurveyConfig  `yaml:"survey" envconfig:"SURVEY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/survey.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// SurveyConfig describes the source dataset: which raw spreadsheet headers
// hold the respondent identifier, the recommendation score, and each
// demographic attribute. Raw headers are matched after normalization, so
// accents and case in the source file do not matter.
type SurveyConfig struct {
	SourceFile         string            `yaml:"source_file" envconfig:"SOURCE_FILE"`
	IDColumn           string            `yaml:"id_column" envconfig:"ID_COLUMN" default:"idbase" validate:"required"`
	ScoreColumn        string            `yaml:"score_column" envconfig:"SCORE_COLUMN" default:"nps" validate:"required"`
	DemographicColumns map[string]string `yaml:"demographic_columns" envconfig:"DEMOGRAPHIC_COLUMNS"`
	GroupBy            []string          `yaml:"group_by" envconfig:"GROUP_BY"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SURVEY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file or environment
// overrides are present. Defaults mirror the source dataset's column names.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/survey.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "data/reports",
			LogsDir:    "logs",
		},
		Survey: SurveyConfig{
			IDColumn:    "idbase",
			ScoreColumn: "nps",
			DemographicColumns: map[string]string{
				"gender":   "sexo",
				"age_band": "edad_tramo",
				"region":   "depto",
			},
			GroupBy: []string{"region"},
		},
	}
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	// Group-by attributes must be declared demographic columns.
	for _, attr := range c.Survey.GroupBy {
		if _, ok := c.Survey.DemographicColumns[attr]; !ok && len(c.Survey.DemographicColumns) > 0 {
			return fmt.Errorf("group_by attribute %q is not a configured demographic column", attr)
		}
	}

	return nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config, with env taking precedence
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := fileConfig

	if envConfig.Logging.Level != "" && envConfig.Logging.Level != "info" {
		merged.Logging.Level = envConfig.Logging.Level
	}
	if merged.Logging.Level == "" {
		merged.Logging.Level = envConfig.Logging.Level
	}
	if merged.Logging.Format == "" {
		merged.Logging.Format = envConfig.Logging.Format
	}
	if merged.Logging.Output == "" {
		merged.Logging.Output = envConfig.Logging.Output
	}
	if merged.Logging.FilePath == "" {
		merged.Logging.FilePath = envConfig.Logging.FilePath
	}
	if merged.Paths.DataDir == "" {
		merged.Paths.DataDir = envConfig.Paths.DataDir
	}
	if merged.Paths.ReportsDir == "" {
		merged.Paths.ReportsDir = envConfig.Paths.ReportsDir
	}
	if merged.Paths.LogsDir == "" {
		merged.Paths.LogsDir = envConfig.Paths.LogsDir
	}
	if merged.Survey.SourceFile == "" {
		merged.Survey.SourceFile = envConfig.Survey.SourceFile
	}
	if merged.Survey.IDColumn == "" {
		merged.Survey.IDColumn = envConfig.Survey.IDColumn
	}
	if merged.Survey.ScoreColumn == "" {
		merged.Survey.ScoreColumn = envConfig.Survey.ScoreColumn
	}
	if len(merged.Survey.DemographicColumns) == 0 {
		merged.Survey.DemographicColumns = envConfig.Survey.DemographicColumns
	}
	if len(merged.Survey.GroupBy) == 0 {
		merged.Survey.GroupBy = envConfig.Survey.GroupBy
	}

	return merged
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check environment variable first
	if path := os.Getenv("SURVEY_CONFIG_FILE"); path != "" {
		return path
	}

	// Look next to the executable
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), "survey-config.yaml")
	}

	return "survey-config.yaml"
}
