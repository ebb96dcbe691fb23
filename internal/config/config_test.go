package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "idbase", cfg.Survey.IDColumn)
	assert.Equal(t, "nps", cfg.Survey.ScoreColumn)
	assert.Contains(t, cfg.Survey.DemographicColumns, "region")

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "missing score column",
			mutate: func(c *Config) {
				c.Survey.ScoreColumn = ""
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "group_by not a demographic column",
			mutate: func(c *Config) {
				c.Survey.GroupBy = []string{"household_income"}
			},
			wantErr: true,
		},
		{
			name: "group_by allowed when declared",
			mutate: func(c *Config) {
				c.Survey.GroupBy = []string{"gender", "region"}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "survey-config.yaml")

	content := `
logging:
  level: debug
  output: console
survey:
  id_column: respondent_id
  score_column: recommend
  demographic_columns:
    region: depto
  group_by:
    - region
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := loadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "respondent_id", cfg.Survey.IDColumn)
	assert.Equal(t, "recommend", cfg.Survey.ScoreColumn)
	assert.Equal(t, []string{"region"}, cfg.Survey.GroupBy)
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := Config{
		Survey: SurveyConfig{
			IDColumn: "respondent_id",
		},
	}
	envCfg := *Default()

	merged := mergeConfigs(fileCfg, envCfg)

	// File value wins where set, env fills the gaps.
	assert.Equal(t, "respondent_id", merged.Survey.IDColumn)
	assert.Equal(t, "nps", merged.Survey.ScoreColumn)
	assert.Equal(t, "info", merged.Logging.Level)
}

func TestPathsFromBase(t *testing.T) {
	paths := PathsFromBase(filepath.Join("/", "opt", "survey"))

	assert.Equal(t, filepath.Join("/", "opt", "survey", "data"), paths.DataDir)
	assert.Equal(t, filepath.Join("/", "opt", "survey", "data", "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join("/", "opt", "survey", "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(paths.ReportsDir, "nps_by_group.csv"), paths.NPSReportCSV)
}

func TestEnsureDirectories(t *testing.T) {
	paths := PathsFromBase(t.TempDir())

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "survey.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing.xlsx")))
	assert.False(t, FileExists(dir))
}
