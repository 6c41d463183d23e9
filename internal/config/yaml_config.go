package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kwbrand/internal/models"
)

// Defaults matching the spreadsheets exported by the keyword research tool.
const (
	DefaultKeywordColumn    = "关键词"
	DefaultVolumeColumn     = "月搜索量"
	DefaultBrandColumn      = "品牌名称"
	DefaultProvenanceColumn = "时间"
	DefaultKeywordSkipRows  = 2
	DefaultCoverage         = 0.6
)

// YAMLConfig represents the structure of the config.yaml file.
type YAMLConfig struct {
	Columns         ColumnsConfig       `yaml:"columns"`
	KeywordSkipRows *int                `yaml:"keyword_skip_rows"`
	Coverage        float64             `yaml:"coverage_threshold"`
	PresetRules     []models.ManualRule `yaml:"preset_rules"`
}

// ColumnsConfig names the columns read from uploaded files.
type ColumnsConfig struct {
	Keyword    string `yaml:"keyword"`
	Volume     string `yaml:"volume"`
	Brand      string `yaml:"brand"`
	Provenance string `yaml:"provenance"` // added by batch merge
}

// DefaultYAMLConfig returns the settings used when no config file exists.
func DefaultYAMLConfig() *YAMLConfig {
	cfg := &YAMLConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// A missing file yields the defaults.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads and validates the YAML configuration at path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return DefaultYAMLConfig(), nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *YAMLConfig) applyDefaults() {
	if c.Columns.Keyword == "" {
		c.Columns.Keyword = DefaultKeywordColumn
	}
	if c.Columns.Volume == "" {
		c.Columns.Volume = DefaultVolumeColumn
	}
	if c.Columns.Brand == "" {
		c.Columns.Brand = DefaultBrandColumn
	}
	if c.Columns.Provenance == "" {
		c.Columns.Provenance = DefaultProvenanceColumn
	}
	if c.KeywordSkipRows == nil {
		n := DefaultKeywordSkipRows
		c.KeywordSkipRows = &n
	}
	if c.Coverage == 0 {
		c.Coverage = DefaultCoverage
	}
	for i := range c.PresetRules {
		r := &c.PresetRules[i]
		r.BrandName = strings.TrimSpace(r.BrandName)
		terms := r.Terms[:0]
		for _, t := range r.Terms {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				terms = append(terms, t)
			}
		}
		r.Terms = terms
	}
}

func (c *YAMLConfig) validate() error {
	if *c.KeywordSkipRows < 0 {
		return fmt.Errorf("keyword_skip_rows must not be negative, got %d", *c.KeywordSkipRows)
	}
	if c.Coverage <= 0 || c.Coverage > 1 {
		return fmt.Errorf("coverage_threshold must be in (0, 1], got %v", c.Coverage)
	}
	for i, r := range c.PresetRules {
		if r.BrandName == "" || len(r.Terms) == 0 {
			return fmt.Errorf("preset_rules[%d]: brand and terms are required", i)
		}
	}
	return nil
}

// KeywordColumns returns the keyword/volume column pair.
func (c *YAMLConfig) KeywordColumns() models.KeywordColumns {
	return models.KeywordColumns{Keyword: c.Columns.Keyword, Volume: c.Columns.Volume}
}

// SkipRows returns the number of leading rows skipped in keyword files.
func (c *YAMLConfig) SkipRows() int {
	if c == nil || c.KeywordSkipRows == nil {
		return DefaultKeywordSkipRows
	}
	return *c.KeywordSkipRows
}
