package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyRegistryDBPath        = "registry.db_path"
	KeyImportDayFirst        = "import.day_first"
	KeyImportReviewThreshold = "import.review_threshold"
	KeyMatchConfidenceFloor  = "match.confidence_floor"
	KeyRules                 = "rules"
)

type Config struct {
	Registry RegistryConfig `mapstructure:"registry" validate:"required"`
	Import   ImportConfig   `mapstructure:"import"`
	Match    MatchConfig    `mapstructure:"match"`
	Rules    []Rule         `mapstructure:"rules"`
}

type RegistryConfig struct {
	DBPath string `mapstructure:"db_path" validate:"required"`
}

type ImportConfig struct {
	// DayFirst resolves ambiguous numeric dates (both parts <= 12) as
	// DD/MM. This is a locale assumption, not a universal rule; flipping it
	// silently changes how historical exports are interpreted, so it is
	// explicit configuration rather than a constant.
	DayFirst bool `mapstructure:"day_first"`
	// ReviewThreshold is the dropped-row fraction above which a parsed
	// profile is flagged needs_review.
	ReviewThreshold float64 `mapstructure:"review_threshold" validate:"gte=0,lte=1"`
}

type MatchConfig struct {
	// ConfidenceFloor is the minimum fuzzy-match score [0,100] for routing
	// a file to a registry meter without manual confirmation.
	ConfidenceFloor int `mapstructure:"confidence_floor" validate:"gte=0,lte=100"`
}

// Rule routes files matching a glob template straight to a meter, skipping
// fuzzy matching entirely for known vendor export names.
type Rule struct {
	Name         string `mapstructure:"name"`
	FileTemplate string `mapstructure:"file_template"`
	MeterID      int64  `mapstructure:"meter_id"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# gokwh configuration
registry:
  db_path: "gokwh.db"

import:
  # DD/MM for ambiguous numeric dates; set false for MM/DD exports.
  day_first: true
  # Flag a file for review when more than this fraction of rows is dropped.
  review_threshold: 0.1

match:
  # Minimum fuzzy-match score [0,100] to route a file to a meter.
  confidence_floor: 50

rules: []
# rules:
#   - name: "main db scada"
#     file_template: "MAIN-DB-*.csv"
#     meter_id: 1
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRules(cfg.Rules); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRegistryDBPath, "gokwh.db")
	v.SetDefault(KeyImportDayFirst, true)
	v.SetDefault(KeyImportReviewThreshold, 0.1)
	v.SetDefault(KeyMatchConfidenceFloor, 50)
	v.SetDefault(KeyRules, []map[string]any{})
}

func validateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("validation failed: rules[%d].name is required", i)
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate rule name %q", name)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(rule.FileTemplate) == "" {
			return fmt.Errorf("validation failed: rules[%d].file_template is required", i)
		}
		if rule.MeterID <= 0 {
			return fmt.Errorf("validation failed: rules[%d].meter_id must be > 0", i)
		}
	}
	return nil
}
