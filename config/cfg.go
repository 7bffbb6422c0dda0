package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	NavigationConfig struct {
		// Alerts are escalating boundary messages, first one is normally
		// empty so the first hit is silent.
		Alerts            []string      `yaml:"alerts"`
		ShortSelection    int           `yaml:"short_selection" validate:"gte=0"`
		LabelAugmentation bool          `yaml:"label_augmentation"`
		AutoAdvance       time.Duration `yaml:"auto_advance" validate:"gte=0"`
		Idle              time.Duration `yaml:"idle" validate:"gte=0"`
		Cache             bool          `yaml:"cache"`
	}

	SpeechConfig struct {
		Language    string `yaml:"language" validate:"required,bcp47_language_tag"`
		Split       bool   `yaml:"split_sentences"`
		LabelFormat string `yaml:"label_format" validate:"required"`
	}

	DocumentConfig struct {
		StylesheetPath   string `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		EstimateGeometry bool   `yaml:"estimate_geometry"`
		Columns          int    `yaml:"columns" validate:"min=20,max=1000"`
		Media            string `yaml:"media" validate:"required"`
	}

	ConsoleConfig struct {
		Format ConsoleFormat `yaml:"format" validate:"gte=0"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Navigation NavigationConfig `yaml:"navigation"`
		Speech     SpeechConfig     `yaml:"speech"`
		Document   DocumentConfig   `yaml:"document"`
		Console    ConsoleConfig    `yaml:"console"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	LabelFormatFieldName TemplateFieldName = "label_format"
	AlertsFieldName      TemplateFieldName = "alerts"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(LabelFormatFieldName)),
	gencfg.WithDoNotExpandField(string(AlertsFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
