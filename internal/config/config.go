// =============================================================================
// NIBRS Flat File Ingest - Configuration Module
// =============================================================================
//
// This module loads the application configuration (config.yaml) and layers
// environment and command-line overrides on top of it.
//
// PRECEDENCE (highest first):
//   1. Command-line flags bound into viper
//   2. NIBRS_* environment variables (a .env file is loaded first)
//   3. config.yaml
//   4. Built-in defaults
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override (NIBRS_INPUT_DIR...).
const EnvPrefix = "NIBRS"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for flat files to ingest.
	// Default: "./input"
	InputDir string `yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives the error reports and summaries.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// InputArchiveDir receives flat files after a successful run.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" mapstructure:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every generated output.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir" mapstructure:"output_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is a zerolog level name: "trace", "debug", "info", "warn",
	// "error".
	// Default: "info"
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// LogFormat is "console" for human-readable output or "json".
	// Default: "console"
	LogFormat string `yaml:"log_format" mapstructure:"log_format"`

	// =========================================================================
	// INPUT / OUTPUT SETTINGS
	// =========================================================================

	// FilePatterns are glob patterns matched against file names in InputDir.
	// Default: ["*.txt", "*.dat", "*.nibrs"]
	FilePatterns []string `yaml:"file_patterns" mapstructure:"file_patterns"`

	// OutputNameFormat names every generated file. The extension is appended.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Input file name without extension
	// Default: "{original}_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format" mapstructure:"output_name_format"`

	// ErrorReport selects the error report formats.
	ErrorReport ErrorReportConfig `yaml:"error_report" mapstructure:"error_report"`

	// SummaryXML writes a per-file ingest summary in XML.
	// Default: true
	SummaryXML *bool `yaml:"summary_xml" mapstructure:"summary_xml"`

	// =========================================================================
	// CODE TABLE SETTINGS
	// =========================================================================

	// CodeTableWorkbook is an optional XLSX workbook whose sheets extend the
	// built-in code tables. Empty means built-in tables only.
	CodeTableWorkbook string `yaml:"code_table_workbook" mapstructure:"code_table_workbook"`

	// ValidateCodes checks coded fields against the code tables and reports
	// unknown values as warnings.
	// Default: false
	ValidateCodes bool `yaml:"validate_codes" mapstructure:"validate_codes"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed concurrently.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" mapstructure:"max_concurrency"`

	// ArchiveOnSuccess moves processed inputs to InputArchiveDir.
	// Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success" mapstructure:"archive_on_success"`
}

// ErrorReportConfig toggles the error report writers.
type ErrorReportConfig struct {
	// FBI writes the fixed-width 146-character error report (.err).
	FBI *bool `yaml:"fbi" mapstructure:"fbi"`

	// XLSX writes an error workbook.
	XLSX *bool `yaml:"xlsx" mapstructure:"xlsx"`
}

// WriteFBIReport reports whether the FBI error report is enabled.
func (c *MainConfig) WriteFBIReport() bool { return boolOr(c.ErrorReport.FBI, true) }

// WriteXLSXReport reports whether the error workbook is enabled.
func (c *MainConfig) WriteXLSXReport() bool { return boolOr(c.ErrorReport.XLSX, true) }

// WriteSummaryXML reports whether the summary XML is enabled.
func (c *MainConfig) WriteSummaryXML() bool { return boolOr(c.SummaryXML, true) }

// ArchiveInputs reports whether inputs are archived after processing.
func (c *MainConfig) ArchiveInputs() bool { return boolOr(c.ArchiveOnSuccess, true) }

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//   - required:   When false, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct, with defaults applied.
//   - An error if the file cannot be read or parsed.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyMainConfigDefaults(&config)
	return &config, nil
}

// ApplyOverrides copies every key that v holds a value for onto config.
// v is expected to have environment variables and flags bound; keys it knows
// nothing about leave config untouched.
func ApplyOverrides(config *MainConfig, v *viper.Viper) {
	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			if s := v.GetString(key); s != "" {
				*dst = s
			}
		}
	}

	setString("input_dir", &config.InputDir)
	setString("output_dir", &config.OutputDir)
	setString("input_archive_dir", &config.InputArchiveDir)
	setString("output_archive_dir", &config.OutputArchiveDir)
	setString("log_level", &config.LogLevel)
	setString("log_format", &config.LogFormat)
	setString("output_name_format", &config.OutputNameFormat)
	setString("code_table_workbook", &config.CodeTableWorkbook)

	if v.IsSet("max_concurrency") {
		if n := v.GetInt("max_concurrency"); n > 0 {
			config.MaxConcurrency = n
		}
	}
	if v.IsSet("validate_codes") {
		config.ValidateCodes = v.GetBool("validate_codes")
	}
	if v.IsSet("archive_on_success") {
		b := v.GetBool("archive_on_success")
		config.ArchiveOnSuccess = &b
	}
	if v.IsSet("file_patterns") {
		if patterns := v.GetStringSlice("file_patterns"); len(patterns) > 0 {
			config.FilePatterns = patterns
		}
	}
}

// NewViper returns a viper instance that reads NIBRS_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"input_dir", "output_dir", "input_archive_dir", "output_archive_dir",
		"log_level", "log_format", "output_name_format", "code_table_workbook",
		"max_concurrency", "validate_codes", "archive_on_success", "file_patterns",
	} {
		// BindEnv makes IsSet see variables that AutomaticEnv alone would
		// only resolve on Get.
		_ = v.BindEnv(key)
	}
	return v
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}
	if len(config.FilePatterns) == 0 {
		config.FilePatterns = []string{"*.txt", "*.dat", "*.nibrs"}
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{timestamp}"
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
}

// Validate checks the configuration and creates the working directories.
func (c *MainConfig) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want console or json", c.LogFormat)
	}

	dirs := []string{
		c.InputDir,
		c.OutputDir,
		c.InputArchiveDir,
		c.OutputArchiveDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
