package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/beatoz/fxseries/binomial"
	"github.com/beatoz/fxseries/types"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
	tmos "github.com/tendermint/tendermint/libs/os"
)

const (
	DefaultLogLevel     = "info"
	DefaultMaxPrecision = uint64(256)

	LogFormatPlain = "plain"
	LogFormatJSON  = "json"

	OutputText = "text"
	OutputJSON = "json"

	defaultConfigDir      = "config"
	defaultConfigFileName = "config.toml"
)

// Config is the configuration of the fxseries command line tool.
// Every field can be set in $HOME/config/config.toml, by an FXSERIES_* environment
// variable or by the flag of the same name.
type Config struct {
	RootDir string `mapstructure:"home"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Ordering is "A"/"separate" or "B"/"fused".
	Ordering string `mapstructure:"ordering"`
	// Scale is the number of decimal digits of the unit k, e.g. 18 for k = 10^18.
	Scale uint8 `mapstructure:"scale"`
	// MaxPrecision limits the precision probed by the boundary and compare commands.
	MaxPrecision uint64 `mapstructure:"max_precision"`
	// Workers is the size of the batch worker pool; 0 uses every CPU.
	Workers int    `mapstructure:"workers"`
	Output  string `mapstructure:"output"`
	// CacheDir enables the result database when not empty. A relative path
	// is resolved against the home directory.
	CacheDir string `mapstructure:"cache_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		LogFormat:    LogFormatPlain,
		Ordering:     binomial.DefaultOrdering.Label(),
		Scale:        types.DefaultScaleDigits,
		MaxPrecision: DefaultMaxPrecision,
		Workers:      0,
		Output:       OutputText,
	}
}

func (cfg *Config) SetRoot(root string) *Config {
	cfg.RootDir = root
	return cfg
}

func (cfg *Config) ConfigFile() string {
	return filepath.Join(cfg.RootDir, defaultConfigDir, defaultConfigFileName)
}

// ValidateBasic performs basic validation and returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if cfg.LogFormat != LogFormatPlain && cfg.LogFormat != LogFormatJSON {
		return xerrors.ErrConfig.Wrapf("unknown log_format %q", cfg.LogFormat)
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		return xerrors.ErrConfig.Wrapf("unknown output %q", cfg.Output)
	}
	if _, xerr := binomial.ParseOrdering(cfg.Ordering); xerr != nil {
		return xerrors.ErrConfig.Wrap(xerr)
	}
	if cfg.Scale > types.MaxScaleDigits {
		return xerrors.ErrConfig.Wrapf("scale %d exceeds %d", cfg.Scale, types.MaxScaleDigits)
	}
	if cfg.MaxPrecision == 0 {
		return xerrors.ErrConfig.Wrapf("max_precision must be positive")
	}
	if cfg.Workers < 0 {
		return xerrors.ErrConfig.Wrapf("negative workers %d", cfg.Workers)
	}
	return nil
}

func (cfg *Config) CachePath() string {
	if cfg.CacheDir == "" || filepath.IsAbs(cfg.CacheDir) {
		return cfg.CacheDir
	}
	return filepath.Join(cfg.RootDir, cfg.CacheDir)
}

func (cfg *Config) OrderingValue() binomial.Ordering {
	o, xerr := binomial.ParseOrdering(cfg.Ordering)
	if xerr != nil {
		return binomial.DefaultOrdering
	}
	return o
}

// Unit returns k = 10^Scale.
func (cfg *Config) Unit() *uint256.Int {
	return types.MustScale(min(cfg.Scale, types.MaxScaleDigits))
}

func (cfg *Config) IsJSONOutput() bool {
	return strings.EqualFold(cfg.Output, OutputJSON)
}

var configTemplate = template.Must(template.New("configFileTemplate").Parse(defaultConfigTemplate))

// WriteConfigFile renders cfg into its config.toml, creating the directory
// when needed.
func WriteConfigFile(cfg *Config) error {
	var buffer bytes.Buffer
	if err := configTemplate.Execute(&buffer, cfg); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	if err := tmos.EnsureDir(filepath.Dir(cfg.ConfigFile()), 0o700); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	if err := tmos.WriteFile(cfg.ConfigFile(), buffer.Bytes(), 0o644); err != nil {
		return xerrors.ErrIO.Wrap(fmt.Errorf("write %s: %w", cfg.ConfigFile(), err))
	}
	return nil
}

const defaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

# Output level for logging: "info", "debug", "error", "none"
# or per module, e.g. "batch:debug,*:info"
log_level = "{{ .LogLevel }}"

# Output format: 'plain' (colored text) or 'json'
log_format = "{{ .LogFormat }}"

# Multiply/divide ordering of the series recurrence:
# "A" keeps numerator and denominator apart (exact, overflows early),
# "B" divides before every multiplication (approximate, wider range).
ordering = "{{ .Ordering }}"

# Number of decimal digits of the unit k (k = 10^scale)
scale = {{ .Scale }}

# Highest precision probed by 'boundary' and 'compare'
max_precision = {{ .MaxPrecision }}

# Batch worker pool size; 0 uses every CPU
workers = {{ .Workers }}

# Command output: "text" or "json"
output = "{{ .Output }}"

# Directory of the result database; empty disables caching
cache_dir = "{{ .CacheDir }}"
`
