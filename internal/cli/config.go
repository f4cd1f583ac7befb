// Config loading for the inventory CLI.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/inventory/internal/paths"
	"github.com/mesh-intelligence/inventory/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	envPrefix = "INVENTORY"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyAuthority = "authority"
	cfgKeyLogLevel  = "log.level"
	cfgKeyLogFormat = "log.format"
	cfgKeyLogFile   = "log.file"
)

// envKeys are the keys overridable by INVENTORY_* variables. data_dir is
// left out; its environment override is resolved by paths.ResolveDataDir so
// that a data_dir in config.yaml takes precedence over INVENTORY_DATA_DIR.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyAuthority,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
	cfgKeyLogFile,
}

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend   string        `yaml:"backend"`
	DataDir   string        `yaml:"data_dir,omitempty"`
	Authority string        `yaml:"authority"`
	Log       logConfigFile `yaml:"log"`
}

type logConfigFile struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// settings is the resolved configuration for one command run.
type settings struct {
	configDir string
	config    types.Config
	logLevel  string
	logFormat string
	logFile   string
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyAuthority, types.DefaultAuthority)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogFormat, "text")
	v.SetDefault(cfgKeyLogFile, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// resolveSettings combines flags, config.yaml, and the environment.
func resolveSettings(flags *rootFlags) (*settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	s := &settings{
		configDir: configDir,
		config: types.Config{
			Backend:   v.GetString(cfgKeyBackend),
			DataDir:   dataDir,
			Authority: v.GetString(cfgKeyAuthority),
		},
		logLevel:  v.GetString(cfgKeyLogLevel),
		logFormat: v.GetString(cfgKeyLogFormat),
		logFile:   v.GetString(cfgKeyLogFile),
	}
	if flags.authority != "" {
		s.config.Authority = flags.authority
	}
	if flags.logLevel != "" {
		s.logLevel = flags.logLevel
	}

	if err := s.config.Validate(); err != nil {
		return nil, &userError{err: fmt.Errorf("invalid configuration: %w", err)}
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:   types.BackendSQLite,
		DataDir:   dataDir,
		Authority: types.DefaultAuthority,
		Log: logConfigFile{
			Level:  "info",
			Format: "text",
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	header := []byte("# Inventory CLI configuration\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}
