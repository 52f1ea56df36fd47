// Package config resolves ocrboot settings from defaults, an optional
// .ocrboot.yaml file, OCRBOOT_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys shared by flags, environment variables and the config file
const (
	KeyRoot     = "root"
	KeyManifest = "manifest"
	KeyEnvFile  = "env_file"
	KeyVenv     = "venv"
	KeyTools    = "tools"
	KeyPython   = "python"
	KeyProgram  = "program"
	KeyProfile  = "profile"
	KeyLogLevel = "log_level"
	KeyPlatform = "platform"
)

// EnvPrefix is prepended to every environment variable override
const EnvPrefix = "OCRBOOT"

// Config holds resolved settings. Relative paths are resolved against Root.
type Config struct {
	Root     string `mapstructure:"root"`
	Manifest string `mapstructure:"manifest"` // empty selects the embedded manifest
	EnvFile  string `mapstructure:"env_file"`
	Venv     string `mapstructure:"venv"`
	Tools    string `mapstructure:"tools"`
	Python   string `mapstructure:"python"`
	Program  string `mapstructure:"program"`
	Profile  string `mapstructure:"profile"`
	LogLevel string `mapstructure:"log_level"`
	Platform string `mapstructure:"platform"` // empty means the running platform
}

// Defaults returns the built-in default values
func Defaults() map[string]any {
	python := "python3"
	if runtime.GOOS == "windows" {
		python = "python"
	}

	profile := ""
	if home, err := os.UserHomeDir(); err == nil {
		profile = filepath.Join(home, ".profile")
	}

	return map[string]any{
		KeyRoot:     ".",
		KeyManifest: "",
		KeyEnvFile:  ".env",
		KeyVenv:     "venv",
		KeyTools:    "tools",
		KeyPython:   python,
		KeyProgram:  "main.py",
		KeyProfile:  profile,
		KeyLogLevel: "info",
		KeyPlatform: "",
	}
}

// Load reads configuration. configFile, when set, must exist; otherwise
// .ocrboot.yaml is searched in the home and current directories.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".ocrboot")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := c.resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

// bindFlags binds every flag whose name, with dashes as underscores, is a setting key
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	known := Defaults()
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if _, ok := known[key]; !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func (c *Config) resolve() error {
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", c.Root, err)
	}
	c.Root = root

	c.EnvFile = c.underRoot(c.EnvFile)
	c.Venv = c.underRoot(c.Venv)
	c.Tools = c.underRoot(c.Tools)
	c.Program = c.underRoot(c.Program)
	if c.Manifest != "" {
		c.Manifest = c.underRoot(c.Manifest)
	}
	return nil
}

func (c *Config) underRoot(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// VenvPython returns the interpreter inside the virtual environment
func (c *Config) VenvPython(goos string) string {
	if goos == "windows" {
		return filepath.Join(c.Venv, "Scripts", "python.exe")
	}
	return filepath.Join(c.Venv, "bin", "python")
}

// VenvBin returns the venv directory prepended to PATH on launch
func (c *Config) VenvBin(goos string) string {
	return filepath.Dir(c.VenvPython(goos))
}
