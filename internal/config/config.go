package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/errors"
)

type (
	Config struct {
		Language    string   `toml:"language"`
		CommitStyle string   `toml:"commit_style"`
		Defaults    Defaults `toml:"defaults"`

		PathFile string `toml:"-"`
	}

	// Defaults are the pre-selected answers of the installer prompts.
	Defaults struct {
		Prettier     bool `toml:"prettier"`
		ESLint       bool `toml:"eslint"`
		CommitPrefix bool `toml:"commit_prefix"`
	}
)

const (
	configDirName  = ".husky-installer"
	configFileName = "config.toml"

	// LocalFileName is the per-repository override read from the repo root.
	LocalFileName = ".husky-installer.toml"

	defaultLang  = LangEN
	defaultStyle = string(commitmsg.StyleEmoji)
)

const (
	KeyLanguage     = "language"
	KeyCommitStyle  = "commit_style"
	KeyPrettier     = "prettier"
	KeyESLint       = "eslint"
	KeyCommitPrefix = "commit_prefix"
)

// Keys lists the keys accepted by Set, in display order.
func Keys() []string {
	return []string{KeyLanguage, KeyCommitStyle, KeyPrettier, KeyESLint, KeyCommitPrefix}
}

func DefaultConfig() *Config {
	return &Config{
		Language:    defaultLang,
		CommitStyle: defaultStyle,
		Defaults: Defaults{
			Prettier:     true,
			ESLint:       true,
			CommitPrefix: true,
		},
	}
}

// DefaultPath returns ~/.husky-installer/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.ErrInvalidConfig.WithError(fmt.Errorf("error getting home directory: %w", err))
	}
	if home == "" {
		return "", errors.ErrInvalidConfig.WithError(fmt.Errorf("home directory is not set"))
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// LoadConfig reads the global configuration, creating it with defaults the
// first time.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(path)
}

func LoadConfigFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CreateDefaultConfig(path)
	} else if err != nil {
		return nil, errors.ErrInvalidConfig.WithError(err).WithContext("path", path)
	}

	cfg := DefaultConfig()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.PathFile = path

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func CreateDefaultConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.PathFile = path

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithLocalOverrides returns a copy of cfg with the keys set in
// <dir>/.husky-installer.toml applied. A missing file is not an error.
func WithLocalOverrides(cfg *Config, dir string) (*Config, error) {
	merged := *cfg
	path := filepath.Join(dir, LocalFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &merged, nil
	}

	if err := decodeFile(path, &merged); err != nil {
		return nil, err
	}
	if err := Validate(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.ErrInvalidConfig.WithError(err).WithContext("path", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.ErrUnknownConfigKey.
			WithError(fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))).
			WithContext("path", path)
	}
	return nil
}

func SaveConfig(cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if cfg.PathFile == "" {
		return errors.ErrInvalidConfig.WithError(fmt.Errorf("config file path is not set"))
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.ErrInvalidConfig.WithError(err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.PathFile), 0755); err != nil {
		return errors.ErrWriteConfig.WithError(err).WithContext("path", cfg.PathFile)
	}
	if err := os.WriteFile(cfg.PathFile, buf.Bytes(), 0644); err != nil {
		return errors.ErrWriteConfig.WithError(err).WithContext("path", cfg.PathFile)
	}
	return nil
}

func Validate(cfg *Config) error {
	if cfg.Language == "" {
		return errors.ErrInvalidConfig.WithError(fmt.Errorf("language cannot be empty"))
	}
	if !IsSupportedLanguage(cfg.Language) {
		return errors.ErrInvalidConfig.
			WithError(fmt.Errorf("unsupported language: %s", cfg.Language)).
			WithSuggestion("Use one of: " + strings.Join(SupportedLanguages(), ", "))
	}
	if _, err := commitmsg.ParseStyle(cfg.CommitStyle); err != nil {
		return err
	}
	return nil
}

// Set updates a single key from its string form and validates the result.
// On error cfg is left unchanged.
func Set(cfg *Config, key, value string) error {
	next := *cfg
	value = strings.TrimSpace(value)

	switch key {
	case KeyLanguage:
		next.Language = strings.ToLower(value)
	case KeyCommitStyle:
		style, err := commitmsg.ParseStyle(value)
		if err != nil {
			return err
		}
		next.CommitStyle = string(style)
	case KeyPrettier, KeyESLint, KeyCommitPrefix:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.ErrInvalidConfig.
				WithError(fmt.Errorf("%s expects true or false, got %q", key, value)).
				WithSuggestion("Use true or false")
		}
		switch key {
		case KeyPrettier:
			next.Defaults.Prettier = b
		case KeyESLint:
			next.Defaults.ESLint = b
		default:
			next.Defaults.CommitPrefix = b
		}
	default:
		return errors.ErrUnknownConfigKey.WithContext("key", key)
	}

	if err := Validate(&next); err != nil {
		return err
	}
	*cfg = next
	return nil
}

// Get returns the string form of key.
func Get(cfg *Config, key string) (string, error) {
	switch key {
	case KeyLanguage:
		return cfg.Language, nil
	case KeyCommitStyle:
		return cfg.CommitStyle, nil
	case KeyPrettier:
		return strconv.FormatBool(cfg.Defaults.Prettier), nil
	case KeyESLint:
		return strconv.FormatBool(cfg.Defaults.ESLint), nil
	case KeyCommitPrefix:
		return strconv.FormatBool(cfg.Defaults.CommitPrefix), nil
	default:
		return "", errors.ErrUnknownConfigKey.WithContext("key", key)
	}
}

// Style returns the parsed commit style. The config must have been validated.
func (c *Config) Style() commitmsg.Style {
	style, err := commitmsg.ParseStyle(c.CommitStyle)
	if err != nil {
		return commitmsg.StyleEmoji
	}
	return style
}
