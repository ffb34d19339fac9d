package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "ARXDIGEST_CONFIG"
	dbPathEnv      = "ARXDIGEST_DB_PATH"
	payloadPathEnv = "ARXDIGEST_PAYLOAD_PATH"
	logLevelEnv    = "ARXDIGEST_LOG_LEVEL"
	keywordKeyEnv  = "ARXDIGEST_KEYWORD_API_KEY"
)

// SourceConfig describes one arXiv listing page to scrape.
type SourceConfig struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// KeywordAPIConfig wires the optional chat-completions keyword extractor.
// Extraction is disabled when APIKey is empty.
type KeywordAPIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// PreferenceConfig sets the starting favorites and keywords used when no
// persisted preferences exist yet. Entries may be comma or newline
// separated inside one string; normalization happens downstream.
type PreferenceConfig struct {
	FavoriteAuthors []string `yaml:"favoriteAuthors"`
	Keywords        []string `yaml:"keywords"`
}

// Config holds runtime settings for both the fetch pipeline and the browser.
type Config struct {
	DBPath      string           `yaml:"dbPath"`
	PayloadPath string           `yaml:"payloadPath"`
	LogLevel    string           `yaml:"logLevel"`
	Sources     []SourceConfig   `yaml:"sources"`
	KeywordAPI  KeywordAPIConfig `yaml:"keywordApi"`
	Preferences PreferenceConfig `yaml:"preferences"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A missing or unparseable file falls back to defaults with a
// notice rather than failing: the tool must start without any setup.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "config: cannot read %s: %v (using defaults)\n", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				fmt.Fprintf(os.Stderr, "config: cannot parse %s: %v (using defaults)\n", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dbPathEnv); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(payloadPathEnv); v != "" {
		c.PayloadPath = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(keywordKeyEnv); v != "" {
		c.KeywordAPI.APIKey = v
	}
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.PayloadPath == "" {
		return errors.New("PayloadPath is required")
	}
	if len(c.Sources) == 0 {
		return errors.New("at least one source is required")
	}
	for _, source := range c.Sources {
		if strings.TrimSpace(source.Key) == "" {
			return fmt.Errorf("source %q has no key", source.Label)
		}
		if !strings.HasPrefix(source.URL, "http://") && !strings.HasPrefix(source.URL, "https://") {
			return fmt.Errorf("source %s has invalid URL: %s", source.Key, source.URL)
		}
	}
	return nil
}

func mergeConfig(base, override Config) Config {
	if override.DBPath != "" {
		base.DBPath = override.DBPath
	}
	if override.PayloadPath != "" {
		base.PayloadPath = override.PayloadPath
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}
	if override.KeywordAPI.Endpoint != "" {
		base.KeywordAPI.Endpoint = override.KeywordAPI.Endpoint
	}
	if override.KeywordAPI.Model != "" {
		base.KeywordAPI.Model = override.KeywordAPI.Model
	}
	if override.KeywordAPI.APIKey != "" {
		base.KeywordAPI.APIKey = override.KeywordAPI.APIKey
	}
	if len(override.Preferences.FavoriteAuthors) > 0 {
		base.Preferences.FavoriteAuthors = override.Preferences.FavoriteAuthors
	}
	if len(override.Preferences.Keywords) > 0 {
		base.Preferences.Keywords = override.Preferences.Keywords
	}
	return base
}

func defaultConfig() Config {
	return Config{
		DBPath:      "arxdigest.db",
		PayloadPath: "digest.json",
		LogLevel:    "info",
		Sources: []SourceConfig{
			{
				Key:   "cs.CV",
				Label: "Computer Vision (cs.CV)",
				URL:   "https://arxiv.org/list/cs.CV/recent?skip=0&show=2000",
			},
			{
				Key:   "cs.RO",
				Label: "Robotics (cs.RO)",
				URL:   "https://arxiv.org/list/cs.RO/recent?skip=0&show=2000",
			},
		},
		KeywordAPI: KeywordAPIConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
	}
}
