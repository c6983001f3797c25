package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoCredentials signals that no OpenAI API key could be resolved from
// any source. Generation attempts must hard-stop on it.
var ErrNoCredentials = errors.New("no OpenAI API key available")

// Config represents the application configuration
type Config struct {
	DataPath    string `yaml:"data_path"`
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	Model       string `yaml:"model"`
	MaxTokens   int    `yaml:"max_tokens"`
	LogLevel    string `yaml:"log_level"`

	// RequestTimeoutSeconds bounds a single generation request. Zero means
	// no timeout, which matches the sourced behavior.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// OpenAIKey is the secrets-file credential. The nested api section
	// mirrors deployments that keep credentials in a sub-section.
	OpenAIKey string `yaml:"openai_key"`
	API       struct {
		OpenAIKey string `yaml:"openai_key"`
	} `yaml:"api"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		DataPath:    "inventory.json",
		Port:        8080,
		MetricsPort: 9090,
		Model:       "o3-mini",
		MaxTokens:   15000,
		LogLevel:    "info",
	}
}

// Load reads the yaml configuration at path. A missing file yields the
// defaults; a present but unparseable file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.DataPath == "" {
		cfg.DataPath = "inventory.json"
	}
	if cfg.Model == "" {
		cfg.Model = "o3-mini"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 15000
	}
	return cfg, nil
}

// ResolveAPIKey resolves the OpenAI credential in order of precedence: the
// OPENAI_API_KEY environment variable, the config's openai_key, the nested
// api.openai_key, then the interactive prompt. The first non-empty value
// wins; if every source is empty the result is ErrNoCredentials.
func (c *Config) ResolveAPIKey(prompt func() (string, error)) (string, error) {
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(c.OpenAIKey); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(c.API.OpenAIKey); key != "" {
		return key, nil
	}
	if prompt != nil {
		key, err := prompt()
		if err != nil {
			return "", err
		}
		if key = strings.TrimSpace(key); key != "" {
			return key, nil
		}
	}
	return "", ErrNoCredentials
}

// TerminalPrompt returns an interactive credential prompt reading one line
// from r after announcing itself on w.
func TerminalPrompt(r io.Reader, w io.Writer) func() (string, error) {
	return func() (string, error) {
		fmt.Fprint(w, "OpenAI API Key: ")
		scanner := bufio.NewScanner(r)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", nil
		}
		return scanner.Text(), nil
	}
}
