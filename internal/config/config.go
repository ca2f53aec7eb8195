package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in Config.Provider.
const (
	ProviderLSP = "lsp"
	ProviderAST = "ast"
)

// Config holds the user-tunable settings of the tool.
type Config struct {
	// TestRunner is the test command, invoked as
	// <runner> "<file>" -k "<name>".
	TestRunner string `yaml:"test_runner"`
	// TerminalName names the reusable execution context.
	TerminalName string `yaml:"terminal_name"`
	// Provider selects where outlines come from: "lsp" or "ast".
	Provider string `yaml:"provider"`
	// LanguageServer is the argv of the language server to spawn.
	LanguageServer []string `yaml:"language_server"`
	// Shell is the argv of the shell backing an execution context.
	Shell []string `yaml:"shell"`
	// UseSystemClipboard sends copies to the OS clipboard. When false the
	// copied text is only returned to the caller.
	UseSystemClipboard bool `yaml:"use_system_clipboard"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TestRunner:     "pytest",
		TerminalName:   "Test Runner",
		Provider:       ProviderLSP,
		LanguageServer: []string{"pylsp"},
		Shell:          []string{"/bin/sh"},

		UseSystemClipboard: true,
	}
}

// Load reads a configuration from a YAML file. Fields left out keep their
// defaults; a missing file yields Default().
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return c, nil
}

// Validate checks the fields that have no usable fallback.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderLSP:
		if len(c.LanguageServer) == 0 {
			return errors.New("language_server must not be empty when provider is lsp")
		}
	case ProviderAST:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.TestRunner == "" {
		return errors.New("test_runner must not be empty")
	}
	if c.TerminalName == "" {
		return errors.New("terminal_name must not be empty")
	}
	if len(c.Shell) == 0 {
		return errors.New("shell must not be empty")
	}
	return nil
}
