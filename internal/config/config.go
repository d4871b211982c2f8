package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BotName       string `yaml:"bot_name" mapstructure:"bot_name"`
	KnowledgeFile string `yaml:"knowledge_file" mapstructure:"knowledge_file"`
	LogFile       string `yaml:"log_file" mapstructure:"log_file"`
	Theme         string `yaml:"theme" mapstructure:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		BotName:       "MiniGPT",
		KnowledgeFile: "knowledge_base.json",
		LogFile:       "conversation_logs.txt",
		Theme:         "green",
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "minigpt")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "minigpt")
}

// Load reads config.yaml from the working directory or the user config dir,
// with MINIGPT_* environment variables taking precedence. A missing config
// file is fine; defaults apply.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath(configDir())

	v.SetEnvPrefix("MINIGPT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault writes a starter config.yaml to the user config dir and
// returns its path. Refuses to overwrite an existing file.
func WriteDefault() (string, error) {
	dir := configDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for errors and fills blank fields.
func (c *Config) Validate() error {
	if c.BotName == "" {
		return fmt.Errorf("config: bot_name is required")
	}
	if c.KnowledgeFile == "" {
		c.KnowledgeFile = "knowledge_base.json"
	}
	if c.LogFile == "" {
		c.LogFile = "conversation_logs.txt"
	}
	if c.Theme == "" {
		c.Theme = "green"
	}
	return nil
}
