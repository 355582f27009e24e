package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/larderhq/larder/internal/llm"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Collection configuration
	Root      string
	IndexFile string

	// Text-generation service
	GenAIKey   string
	GenAIModel string

	// Deploy target
	DeployHost    string
	DeployPath    string
	DeployCommand string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.larder.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// .env files load before viper binds the environment.
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindAPIKeys()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".larder")
		}
	}

	// A missing config file is fine; env and flags still apply.
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		Root:      viper.GetString("root"),
		IndexFile: viper.GetString("index_file"),

		GenAIKey:   firstNonEmpty(viper.GetString("GEMINI_API_KEY"), viper.GetString("GOOGLE_API_KEY")),
		GenAIModel: viper.GetString("genai_model"),

		DeployHost:    viper.GetString("deploy_host"),
		DeployPath:    viper.GetString("deploy_path"),
		DeployCommand: viper.GetString("deploy_command"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.Root == "" {
		config.Root = "."
	}
	if config.GenAIModel == "" {
		config.GenAIModel = llm.DefaultModel
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags, which
// take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindAPIKeys explicitly binds API key environment variables to viper.
func bindAPIKeys() {
	apiKeys := []string{
		"GEMINI_API_KEY",
		"GOOGLE_API_KEY",
	}
	for _, key := range apiKeys {
		if err := viper.BindEnv(key); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
