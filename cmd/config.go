package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/openadapt/oadesc/internal/logger"
	"github.com/openadapt/oadesc/types"
	"github.com/spf13/viper"
)

const (
	configName = ".oadesc"
	envPrefix  = "OADESC"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	if err := validate.Struct(config); err != nil {
		return err
	}
	return nil
}

// InitConfig reads in the config file and environment variables if set,
// then configures logging from the result.
func InitConfig() {
	// Load .env first if present; a missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. OADESC_DATABASE_PATH
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	setConfigDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				fmt.Fprintln(os.Stderr, "Error: specified config file not found:", cfgFile)
				os.Exit(1)
			}
			// No config file found by search paths; defaults and env apply.
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
			os.Exit(1)
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	logger.Setup(GlobalAppConfig.LogLevel, GlobalAppConfig.Quiet)
}

func setConfigDefaults() {
	viper.SetDefault("logLevel", "INFO")

	viper.SetDefault("database.path", defaultDatabasePath())
	viper.SetDefault("database.timeoutSeconds", 60)

	viper.SetDefault("output.dir", "prompts")
	viper.SetDefault("output.maxFileSizeBytes", 10_000_000)
	viper.SetDefault("output.maxEventsWithoutConfirm", 100)

	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.requestTimeoutSeconds", 60)
	viper.SetDefault("llm.maxRetries", 3)
	viper.SetDefault("llm.maxConcurrent", 1)
}

// defaultDatabasePath points at the capture system's default database
// location, falling back to the working directory when home is unknown.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "openadapt.db"
	}
	return filepath.Join(home, ".openadapt", "openadapt.db")
}

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
