package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			printNotice("# from %s", used)
		} else {
			printNotice("# defaults and environment only")
		}
		fmt.Print(string(out))
		return nil
	},
}

// defaultConfigYAML documents every recognized option with its default.
const defaultConfigYAML = `# oadesc configuration
logLevel: INFO # DEBUG, INFO, WARNING, ERROR, CRITICAL

database:
  # Path to the capture system's SQLite database.
  # path: ~/.openadapt/openadapt.db
  timeoutSeconds: 60

output:
  dir: prompts
  maxFileSizeBytes: 10000000
  maxEventsWithoutConfirm: 100

llm:
  provider: openai # openai, anthropic, ollama, gemini
  # model: gpt-4o-mini
  # apiKey: set via OADESC_LLM_APIKEY or .env instead
  requestTimeoutSeconds: 60
  maxRetries: 3
  maxConcurrent: 1
`

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .oadesc.yaml to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configName + ".yaml"
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("Wrote %s", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
