package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// recordingID selects a specific recording; 0 means latest.
	recordingID int64
	// force overwrites existing output files without asking.
	force bool
	// quiet suppresses all output except errors.
	quiet bool
	// runValidation sends the finished list back to the model for a
	// replayability check.
	runValidation bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command. Running it executes the whole
// pipeline: locate recording, describe events, save the numbered file.
var rootCmd = &cobra.Command{
	Use:   "oadesc",
	Short: "Generate natural language descriptions from recorded UI actions.",
	Long: `oadesc reads a recording from the local recording database, converts each
captured action into a human-readable sentence via an LLM, and writes the
numbered sentences to a text file. Re-runs never clobber earlier output
unless asked to: declined overwrites fall back to a timestamped filename.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.oadesc.yaml or $HOME/.oadesc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	rootCmd.Flags().Int64Var(&recordingID, "recording-id", 0, "process a specific recording instead of the latest")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files without asking")
	rootCmd.Flags().BoolVar(&runValidation, "validate", false, "ask the model to sanity-check the generated list")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}
