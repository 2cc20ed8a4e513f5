package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the oadesc version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("oadesc", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
