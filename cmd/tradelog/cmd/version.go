package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the tradelog CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tradelog version %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "A personal trading journal with statistics and position sizing")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
