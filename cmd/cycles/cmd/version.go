package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the cycles CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cycles version %s\n", version)
		fmt.Println("Streaming dominant-cycle estimation for price series")
		fmt.Println("https://github.com/rustyeddy/cycles")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
