package main

import (
	"fmt"
	"os"
	"pantrypal/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "pantrypal",
	Short:         "Kitchen inventory tracker with expiration reminders",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfig()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, sweepCmd, tokenCmd)
}

func newLogger() (*zap.Logger, error) {
	return utils.NewLogger(utils.GetConfig("LOG_LEVEL"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
