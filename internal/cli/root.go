package cli

import (
	"github.com/paramreg/registry/internal/constants"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "registry",
	Short: constants.AppName,
	Long:  "Categories and configuration parameters behind a REST API, stored in MongoDB, PostgreSQL or SQLite",
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}
