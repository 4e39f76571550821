package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inevo/formflow/internal/validator"
	"github.com/inevo/formflow/pkg/schema"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a form schema definition",
	Long:  `Checks a form definition for dead forms, dangling triggers, and common fields missing from the root form. Validates the embedded schema unless --file is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")

		reg, err := loadRegistry(file)
		if err != nil {
			fmt.Printf("Error loading schema: %v\n", err)
			os.Exit(1)
		}

		if err := validator.ValidateSchema(reg); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Schema OK: %d forms, %d triggers.\n", len(reg.FormIDs()), len(reg.Triggers()))
	},
}

// loadRegistry reads a YAML definition from disk, or falls back to the
// embedded schema when path is empty.
func loadRegistry(path string) (*schema.Registry, error) {
	if path == "" {
		return schema.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Load(data)
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "Path to a YAML form definition (default: embedded schema)")
}
