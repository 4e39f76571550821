package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inevo/formflow/pkg/schema"
)

// schemaCmd dumps the embedded form definitions for inspection.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the form schema",
	Long:  `Prints every form in the embedded schema with its fields, descriptions, and the questionnaire order.`,
	Run: func(cmd *cobra.Command, args []string) {
		reg := schema.Default()

		for _, formID := range reg.FormIDs() {
			marker := ""
			if formID == reg.RootForm() {
				marker = " (root)"
			}
			fmt.Printf("%s — %s%s\n", formID, reg.Title(formID), marker)
			for _, field := range reg.Fields(formID) {
				desc := reg.Description(formID, field)
				if desc != "" {
					fmt.Printf("  %s: %s\n", field, desc)
				} else {
					fmt.Printf("  %s\n", field)
				}
			}
			fmt.Println()
		}

		fmt.Printf("Common fields (asked once, propagated everywhere): %d\n", len(reg.CommonFields()))
		for _, field := range reg.CommonFields() {
			fmt.Printf("  %s\n", field)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
