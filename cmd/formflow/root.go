package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formflow",
	Short: "FormFlow is a conversational insurance form-filling engine",
	Long: `FormFlow guides an applicant through commercial insurance application
forms in a chat, validating each answer, propagating shared fields across
forms, and finishing with a quote, a download, or an email submission.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session persistence (default: in-memory)")
	rootCmd.PersistentFlags().String("ollama", "", "Ollama base URL for conversational phrasing (default: deterministic templates)")
	rootCmd.PersistentFlags().String("model", "", "Ollama model name")
	rootCmd.PersistentFlags().String("output-dir", "filled_forms", "Directory for generated form documents")
}
