package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inevo/formflow/internal/cli"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive form-filling conversation",
	Long:  `Starts the FormFlow engine in interactive mode and walks through the application forms question by question.`,
	Run: func(cmd *cobra.Command, args []string) {
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")

		if headless && jsonMode {
			fmt.Println("Error: --headless and --json cannot be used together.")
			os.Exit(1)
		}

		opts := runOptions(cmd)
		opts.Headless = headless
		opts.JSON = jsonMode
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.UserID, _ = cmd.Flags().GetString("user")

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runOptions collects the persistent engine flags shared by all commands.
func runOptions(cmd *cobra.Command) cli.RunOptions {
	var opts cli.RunOptions
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.RedisAddr, _ = cmd.Flags().GetString("redis")
	opts.OllamaURL, _ = cmd.Flags().GetString("ollama")
	opts.Model, _ = cmd.Flags().GetString("model")
	opts.OutputDir, _ = cmd.Flags().GetString("output-dir")
	return opts
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, strict IO)")
	chatCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	chatCmd.Flags().String("session", "", "Session ID to resume (default: generated)")
	chatCmd.Flags().String("user", "", "Applicant identifier")

	// Make 'chat' the default if no command is provided
	rootCmd.Run = chatCmd.Run
	rootCmd.Flags().AddFlagSet(chatCmd.Flags())
}
