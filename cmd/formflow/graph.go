package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inevo/formflow/internal/presentation/graph"
	"github.com/inevo/formflow/pkg/schema"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the form dependency graph as Mermaid",
	Long:  `Prints a Mermaid flowchart of the forms and the trigger fields that activate them. With --session, highlights the forms that session has activated.`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionID, _ := cmd.Flags().GetString("session")

		var overlay *graph.Overlay
		if sessionID != "" {
			engine, cleanup := getSessionEngine(cmd)
			defer cleanup()

			state, err := engine.Session(cmd.Context(), sessionID)
			if err != nil {
				fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
				os.Exit(1)
			}

			overlay = &graph.Overlay{ActiveForms: state.ActiveForms}
			// PendingField is "<formID>:<field>" while a question is open.
			if formID, _, ok := strings.Cut(state.PendingField, ":"); ok {
				overlay.CurrentForm = formID
			}
		}

		fmt.Print(graph.GenerateMermaid(schema.Default(), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Session ID to overlay on the graph")
}
