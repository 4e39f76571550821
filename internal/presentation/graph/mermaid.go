package graph

import (
	"fmt"
	"strings"

	"github.com/inevo/formflow/pkg/schema"
)

// Overlay contains dynamic session data to visualize on the graph.
type Overlay struct {
	ActiveForms []string
	CurrentForm string
}

// GenerateMermaid produces a Mermaid flowchart of the form dependency graph:
// the root form as a circle, dependent forms as rectangles, and trigger
// fields as labeled edges. An overlay highlights the forms a session has
// activated and the form currently being filled.
func GenerateMermaid(reg *schema.Registry, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := reg.RootForm()

	for _, formID := range reg.FormIDs() {
		safeID := sanitizeMermaidID(formID)

		opener, closer := "[", "]"
		if formID == root {
			opener, closer = "((", "))" // Circle
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, reg.Title(formID), closer))
	}

	for _, t := range reg.Triggers() {
		safeFrom := sanitizeMermaidID(root)
		safeTo := sanitizeMermaidID(t.Activates)

		// Escape double quotes in the label for Mermaid
		label := strings.ReplaceAll(t.Field, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeFrom, label, safeTo))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef active fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.ActiveForms {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s active;\n", safeID))
			}
		}

		if overlay.CurrentForm != "" {
			safeCurrent := sanitizeMermaidID(overlay.CurrentForm)
			sb.WriteString(fmt.Sprintf("    class %s current;\n", safeCurrent))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
