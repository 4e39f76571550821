package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/schema"
)

func TestGenerateMermaidDefaultSchema(t *testing.T) {
	out := GenerateMermaid(schema.Default(), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	// Root is a circle, dependents are rectangles.
	assert.Contains(t, out, `form_125(("ACORD 125"))`)
	assert.Contains(t, out, `form_127["ACORD 127"]`)
	// Trigger fields label the edges.
	assert.Contains(t, out,
		`form_125 -- "policy_section_attached_vehicle_schedule_indicator_a" --> form_127`)
	// No overlay requested, no style block.
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaidOverlay(t *testing.T) {
	out := GenerateMermaid(schema.Default(), &Overlay{
		ActiveForms: []string{"form_125", "form_127", "form_125"},
		CurrentForm: "form_127",
	})

	assert.Contains(t, out, "classDef active")
	assert.Contains(t, out, "classDef current")
	assert.Contains(t, out, "class form_127 current;")
	// Duplicate active entries collapse to one class line.
	assert.Equal(t, 1, strings.Count(out, "class form_125 active;"))
}

func TestGenerateMermaidSanitizesIDs(t *testing.T) {
	reg, err := schema.Load([]byte(`
root_form: acord-125.v2
forms:
  acord-125.v2:
    title: Root
    fields: {x: ""}
  side/form:
    fields: {y: ""}
triggers:
  - field: x
    affirmative: ["yes"]
    activates: side/form
`))
	require.NoError(t, err)

	out := GenerateMermaid(reg, &Overlay{ActiveForms: []string{"side/form"}})
	assert.Contains(t, out, "acord_125_v2")
	assert.Contains(t, out, "class side_form active;")
	assert.NotContains(t, out, "side/form[")
}
