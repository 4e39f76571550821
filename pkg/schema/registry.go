package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/inevo/formflow/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed forms.yaml
var defaultDefinition []byte

// Trigger activates a dependent form when a field takes an affirmative value.
type Trigger struct {
	Field       string   `yaml:"field"`
	Affirmative []string `yaml:"affirmative"`
	Activates   string   `yaml:"activates"`
}

// Matches reports whether the value activates the trigger. Matching is
// case-insensitive on the trimmed value.
func (t Trigger) Matches(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range t.Affirmative {
		if v == a {
			return true
		}
	}
	return false
}

type formDef struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Sections    []string          `yaml:"sections"`
	Fields      map[string]string `yaml:"fields"`
}

type definition struct {
	CommonFields []string           `yaml:"common_fields"`
	RootForm     string             `yaml:"root_form"`
	Triggers     []Trigger          `yaml:"triggers"`
	Forms        map[string]formDef `yaml:"forms"`
}

// Registry is the static form schema table: which forms exist, their fields,
// the curated question order per form, and the common-field subset.
type Registry struct {
	def     definition
	ordered []string // form IDs in priority order
}

// Load parses a YAML definition into a Registry.
func Load(data []byte) (*Registry, error) {
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}
	if def.RootForm == "" {
		return nil, fmt.Errorf("form definition missing root_form")
	}
	if _, ok := def.Forms[def.RootForm]; !ok {
		return nil, fmt.Errorf("root form %s is not defined", def.RootForm)
	}
	for _, t := range def.Triggers {
		if _, ok := def.Forms[t.Activates]; !ok {
			return nil, fmt.Errorf("trigger for %s activates unknown form %s", t.Field, t.Activates)
		}
	}
	r := &Registry{def: def}
	r.ordered = orderFormIDs(def.Forms)
	return r, nil
}

// Default returns the registry built from the embedded definition.
// The embedded document is trusted; a parse failure is a build defect.
func Default() *Registry {
	r, err := Load(defaultDefinition)
	if err != nil {
		panic(fmt.Sprintf("embedded form definition invalid: %v", err))
	}
	return r
}

// orderFormIDs sorts by numeric suffix ascending, non-numeric IDs last.
func orderFormIDs(forms map[string]formDef) []string {
	ids := make([]string, 0, len(forms))
	for id := range forms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, iok := numericSuffix(ids[i])
		nj, jok := numericSuffix(ids[j])
		if iok != jok {
			return iok
		}
		if iok && ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
	return ids
}

func numericSuffix(id string) (int, bool) {
	idx := strings.LastIndex(id, "_")
	if idx < 0 || idx == len(id)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormIDs returns all form IDs in priority order.
func (r *Registry) FormIDs() []string {
	return append([]string(nil), r.ordered...)
}

// RootForm returns the ID of the root form.
func (r *Registry) RootForm() string {
	return r.def.RootForm
}

// CommonFields returns the fixed ordered list of common field names.
func (r *Registry) CommonFields() []string {
	return append([]string(nil), r.def.CommonFields...)
}

// SectionOrder returns the curated field order for a form, or nil for forms
// without one (the resolver then falls back to scanning the schema).
func (r *Registry) SectionOrder(formID string) []string {
	def, ok := r.def.Forms[formID]
	if !ok {
		return nil
	}
	return append([]string(nil), def.Sections...)
}

// Fields returns every field name defined for a form, sorted for stable
// iteration.
func (r *Registry) Fields(formID string) []string {
	def, ok := r.def.Forms[formID]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(def.Fields))
	for name := range def.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the form defines the field.
func (r *Registry) Has(formID, field string) bool {
	def, ok := r.def.Forms[formID]
	if !ok {
		return false
	}
	_, ok = def.Fields[field]
	return ok
}

// Description returns the human description for a field, or the raw field
// name if none is defined.
func (r *Registry) Description(formID, field string) string {
	if def, ok := r.def.Forms[formID]; ok {
		if d := def.Fields[field]; d != "" {
			return d
		}
	}
	return field
}

// Title returns the short display label for a form (e.g. "ACORD 125").
func (r *Registry) Title(formID string) string {
	if def, ok := r.def.Forms[formID]; ok && def.Title != "" {
		return def.Title
	}
	return formID
}

// Triggers returns the conditional-activation table.
func (r *Registry) Triggers() []Trigger {
	return append([]Trigger(nil), r.def.Triggers...)
}

// NewForms builds the initial forms-data map: every known form with every
// field present and unfilled.
func (r *Registry) NewForms() map[string]domain.FormData {
	forms := make(map[string]domain.FormData, len(r.def.Forms))
	for id, def := range r.def.Forms {
		data := make(domain.FormData, len(def.Fields))
		for name := range def.Fields {
			data[name] = ""
		}
		forms[id] = data
	}
	return forms
}
