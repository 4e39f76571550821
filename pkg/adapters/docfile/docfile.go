// Package docfile implements ports.DocumentService over JSON field-map
// documents on disk. A document carries the carrier-native field naming
// (CamelCase with positional suffixes); this adapter owns the translation to
// and from the snake_case schema naming, so the workflow core never sees
// native names.
package docfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
)

// nativeToSchema maps carrier-native document field names to schema names.
var nativeToSchema = map[string]string{
	"NamedInsured_FullName_A":                           "named_insured_full_name_a",
	"Policy_EffectiveDate_A":                            "policy_effective_date_a",
	"NamedInsured_Contact_PrimaryEmailAddress_A":        "named_insured_contact_primary_email_address_a",
	"CommercialPolicy_OperationsDescription_A":          "commercial_policy_operations_description_a",
	"NamedInsured_NAICSCode_A":                          "named_insured_naics_code_a",
	"NamedInsured_MailingAddress_LineOne_A":             "named_insured_mailing_address_line_one_a",
	"NamedInsured_MailingAddress_CityName_A":            "named_insured_mailing_address_city_name_a",
	"NamedInsured_MailingAddress_StateOrProvinceCode_A": "named_insured_mailing_address_state_or_province_code_a",
	"NamedInsured_MailingAddress_PostalCode_A":          "named_insured_mailing_address_postal_code_a",
	"NamedInsured_Primary_PhoneNumber_A":                "named_insured_primary_phone_number_a",
	"PolicySection_AttachedVehicleScheduleIndicator_A":  "policy_section_attached_vehicle_schedule_indicator_a",
	// Physical address city doubles as mailing city on short-form documents.
	"CommercialStructure_PhysicalAddress_CityName_A": "named_insured_mailing_address_city_name_a",
}

// tooltips carries the user-facing field descriptions lifted from the ACORD
// 125 template, keyed by schema field name.
var tooltips = map[string]string{
	"named_insured_full_name_a":                              "Full name of the first named insured as it should appear on the policy",
	"named_insured_contact_primary_email_address_a":          "Primary e-mail address of the named insured's contact",
	"named_insured_primary_phone_number_a":                   "Primary phone number of the named insured, including area code",
	"policy_effective_date_a":                                "Date the policy coverage becomes effective",
	"commercial_policy_operations_description_a":             "Description of the insured's business operations",
	"named_insured_mailing_address_line_one_a":               "First line of the named insured's mailing address",
	"named_insured_mailing_address_city_name_a":              "City of the named insured's mailing address",
	"named_insured_mailing_address_state_or_province_code_a": "State or province code of the named insured's mailing address",
	"named_insured_mailing_address_postal_code_a":            "Postal code of the named insured's mailing address",
	"named_insured_naics_code_a":                             "NAICS classification code for the insured's primary operations",
	"policy_section_attached_vehicle_schedule_indicator_a":   "Indicates whether a vehicle schedule (Business Auto section) is attached",
}

// document is the on-disk shape. Fields may hold strings, numbers or
// booleans; decoding is weakly typed so everything lands as a string.
type document struct {
	FormType string            `mapstructure:"form_type"`
	Fields   map[string]string `mapstructure:"fields"`
}

// Service implements ports.DocumentService.
type Service struct {
	outputDir string
}

// New creates a Service writing filled documents under outputDir.
func New(outputDir string) *Service {
	if outputDir == "" {
		outputDir = "filled_forms"
	}
	return &Service{outputDir: outputDir}
}

// FieldTooltip returns the document-derived description for a schema field,
// or "" when none is known.
func (s *Service) FieldTooltip(field string) string {
	return tooltips[field]
}

// ExtractFields reads a JSON document and returns schema-keyed values.
// Anything unreadable yields an empty map: ingestion is best-effort and the
// user can always continue by chat.
func (s *Service) ExtractFields(ctx context.Context, path string) map[string]string {
	out := map[string]string{}

	raw, err := os.ReadFile(path)
	if err != nil {
		return out
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return out
	}

	var doc document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true, // numbers and booleans become strings
	})
	if err != nil || decoder.Decode(generic) != nil {
		return out
	}

	for key, value := range doc.Fields {
		if value == "" {
			continue
		}
		if schemaKey, ok := nativeToSchema[key]; ok {
			out[schemaKey] = value
			continue
		}
		// Already schema-named keys pass through untouched.
		if _, ok := tooltips[key]; ok {
			out[key] = value
		}
	}
	return out
}

// WriteFilled renders the filled document for one form as JSON under the
// output directory, using native field names where a mapping exists.
func (s *Service) WriteFilled(ctx context.Context, formID string, values map[string]string) (string, error) {
	schemaToNative := make(map[string]string, len(nativeToSchema))
	for native, schemaKey := range nativeToSchema {
		// Aliased native names (the physical-address doubles) must not win
		// the inversion over the canonical mailing-address names.
		if current, seen := schemaToNative[schemaKey]; !seen || len(native) < len(current) {
			schemaToNative[schemaKey] = native
		}
	}

	fields := make(map[string]string, len(values))
	for key, value := range values {
		if value == "" {
			continue
		}
		if native, ok := schemaToNative[key]; ok {
			fields[native] = value
		} else {
			fields[key] = value
		}
	}

	payload := map[string]any{
		"form_type": formID,
		"fields":    fields,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode filled form %s: %w", formID, err)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.outputDir, "filled_"+formID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write filled form %s: %w", formID, err)
	}
	return path, nil
}
