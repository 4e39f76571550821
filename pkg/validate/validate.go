// Package validate implements input validation keyed by field-name
// heuristics. Dispatch is an ordered rule table: the first rule whose name
// predicate matches wins, and unmatched names pass through unchanged.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of validating one raw value.
type Result struct {
	Valid bool
	// Value is the normalized value when valid, the raw value otherwise.
	Value string
	// Message is a user-facing error when invalid.
	Message string
}

// Func validates and normalizes a single raw value.
type Func func(raw string) Result

// Rule pairs a predicate on the (lowercased) field name with a validator.
type Rule struct {
	Name    string
	Matches func(fieldName string) bool
	Fn      Func
}

// Table is an ordered validation rule set.
type Table struct {
	rules []Rule
}

func contains(substr string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, substr) }
}

// NewTable returns the default table: email-format validation for names
// containing "email", date validation for names containing "date" or "dob",
// pass-through for everything else.
func NewTable() *Table {
	return &Table{rules: []Rule{
		{Name: "email", Matches: contains("email"), Fn: Email},
		{Name: "date", Matches: anyOf(contains("date"), contains("dob")), Fn: Date},
	}}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(name string) bool {
		for _, p := range preds {
			if p(name) {
				return true
			}
		}
		return false
	}
}

// Append adds a rule at the end of the table (lowest priority).
func (t *Table) Append(r Rule) {
	t.rules = append(t.rules, r)
}

// Validate runs the first matching rule against the raw value. Matching is
// case-insensitive substring on the field name; no match means valid
// pass-through.
func (t *Table) Validate(fieldName, raw string) Result {
	name := strings.ToLower(fieldName)
	for _, r := range t.rules {
		if r.Matches(name) {
			return r.Fn(raw)
		}
	}
	return Result{Valid: true, Value: raw}
}

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.\w+$`)

// Email validates an email address and normalizes it to lowercase.
func Email(raw string) Result {
	v := strings.TrimSpace(raw)
	if emailPattern.MatchString(v) {
		return Result{Valid: true, Value: strings.ToLower(v)}
	}
	return Result{Valid: false, Value: raw, Message: "Invalid email format."}
}

// DateErrorMessage is the fixed user-facing message for rejected dates.
const DateErrorMessage = "Invalid date. Please use YYYY-MM-DD."

var dateLayouts = []string{"2006-01-02", "01/02/2006"}

// Date validates a calendar date and normalizes it to ISO YYYY-MM-DD.
// Accepted inputs are ISO dates and US MM/DD/YYYY.
func Date(raw string) Result {
	v := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return Result{Valid: true, Value: d.Format("2006-01-02")}
		}
	}
	return Result{Valid: false, Value: raw, Message: DateErrorMessage}
}

var (
	ssnPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	digitsOnly = regexp.MustCompile(`\D`)
)

// SSN validates the XXX-XX-XXXX social security format.
func SSN(raw string) Result {
	v := strings.TrimSpace(raw)
	if ssnPattern.MatchString(v) {
		return Result{Valid: true, Value: v}
	}
	return Result{Valid: false, Value: raw, Message: "Invalid SSN format. Expected XXX-XX-XXXX."}
}

// Zip validates a US ZIP or ZIP+4 code.
func Zip(raw string) Result {
	v := strings.TrimSpace(raw)
	if zipPattern.MatchString(v) {
		return Result{Valid: true, Value: v}
	}
	return Result{Valid: false, Value: raw, Message: "Invalid ZIP code."}
}

// Phone validates a US phone number and normalizes it to +1 E.164 form.
func Phone(raw string) Result {
	digits := digitsOnly.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 10:
		return Result{Valid: true, Value: "+1" + digits}
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return Result{Valid: true, Value: "+" + digits}
	}
	return Result{Valid: false, Value: raw, Message: "Invalid phone number length."}
}

// Currency validates a dollar amount, stripping "$" and thousands separators.
func Currency(raw string) Result {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if _, err := strconv.ParseFloat(clean, 64); err != nil {
		return Result{Valid: false, Value: raw, Message: "Invalid currency amount."}
	}
	return Result{Valid: true, Value: clean}
}
