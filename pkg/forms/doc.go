// Package forms implements the field-resolution and mutation logic over the
// schema registry: finding the next unfilled field in priority order, and
// applying values with cross-form propagation and trigger evaluation.
package forms
