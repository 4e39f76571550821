// Package runner hosts interactive form-filling sessions: it connects the
// FormFlow engine to an IO strategy (plain text or JSON lines), sanitizes
// user input, and turns Ctrl+C into a workflow interrupt instead of a kill,
// so the preference menu opens exactly as if the user had typed "menu".
package runner
