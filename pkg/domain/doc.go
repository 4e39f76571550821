// Package domain contains the core types of the FormFlow workflow: the
// session state, agent identifiers, phases, submission statuses, and the
// lifecycle hooks used for observability.
//
// The package has no dependencies on adapters or the workflow engine so that
// ports and stores can share these types freely.
package domain
