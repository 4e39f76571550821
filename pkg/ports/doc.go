// Package ports defines the driven-side interfaces of FormFlow: state
// persistence and the external collaborators (text generation, document I/O,
// mail, quoting). The workflow core depends only on these contracts;
// adapters under pkg/adapters and internal/adapters implement them.
package ports
