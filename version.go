package formflow

// Version is the library version. Overridden at build time via
// -ldflags "-X github.com/inevo/formflow.Version=...".
var Version = "0.1.0-dev"
