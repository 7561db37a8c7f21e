package semmapper

// Version is the module version reported by the CLI and the default
// User-Agent string.
const Version = "0.3.0"
