// Package rules defines the contract with the external natural-language rule
// translator and the safe-extension protocol for applying its output to a
// live constraint model. Translator output is untrusted: structured rule sets
// are validated against a closed grammar, and constraint-extension fragments
// must pass static vetting against a fixed symbol vocabulary before an
// isolated interpreter may apply them.
package rules
