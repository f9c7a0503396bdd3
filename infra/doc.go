// Package infra contains technical adapters such as the solver backend,
// the rule sandbox, the LLM translator and metrics exporters. These packages
// should depend only on the interfaces defined in the core packages.
package infra
