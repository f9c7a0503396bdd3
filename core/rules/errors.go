package rules

import "fmt"

// TranslationError means the external translator failed or returned output
// this core cannot use. The request aborts with no custom constraints added.
type TranslationError struct {
	Cause error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("rule translation failed: %v", e.Cause)
}

func (e *TranslationError) Unwrap() error { return e.Cause }

// UnsafeRuleError means a constraint-extension fragment violates the
// sandbox's vocabulary or structural rules. It is raised before execution.
type UnsafeRuleError struct {
	Fragment string
	Reason   string
}

func (e *UnsafeRuleError) Error() string {
	return fmt.Sprintf("unsafe rule fragment: %s", e.Reason)
}

// RuleExecutionError means a fragment passed static checks but failed when
// applied to the model. It carries the offending fragment for diagnostics.
type RuleExecutionError struct {
	Fragment string
	Cause    error
}

func (e *RuleExecutionError) Error() string {
	return fmt.Sprintf("rule fragment failed to apply: %v", e.Cause)
}

func (e *RuleExecutionError) Unwrap() error { return e.Cause }
