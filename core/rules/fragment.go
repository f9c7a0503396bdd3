package rules

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strings"
)

// Vocabulary symbols a fragment may reference. Everything else is rejected
// before execution.
var fragmentVocabulary = map[string]bool{
	"M":          true, // model handle: Add, AddImplication, NewBoolVar
	"Work":       true, // Work(nurse, dayIndex, shiftName) -> Lit
	"Sum":        true,
	"Nurses":     true,
	"Seniors":    true,
	"Juniors":    true,
	"NumDays":    true,
	"DayOfWeek":  true,
	"ShiftNames": true,
	"Lit":        true,
}

var fragmentMethods = map[string]bool{
	"Add":            true,
	"AddImplication": true,
	"NewBoolVar":     true,
	"Not":            true,
	"OnlyEnforceIf":  true,
	"AtLeast":        true,
	"AtMost":         true,
	"Equal":          true,
	"Between":        true,
}

var fragmentBuiltins = map[string]bool{
	"append": true,
	"len":    true,
	"true":   true,
	"false":  true,
	"nil":    true,
	"_":      true,
}

var (
	fenceOpenRe  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
	isoDateRe    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// NormalizeFragment strips Markdown code fences and unescapes literal \n
// sequences, which chat models emit with some regularity.
func NormalizeFragment(raw string) string {
	s := strings.TrimSpace(raw)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	if strings.Contains(s, `\n`) && !strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, `\n`, "\n")
	}
	return strings.TrimSpace(s)
}

// VetFragment statically checks a fragment against the sandbox rules. It
// returns UnsafeRuleError for vocabulary or structural violations and
// RuleExecutionError when the fragment is not parseable Go at all. A nil
// return means the fragment is safe to hand to an Executor.
func VetFragment(fragment string) error {
	body, err := parseFragment(fragment)
	if err != nil {
		return &RuleExecutionError{Fragment: fragment, Cause: err}
	}
	v := &vetter{
		fragment: fragment,
		declared: collectDeclared(body),
		skip:     make(map[*ast.Ident]bool),
	}
	ast.Inspect(body, v.check)
	return v.err
}

// WrapFragment embeds the fragment in the source form executors evaluate: a
// single Apply function dot-importing the vocabulary.
func WrapFragment(fragment string) string {
	return fmt.Sprintf("package main\n\nimport . \"ext\"\n\nfunc Apply() {\n%s\n}\n", fragment)
}

func parseFragment(fragment string) (*ast.BlockStmt, error) {
	src := fmt.Sprintf("package rule\n\nfunc Apply() {\n%s\n}\n", fragment)
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "fragment.go", src, 0)
	if err != nil {
		return nil, fmt.Errorf("fragment is not valid Go: %w", err)
	}
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Name.Name == "Apply" {
			return fn.Body, nil
		}
	}
	return nil, fmt.Errorf("fragment parse produced no body")
}

// collectDeclared gathers every identifier the fragment introduces itself
// (short declarations, var specs, loop variables).
func collectDeclared(body *ast.BlockStmt) map[string]bool {
	declared := make(map[string]bool)
	ast.Inspect(body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.AssignStmt:
			if x.Tok == token.DEFINE {
				for _, lhs := range x.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						declared[id.Name] = true
					}
				}
			}
		case *ast.RangeStmt:
			if id, ok := x.Key.(*ast.Ident); ok {
				declared[id.Name] = true
			}
			if id, ok := x.Value.(*ast.Ident); ok {
				declared[id.Name] = true
			}
		case *ast.ValueSpec:
			for _, id := range x.Names {
				declared[id.Name] = true
			}
		}
		return true
	})
	return declared
}

type vetter struct {
	fragment string
	declared map[string]bool
	skip     map[*ast.Ident]bool
	err      error
}

func (v *vetter) unsafe(reason string) bool {
	if v.err == nil {
		v.err = &UnsafeRuleError{Fragment: v.fragment, Reason: reason}
	}
	return false
}

func (v *vetter) check(n ast.Node) bool {
	if v.err != nil {
		return false
	}
	switch x := n.(type) {
	case *ast.GoStmt, *ast.DeferStmt, *ast.SelectStmt, *ast.SendStmt,
		*ast.ChanType, *ast.FuncLit, *ast.TypeSpec, *ast.ReturnStmt:
		return v.unsafe("forbidden construct in rule fragment")
	case *ast.RangeStmt:
		id, ok := x.X.(*ast.Ident)
		if !ok || (id.Name != "Nurses" && id.Name != "Seniors" && id.Name != "Juniors") {
			return v.unsafe("range is only allowed over the nurse lists; iterate days with a counted index loop")
		}
	case *ast.AssignStmt:
		if x.Tok != token.DEFINE {
			for _, lhs := range x.Lhs {
				if id, ok := lhs.(*ast.Ident); ok && fragmentVocabulary[id.Name] {
					return v.unsafe(fmt.Sprintf("vocabulary symbol %s is read-only", id.Name))
				}
			}
		}
	case *ast.IndexExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			if !v.declared[id.Name] && id.Name != "DayOfWeek" && id.Name != "ShiftNames" &&
				id.Name != "Nurses" && id.Name != "Seniors" && id.Name != "Juniors" {
				return v.unsafe(fmt.Sprintf("indexing into %s is not allowed", id.Name))
			}
		}
	case *ast.BasicLit:
		if x.Kind == token.STRING && isoDateRe.MatchString(x.Value) {
			return v.unsafe("date-string comparisons are not allowed; use the day index or weekday label")
		}
	case *ast.SelectorExpr:
		v.skip[x.Sel] = true
		if !fragmentMethods[x.Sel.Name] {
			return v.unsafe(fmt.Sprintf("method or field %s is outside the sandbox vocabulary", x.Sel.Name))
		}
		if x.Sel.Name == "Not" && containsIdent(x.X, "Sum") {
			return v.unsafe("a sum cannot be negated directly; introduce an auxiliary condition variable")
		}
	case *ast.CallExpr:
		if sel, ok := x.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "AddImplication" {
			for _, arg := range x.Args {
				if containsIdent(arg, "Sum") || containsComparison(arg) {
					return v.unsafe("implications must relate literals; constrain the sum through an auxiliary condition variable first")
				}
			}
		}
	case *ast.Ident:
		if v.skip[x] {
			return true
		}
		if fragmentVocabulary[x.Name] || fragmentBuiltins[x.Name] || v.declared[x.Name] {
			return true
		}
		return v.unsafe(fmt.Sprintf("identifier %s is outside the sandbox vocabulary", x.Name))
	}
	return true
}

func containsIdent(node ast.Node, name string) bool {
	found := false
	ast.Inspect(node, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name {
			found = true
			return false
		}
		return !found
	})
	return found
}

func containsComparison(node ast.Node) bool {
	found := false
	ast.Inspect(node, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			switch sel.Sel.Name {
			case "AtLeast", "AtMost", "Equal", "Between":
				found = true
				return false
			}
		}
		return !found
	})
	return found
}
