// Package testkit holds shared checks used by fuzz targets and tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lilt/internal/ast"
	"lilt/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// module:
// 1) the module span is within the unit's content bounds
// 2) every node span is ordered and within the content bounds
// 3) the module span covers the union of top-level statement spans
func CheckSpanInvariants(unit *source.Unit, mod *ast.Module) error {
	if unit == nil || mod == nil {
		return fmt.Errorf("nil unit or module")
	}
	lenContent, err := safecast.Conv[uint32](len(unit.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	if mod.Sp.End > lenContent {
		return fmt.Errorf("module span end beyond content: %d > %d", mod.Sp.End, lenContent)
	}

	var walkErr error
	ast.Inspect(mod, func(n ast.Node) bool {
		if walkErr != nil {
			return false
		}
		sp := n.Span()
		if sp.Start > sp.End {
			walkErr = fmt.Errorf("inverted span %v on %T", sp, n)
			return false
		}
		if sp.Unit != unit.ID {
			walkErr = fmt.Errorf("span %v on %T points to unit %d, want %d", sp, n, sp.Unit, unit.ID)
			return false
		}
		if sp.End > lenContent {
			walkErr = fmt.Errorf("span %v on %T beyond content length %d", sp, n, lenContent)
			return false
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}

	if len(mod.Stmts) > 0 {
		union := mod.Stmts[0].Span()
		for _, s := range mod.Stmts[1:] {
			union = union.Cover(s.Span())
		}
		if union.Start < mod.Sp.Start || union.End > mod.Sp.End {
			return fmt.Errorf("module span %v does not cover statements %v", mod.Sp, union)
		}
	}
	return nil
}
