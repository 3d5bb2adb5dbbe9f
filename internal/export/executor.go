package export

import (
	"fmt"

	"github.com/franz/photo-sorter/internal/util"
)

// Result holds per-pass completion counts for an export. Export is not
// fully transactional: completed moves and links are not rolled back when
// later items fail, and Errors carries the per-item failures.
type Result struct {
	Moved  int
	Linked int
	Errors []error
}

// Execute realizes a plan in two strictly ordered passes: every move
// first, then every link. Link sources reference move destinations, so
// the ordering is mandatory. Each item is best-effort; a failure is
// recorded and remaining items are still attempted.
func Execute(plan *Plan) *Result {
	result := &Result{Errors: make([]error, 0)}

	util.InfoLog("Executing export: %d moves, %d links", len(plan.Moves), len(plan.Links))

	for _, op := range plan.Moves {
		if err := util.MoveFile(op.Source, op.Dest); err != nil {
			util.ErrorLog("Move failed: %s -> %s: %v", op.Source, op.Dest, err)
			result.Errors = append(result.Errors, fmt.Errorf("move %s: %w", op.Source, err))
			continue
		}
		util.DebugLog("Moved: %s -> %s", op.Source, op.Dest)
		result.Moved++
	}

	for _, op := range plan.Links {
		if err := util.LinkOrCopy(op.Source, op.Dest); err != nil {
			util.ErrorLog("Link failed: %s -> %s: %v", op.Source, op.Dest, err)
			result.Errors = append(result.Errors, fmt.Errorf("link %s: %w", op.Dest, err))
			continue
		}
		util.DebugLog("Linked: %s -> %s", op.Source, op.Dest)
		result.Linked++
	}

	util.SuccessLog("Export complete: %d moved, %d linked, %d errors",
		result.Moved, result.Linked, len(result.Errors))
	return result
}
