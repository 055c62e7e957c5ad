package worker

import (
	"context"
	"fmt"
)

// ProgressResetter is the slice of the group service the reset job needs.
type ProgressResetter interface {
	ResetProgress(ctx context.Context, groupID int64, includeChildren bool) error
}

// ResetProgressJob reinitializes every card in a group subtree and discards
// its review history. The operation is idempotent, so resubmitting after a
// failure converges to the same end state.
type ResetProgressJob struct {
	Groups          ProgressResetter
	GroupID         int64
	IncludeChildren bool
}

func (j *ResetProgressJob) Name() string {
	return fmt.Sprintf("reset_progress(group=%d)", j.GroupID)
}

func (j *ResetProgressJob) Run(ctx context.Context) error {
	return j.Groups.ResetProgress(ctx, j.GroupID, j.IncludeChildren)
}
