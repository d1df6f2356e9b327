package actionrunner

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"hostctl/internal/model"
	"hostctl/internal/pathtmpl"
	"hostctl/internal/probe"
)

var jobCounter atomic.Int64

// newJobID mints a monotonically distinguishable job id even when two
// jobs are created within the same millisecond.
func newJobID(now time.Time) string {
	seq := jobCounter.Add(1)
	return fmt.Sprintf("job-%d-%d", now.UnixMilli(), seq)
}

func (r *Runner) jobPath(appID, jobID string) string {
	return pathtmpl.Render(r.JobPathTmpl, r.RepoRoot, appID, jobID)
}

func (r *Runner) writeJob(appID string, job *model.ActionJobRecord) *ActionError {
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return &ActionError{Code: ErrActionFailed, Message: "failed to marshal job record: " + err.Error()}
	}
	path := r.jobPath(appID, job.JobID)
	if err := probe.AtomicReplace(path, data, 0o644); err != nil {
		return &ActionError{Code: ErrActionFailed, Message: "failed to persist job record: " + err.Error()}
	}
	return nil
}

// GetJob reads back a previously written job record for action.job.get.
func (r *Runner) GetJob(appID, jobID string) (*model.ActionJobRecord, error) {
	data, err := os.ReadFile(r.jobPath(appID, jobID))
	if err != nil {
		return nil, err
	}
	var job model.ActionJobRecord
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
