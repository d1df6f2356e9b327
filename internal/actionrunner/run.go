package actionrunner

import (
	"encoding/json"
	"time"

	"hostctl/internal/model"
	"hostctl/internal/probe"
)

// Runner executes catalog-defined actions for a single host. It is the
// Action Catalog Runner component: it loads per-app catalogs, renders
// command templates, launches the resulting process foreground or
// detached, and persists a job record for every invocation.
type Runner struct {
	RepoRoot        string
	CatalogPathTmpl string
	JobPathTmpl     string
	Prober          probe.Prober
	Now             func() time.Time
}

// NewRunner builds a Runner against a running host's repo root and
// profile-configured path templates.
func NewRunner(repoRoot, catalogPathTmpl, jobPathTmpl string, prober probe.Prober) *Runner {
	return &Runner{
		RepoRoot:        repoRoot,
		CatalogPathTmpl: catalogPathTmpl,
		JobPathTmpl:     jobPathTmpl,
		Prober:          prober,
		Now:             time.Now,
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func timeFormat(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// Invoke runs the named action for appID with the given raw JSON
// arguments and returns the job record it wrote. The wire layer always
// reports state "queued" for the response to action.invoke regardless
// of what this returns, per spec.md §9; GetJob reflects the true
// terminal state immediately afterward since execution here is
// synchronous.
func (r *Runner) Invoke(appID, actionName string, rawArgs map[string]json.RawMessage) (*model.ActionJobRecord, *ActionError) {
	catalog, cerr := r.loadCatalog(appID)
	if cerr != nil {
		return nil, cerr
	}

	accepted := r.now()
	job := &model.ActionJobRecord{
		JobID:      newJobID(accepted),
		State:      model.JobQueued,
		AcceptedAt: timeFormat(accepted),
	}

	// An unknown action name is a per-invocation failure, not a dispatch
	// failure: the wire call still accepts and a job record is written,
	// per the unknown_action scenario.
	action := catalog.FindAction(actionName)
	if action == nil {
		r.finishFailed(job, &ActionError{Code: ErrUnknownAction, Message: "unknown action: " + actionName})
		_ = r.writeJob(appID, job)
		return job, nil
	}

	args := ParseArgs(rawArgs)

	rendered, rerr := RenderCommand(action.Command, args)
	if rerr != nil {
		r.finishFailed(job, rerr)
		_ = r.writeJob(appID, job)
		return job, nil
	}

	started := r.now()
	job.StartedAt = timeFormat(started)

	cwd := ResolveCwd(r.RepoRoot, action.Cwd)
	timeout := time.Duration(action.EffectiveTimeout() * float64(time.Second))

	if action.Detached {
		pid, err := probe.RunDetached(rendered[0], rendered[1:], cwd)
		if err != nil {
			r.finishFailed(job, &ActionError{Code: ErrActionLaunchFailed, Message: err.Error()})
			_ = r.writeJob(appID, job)
			return job, nil
		}
		job.State = model.JobSucceeded
		job.FinishedAt = timeFormat(r.now())
		var pidValue interface{}
		if pid > 0 {
			pidValue = pid
		}
		job.Result, _ = json.Marshal(map[string]interface{}{"detached": true, "pid": pidValue, "action": actionName})
		_ = r.writeJob(appID, job)
		return job, nil
	}

	res := probe.RunForeground(rendered[0], rendered[1:], cwd, timeout)
	job.Stdout = string(res.Stdout)
	job.Stderr = string(res.Stderr)
	job.FinishedAt = timeFormat(r.now())

	if obj, ok := ExtractJSONObject(res.Stdout); ok {
		job.Result = obj
	}

	switch {
	case res.TimedOut:
		job.State = model.JobTimeout
		job.Error = &model.WireError{Code: ErrActionTimeout, Message: "action timed out after " + timeout.String()}
	case res.Err != nil:
		r.finishFailed(job, &ActionError{Code: ErrActionFailed, Message: res.Err.Error()})
	default:
		job.State = model.JobSucceeded
	}

	_ = r.writeJob(appID, job)
	return job, nil
}

func (r *Runner) finishFailed(job *model.ActionJobRecord, aerr *ActionError) {
	job.State = model.JobFailed
	if job.FinishedAt == "" {
		job.FinishedAt = timeFormat(r.now())
	}
	job.Error = &model.WireError{Code: aerr.Code, Message: aerr.Message}
}
