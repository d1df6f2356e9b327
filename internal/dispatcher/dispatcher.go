// Package dispatcher implements the Request Dispatcher (C6): it decodes
// one wire request, validates it against the method table, enforces the
// host's allowed-apps set, routes to the Status Engine or Action Catalog
// Runner, and translates failures to wire error codes.
package dispatcher

import (
	"time"

	"hostctl/internal/actionrunner"
	"hostctl/internal/model"
	"hostctl/internal/probe"
	"hostctl/internal/statusengine"
	"hostctl/internal/wire"
)

// Dispatcher holds everything a single dispatch needs. It is immutable
// after construction; every read it performs (catalog, spec, job files)
// happens fresh on each call.
type Dispatcher struct {
	Profile  *model.HostProfile
	RepoRoot string
	Runner   *actionrunner.Runner
	Prober   probe.Prober
	Metrics  *Metrics
}

// New builds a Dispatcher. metrics may be nil to disable recording.
func New(profile *model.HostProfile, repoRoot string, runner *actionrunner.Runner, prober probe.Prober, metrics *Metrics) *Dispatcher {
	return &Dispatcher{Profile: profile, RepoRoot: repoRoot, Runner: runner, Prober: prober, Metrics: metrics}
}

type dispatchError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

type methodHandler func(d *Dispatcher, req *wire.Request) (interface{}, *dispatchError)

type methodSpec struct {
	required []string
	handler  methodHandler
}

var methodTable = map[string]methodSpec{
	"ping":           {nil, handlePing},
	"status.get":     {[]string{"appId"}, handleStatusGet},
	"config.get":     {[]string{"appId"}, handleConfigGet},
	"config.set":     {[]string{"appId", "key"}, handleConfigSet},
	"action.list":    {[]string{"appId"}, handleActionList},
	"action.invoke":  {[]string{"appId", "actionName"}, handleActionInvoke},
	"action.job.get": {[]string{"appId", "jobId"}, handleActionJobGet},
}

// Dispatch runs one wire request end to end: parse, validate, route,
// translate failures, and serialize the reply. This is the dispatcher's
// entire transport-facing surface; every Transport backend calls it once
// per request and writes the returned bytes back verbatim.
func (d *Dispatcher) Dispatch(requestBytes []byte) []byte {
	start := time.Now()

	req, err := wire.ParseRequest(requestBytes)
	if err != nil {
		d.record("", "", "error", start)
		return wire.BuildError(nil, wire.ErrBadArg, err.Error(), nil)
	}

	spec, ok := methodTable[req.Method]
	if !ok {
		d.record(req.Method, req.Params.AppID, "error", start)
		return wire.BuildError(req.ID, wire.ErrUnsupportedMethod, "unknown method: "+req.Method,
			map[string]interface{}{"method": req.Method})
	}

	if derr := requireParams(req, spec.required); derr != nil {
		d.record(req.Method, req.Params.AppID, "error", start)
		return wire.BuildError(req.ID, derr.Code, derr.Message, derr.Details)
	}

	if containsString(spec.required, "appId") && !d.Profile.IsAppAllowed(req.Params.AppID) {
		d.record(req.Method, req.Params.AppID, "error", start)
		return wire.BuildError(req.ID, wire.ErrUnsupportedApp, "app not allowed: "+req.Params.AppID,
			map[string]interface{}{"appId": req.Params.AppID})
	}

	response, derr := spec.handler(d, req)
	if derr != nil {
		d.record(req.Method, req.Params.AppID, "error", start)
		return wire.BuildError(req.ID, derr.Code, derr.Message, derr.Details)
	}

	d.record(req.Method, req.Params.AppID, "ok", start)
	return wire.BuildOk(req.ID, response)
}

func (d *Dispatcher) record(method, appID, outcome string, start time.Time) {
	if d.Metrics == nil {
		return
	}
	d.Metrics.observe(method, appID, outcome, time.Since(start).Seconds())
}

func requireParams(req *wire.Request, required []string) *dispatchError {
	for _, name := range required {
		present := false
		switch name {
		case "appId":
			present = req.Params.AppID != ""
		case "key":
			present = req.Params.Key != ""
		case "actionName":
			present = req.Params.ActionName != ""
		case "jobId":
			present = req.Params.JobID != ""
		}
		if !present {
			return &dispatchError{
				Code:    wire.ErrBadArg,
				Message: "missing required parameter: " + name,
				Details: map[string]interface{}{"param": name},
			}
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func handlePing(_ *Dispatcher, _ *wire.Request) (interface{}, *dispatchError) {
	return map[string]interface{}{
		"pong":             true,
		"interfaceName":    "generic-process-interface",
		"interfaceVersion": 1,
	}, nil
}

func handleStatusGet(d *Dispatcher, req *wire.Request) (interface{}, *dispatchError) {
	payload, serr := statusengine.Collect(
		d.RepoRoot,
		d.Profile.PathTemplates.StatusSpec,
		d.Profile.PathTemplates.StatusSnapshot,
		req.Params.AppID,
		d.Prober,
	)
	if serr != nil {
		return nil, &dispatchError{Code: serr.WireCode(), Message: serr.Message}
	}
	return payload, nil
}

func handleConfigGet(d *Dispatcher, req *wire.Request) (interface{}, *dispatchError) {
	result, aerr := d.Runner.ConfigGet(req.Params.AppID)
	if aerr != nil {
		return nil, translateActionError(aerr)
	}
	return result, nil
}

func handleConfigSet(d *Dispatcher, req *wire.Request) (interface{}, *dispatchError) {
	result, aerr := d.Runner.ConfigSet(req.Params.AppID, req.Params.Key, req.Params.Value)
	if aerr != nil {
		return nil, translateActionError(aerr)
	}
	return result, nil
}

func handleActionList(d *Dispatcher, req *wire.Request) (interface{}, *dispatchError) {
	result, aerr := d.Runner.ActionList(req.Params.AppID)
	if aerr != nil {
		return nil, translateActionError(aerr)
	}
	return result, nil
}

func handleActionInvoke(d *Dispatcher, req *wire.Request) (interface{}, *dispatchError) {
	job, aerr := d.Runner.Invoke(req.Params.AppID, req.Params.ActionName, req.Params.Args)
	if aerr != nil {
		return nil, translateActionError(aerr)
	}
	// The wire contract reports every accepted invocation as "queued",
	// regardless of the (possibly already terminal) state the runner
	// wrote synchronously, to stay forward-compatible with a future queue.
	return map[string]interface{}{
		"jobId":      job.JobID,
		"state":      "queued",
		"acceptedAt": job.AcceptedAt,
	}, nil
}

func handleActionJobGet(d *Dispatcher, req *wire.Request) (interface{}, *dispatchError) {
	job, err := d.Runner.GetJob(req.Params.AppID, req.Params.JobID)
	if err != nil {
		return nil, &dispatchError{
			Code:    wire.ErrNotFound,
			Message: "job not found: " + req.Params.JobID,
			Details: map[string]interface{}{"jobId": req.Params.JobID},
		}
	}
	return job, nil
}

func translateActionError(aerr *actionrunner.ActionError) *dispatchError {
	if aerr.Code == actionrunner.ErrActionsCatalogMissing {
		return &dispatchError{Code: wire.ErrNotFound, Message: aerr.Message}
	}
	return &dispatchError{Code: wire.ErrInternal, Message: aerr.Message}
}
