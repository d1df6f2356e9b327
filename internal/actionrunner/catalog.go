package actionrunner

import (
	"encoding/json"
	"os"

	"hostctl/internal/model"
	"hostctl/internal/pathtmpl"
)

// loadCatalog reads and filters the per-app action catalog. An entry
// lacking a name or command is silently dropped; a missing file or an
// empty final list both fail actions_catalog_missing, per spec.md §6.
func (r *Runner) loadCatalog(appID string) (*model.ActionCatalog, *ActionError) {
	path := pathtmpl.Render(r.CatalogPathTmpl, r.RepoRoot, appID, "")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ActionError{Code: ErrActionsCatalogMissing, Message: "action catalog not found: " + path}
	}

	var raw model.ActionCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ActionError{Code: ErrActionsCatalogMissing, Message: "action catalog is not valid JSON"}
	}

	kept := make([]model.ActionDefinition, 0, len(raw.Actions))
	for _, a := range raw.Actions {
		if a.Name == "" || len(a.Command) == 0 {
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return nil, &ActionError{Code: ErrActionsCatalogMissing, Message: "action catalog has no usable actions"}
	}
	return &model.ActionCatalog{Actions: kept}, nil
}
