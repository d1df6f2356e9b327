// Package hostprofile loads and validates the Host Profile (C8): the
// per-process, immutable JSON config naming a host's allowed apps, its
// four filesystem path templates, and its transport backend.
//
// Grounded on internal/config.LoadConfig's viper.ReadInConfig +
// viper.Unmarshal pattern, adapted from a YAML package-global singleton
// to an explicit JSON Load(path) returning a fresh value, since a host
// process may need to reload or test against multiple profiles.
package hostprofile

import (
	"fmt"

	"github.com/spf13/viper"

	"hostctl/internal/model"
	"hostctl/internal/pathtmpl"
)

var knownBackends = map[string]bool{
	"socket": true,
	"http":   true,
}

// Load reads and validates the Host Profile at path.
func Load(path string) (*model.HostProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading host profile %s: %w", path, err)
	}

	var profile model.HostProfile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("parsing host profile %s: %w", path, err)
	}

	if err := Validate(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Validate enforces the invariants §6 requires of a Host Profile:
// a non-empty allowed-apps set, a recognized transport backend, and
// path templates carrying the tokens each is rendered with.
func Validate(profile *model.HostProfile) error {
	if len(profile.AllowedApps) == 0 {
		return fmt.Errorf("host profile: allowedApps must not be empty")
	}
	if !knownBackends[profile.IPC.Backend] {
		return fmt.Errorf("host profile: unknown ipc backend %q", profile.IPC.Backend)
	}

	pt := profile.PathTemplates
	if err := pathtmpl.RequireTokens("statusSpec", pt.StatusSpec, "{repoRoot}", "{appId}"); err != nil {
		return err
	}
	if err := pathtmpl.RequireTokens("statusSnapshot", pt.StatusSnapshot, "{repoRoot}", "{appId}"); err != nil {
		return err
	}
	if err := pathtmpl.RequireTokens("actionCatalog", pt.ActionCatalog, "{repoRoot}", "{appId}"); err != nil {
		return err
	}
	if err := pathtmpl.RequireTokens("actionJob", pt.ActionJob, "{repoRoot}", "{appId}", "{jobId}"); err != nil {
		return err
	}
	return nil
}
