// Package pathtmpl renders the host's filesystem path templates (C3):
// {repoRoot}, {appId}, {jobId}.
package pathtmpl

import (
	"fmt"
	"strings"
)

// Render substitutes {repoRoot}, {appId}, and {jobId} in tmpl. jobId may
// be empty when the template is known not to reference it.
//
// strings.Replacer performs a single left-to-right scan of tmpl and never
// rescans substituted text, which is exactly the non-recursive
// substitution this host's path and command templates require.
func Render(tmpl, repoRoot, appID, jobID string) string {
	r := strings.NewReplacer(
		"{repoRoot}", repoRoot,
		"{appId}", appID,
		"{jobId}", jobID,
	)
	return r.Replace(tmpl)
}

// RequireTokens fails if tmpl does not contain every token in want, e.g.
// ensuring actionJob contains {jobId} while statusSpec need not.
func RequireTokens(name, tmpl string, want ...string) error {
	for _, tok := range want {
		if !strings.Contains(tmpl, tok) {
			return fmt.Errorf("path template %q must contain %s", name, tok)
		}
	}
	return nil
}
