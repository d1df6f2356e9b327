//go:build !windows && !unix && !linux && !darwin

package probe

// findProcessesByName has no supported enumeration strategy on this
// build target; process_running operations always report not running.
func findProcessesByName(name string) []int {
	return nil
}
