//go:build windows || (!unix && !linux && !darwin)

package probe

// fsyncDirBestEffort is a no-op on platforms where directory fsync is
// either unsupported (Windows) or meaningless.
func fsyncDirBestEffort(dir string) {}
