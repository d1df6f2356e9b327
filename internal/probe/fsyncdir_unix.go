//go:build unix || linux || darwin

package probe

import "os"

// fsyncDirBestEffort fsyncs dir after a rename so the directory entry
// itself survives a crash. Failures are ignored: this is advisory
// durability, not a transactional guarantee.
func fsyncDirBestEffort(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
