//go:build windows

package probe

import (
	"os/exec"
	"strconv"
	"strings"
)

// findProcessesByName enumerates the live process table via tasklist and
// returns every pid whose image name matches name exactly,
// case-insensitively.
func findProcessesByName(name string) []int {
	var pids []int

	cmd := exec.Command("tasklist", "/fo", "csv", "/nh")
	output, err := cmd.Output()
	if err != nil {
		return pids
	}

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		image := strings.Trim(fields[0], "\"")
		pidStr := strings.Trim(fields[1], "\"")
		if !strings.EqualFold(pathBasename(image), name) {
			continue
		}
		pid, err := strconv.Atoi(pidStr)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
