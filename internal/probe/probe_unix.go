//go:build unix || linux || darwin

package probe

import (
	"os/exec"
	"strconv"
	"strings"
)

// findProcessesByName enumerates the live process table via ps and
// returns every pid whose command basename matches name exactly,
// case-insensitively.
func findProcessesByName(name string) []int {
	var pids []int

	cmd := exec.Command("ps", "-e", "-o", "pid,command")
	output, err := cmd.Output()
	if err != nil {
		return pids
	}

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "PID") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		procName := pathBasename(fields[1])
		if !strings.EqualFold(procName, name) {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
