package discovery

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
)

// RecentlyChangedFiles runs `git log --name-only -n depth` in root and
// returns, for every path touched by one of the last depth commits, the
// number of those commits that touched it. Paths are relative to root,
// matching GitTrackedFiles. Errors are returned under the same conditions as
// GitTrackedFiles (not a git repository, git not on PATH).
func RecentlyChangedFiles(root string, depth int) (map[string]int, error) {
	if depth <= 0 {
		return map[string]int{}, nil
	}

	cmd := exec.Command("git", "log", "--name-only", "--pretty=format:", "-n", fmt.Sprintf("%d", depth))
	cmd.Dir = root

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log failed in %s: %w (is this a git repository?)", root, err)
	}

	counts := make(map[string]int)
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		counts[line]++
	}

	return counts, nil
}
