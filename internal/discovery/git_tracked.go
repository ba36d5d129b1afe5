package discovery

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
)

// GitTrackedFiles returns the set of root-relative paths in the git index of
// root, by shelling out to `git ls-files`. An empty repository yields an
// empty set. Errors mean root is not a repository or git is not on PATH.
func GitTrackedFiles(root string) (map[string]bool, error) {
	cmd := exec.Command("git", "ls-files")
	cmd.Dir = root

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed in %s: %w (is this a git repository?)", root, err)
	}

	tracked := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			tracked[line] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parsing git ls-files output: %w", err)
	}
	return tracked, nil
}
