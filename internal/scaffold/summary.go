package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PrintSummary writes the post-run guidance for a successful result.
// pm is the package manager used for the hints.
func PrintSummary(w io.Writer, res *Result, pm string) {
	fmt.Fprintf(w, "\nCreated %s project '%s' in %s\n", res.Type, res.Name, res.Dir)
	if len(res.Stripped) > 0 {
		fmt.Fprintf(w, "Removed from the template: %s\n", strings.Join(res.Stripped, ", "))
	}

	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  cd %s\n", displayDir(res.Dir))
	if !contains(res.Steps, StepInstall) {
		fmt.Fprintf(w, "  %s install\n", pm)
	}
	fmt.Fprintf(w, "  %s start\n", pm)
}

// displayDir shortens dir relative to the working directory when possible.
func displayDir(dir string) string {
	wd, err := os.Getwd()
	if err != nil {
		return dir
	}
	rel, err := filepath.Rel(wd, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return dir
	}
	return rel
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
