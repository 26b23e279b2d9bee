package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external program btl hands work to.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Path        string
	Detail      string
}

// MissingError reports a required program that could not be found on PATH.
type MissingError struct {
	Name    string
	Command string
	Detail  string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s unavailable: %s (install it or add it to PATH)", e.Name, e.Detail)
}

// Downloader describes the aria2 binary for the given executable name.
func Downloader(command string) Requirement {
	return Requirement{
		Name:        "aria2",
		Command:     command,
		Description: "Downloads torrents and magnet links",
	}
}

// Check resolves one requirement against PATH.
func Check(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Available = true
	status.Path = path
	return status
}

// Require resolves req and returns the absolute path of its binary, or a
// *MissingError.
func Require(req Requirement) (string, error) {
	status := Check(req)
	if !status.Available {
		return "", &MissingError{Name: status.Name, Command: status.Command, Detail: status.Detail}
	}
	return status.Path, nil
}
