package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RepoNotFound reports that no repository was discovered from dir.
func RepoNotFound(dir string, cause error) *Error {
	return Wrap(cause, ErrCodeRepoNotFound, fmt.Sprintf("no git repository found at or above %s", dir)).
		WithDetail("dir", dir)
}

// RefNotFound reports a branch, tag or revision that does not resolve to a commit.
func RefNotFound(ref string, cause error) *Error {
	return Wrap(cause, ErrCodeRefNotFound, fmt.Sprintf("reference '%s' not found", ref)).
		WithDetail("ref", ref)
}

// GitReadFailed wraps a failure reading repository objects.
func GitReadFailed(op string, cause error) *Error {
	return Wrap(cause, ErrCodeGitReadFailed, fmt.Sprintf("failed to %s", op)).
		WithDetail("operation", op)
}
