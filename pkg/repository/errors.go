// Package repository materializes hook repositories in the checkout cache
// and resolves configured hooks against their manifests.
package repository

import "fmt"

// NotImplementedError marks a configured feature this tool does not
// support.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

// UnsupportedSchemeError marks a repository reference that is not an
// http(s) URL.
type UnsupportedSchemeError struct {
	Repo string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported repository url scheme: %s", e.Repo)
}

// CheckoutError wraps a failed git clone with the stderr git produced.
type CheckoutError struct {
	URL    string
	Rev    string
	Stderr string
	Err    error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("failed to check out %s at %s: %s", e.URL, e.Rev, e.Stderr)
}

func (e *CheckoutError) Unwrap() error { return e.Err }
