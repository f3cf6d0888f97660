package target

import "fmt"

// UnresolvableRefError reports a ref or commit that did not resolve to a
// snapshot. It aborts the whole resolution.
type UnresolvableRefError struct {
	Ref string
	Err error
}

func (e *UnresolvableRefError) Error() string {
	return fmt.Sprintf("unresolvable reference %q: %v", e.Ref, e.Err)
}

func (e *UnresolvableRefError) Unwrap() error {
	return e.Err
}
