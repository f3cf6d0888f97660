// Package target maps a requested comparison onto a concrete pair of snapshots.
package target

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a Target compares against.
type Kind int

const (
	KindDefaultBranch Kind = iota // HEAD vs the repository's default branch
	KindRef                       // HEAD vs a named ref
	KindChangeRequest             // a change request's base vs head
)

// Target is a user requested comparison.
type Target struct {
	Kind   Kind
	Ref    string // set for KindRef
	Number int    // set for KindChangeRequest
}

// DefaultBranch compares HEAD against the default branch.
func DefaultBranch() Target { return Target{Kind: KindDefaultBranch} }

// Ref compares HEAD against name.
func Ref(name string) Target { return Target{Kind: KindRef, Ref: name} }

// ChangeRequest compares a change request's base against its head.
func ChangeRequest(number int) Target { return Target{Kind: KindChangeRequest, Number: number} }

// Parse interprets the target argument. An empty string selects the default
// branch; "#N" or a bare decimal number selects change request N; anything else
// is a ref name. A branch whose name is all digits cannot be targeted by name.
func Parse(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultBranch(), nil
	}

	digits, hashed := strings.CutPrefix(s, "#")
	if isDecimal(digits) {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Target{}, fmt.Errorf("change request number %q: %w", digits, err)
		}
		return ChangeRequest(n), nil
	}
	if hashed {
		return Target{}, fmt.Errorf("invalid change request %q: expected #<number>", s)
	}

	return Ref(s), nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (t Target) String() string {
	switch t.Kind {
	case KindRef:
		return t.Ref
	case KindChangeRequest:
		return "#" + strconv.Itoa(t.Number)
	default:
		return "default branch"
	}
}

// Selector narrows a change request to all of its changes or a single commit.
type Selector int

// AllChanges selects the full change request.
const AllChanges Selector = -1

// CommitIndex selects the i-th commit of a change request.
func CommitIndex(i int) Selector {
	return Selector(i)
}

// Index returns the selected commit index, or false for AllChanges.
func (s Selector) Index() (int, bool) {
	if s < 0 {
		return 0, false
	}
	return int(s), true
}

func (s Selector) String() string {
	if i, ok := s.Index(); ok {
		return "commit " + strconv.Itoa(i)
	}
	return "all changes"
}
