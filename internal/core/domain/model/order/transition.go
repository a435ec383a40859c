package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Transition names a lifecycle operation on an order.
type Transition string

const (
	StartProcessing Transition = "start_processing"
	Ship            Transition = "ship"
	Cancel          Transition = "cancel"
)

// ErrTransitionNotAllowed is the sentinel wrapped by TransitionError.
var ErrTransitionNotAllowed = errs.NewValueIsInvalidError("transition is not allowed")

// TransitionError reports a transition attempted from a status outside its
// allowed-predecessor set.
type TransitionError struct {
	Transition Transition
	From       Status
	// Allowed is the predecessor set of Transition under the checking policy.
	Allowed []Status
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s from %s", ErrTransitionNotAllowed, e.Transition, e.From)
	if len(e.Allowed) == 0 {
		return msg
	}
	names := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		names = append(names, s.String())
	}
	return msg + " (allowed from " + strings.Join(names, ", ") + ")"
}

func (e *TransitionError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// TransitionPolicy maps every transition to the statuses it may start from.
// A transition missing from the map is never allowed.
type TransitionPolicy struct {
	name    string
	allowed map[Transition]map[Status]struct{}
}

// PermissivePolicy accepts every transition from every valid status. It
// reproduces the behaviour of the admin console the service replaces, where
// e.g. a cancelled order can still be marked shipped.
func PermissivePolicy() TransitionPolicy {
	all := AllStatuses()
	return newPolicy("permissive", map[Transition][]Status{
		StartProcessing: all,
		Ship:            all,
		Cancel:          all,
	})
}

// StrictPolicy keeps Shipped, Cancelled and Refunded orders terminal while
// leaving each transition idempotent on its own target status.
func StrictPolicy() TransitionPolicy {
	return newPolicy("strict", map[Transition][]Status{
		StartProcessing: {Pending, Approved, InProcess},
		Ship:            {Approved, InProcess, Shipped},
		Cancel:          {Pending, Approved, InProcess, Cancelled},
	})
}

func newPolicy(name string, table map[Transition][]Status) TransitionPolicy {
	allowed := make(map[Transition]map[Status]struct{}, len(table))
	for t, from := range table {
		set := make(map[Status]struct{}, len(from))
		for _, s := range from {
			set[s] = struct{}{}
		}
		allowed[t] = set
	}
	return TransitionPolicy{name: name, allowed: allowed}
}

func (p TransitionPolicy) Name() string {
	return p.name
}

// Check returns a *TransitionError unless t may start from from. The zero
// TransitionPolicy allows nothing.
func (p TransitionPolicy) Check(t Transition, from Status) error {
	if _, ok := p.allowed[t][from]; !ok {
		return &TransitionError{Transition: t, From: from, Allowed: p.AllowedFrom(t)}
	}
	return nil
}

// AllowedFrom lists the predecessors of t in Status declaration order.
func (p TransitionPolicy) AllowedFrom(t Transition) []Status {
	res := make([]Status, 0, len(p.allowed[t]))
	for _, s := range AllStatuses() {
		if _, ok := p.allowed[t][s]; ok {
			res = append(res, s)
		}
	}
	return res
}
