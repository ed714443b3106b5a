package engine

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"config-forge/diagnostic"
	"config-forge/internal/logging"
)

// Handler resolves one family of dispatch targets. Claims decides
// ownership; Check and Build perform the two phases; Hashable reports
// whether resolved values may key a set or dict.
type Handler interface {
	Claims(target any, d *Dispatcher) bool
	Check(target any, d *Dispatcher, v any) *diagnostic.CheckError
	Build(target any, d *Dispatcher, v any) (any, error)
	Hashable(target any, d *Dispatcher) bool
}

// Rewriter substitutes a value before it is dispatched. Claims is
// evaluated against the original value; Rewrite returns the
// replacement.
type Rewriter interface {
	Claims(target any, d *Dispatcher, v any) bool
	Rewrite(target any, d *Dispatcher, v any) (any, *diagnostic.CheckError)
}

// Dispatcher routes targets to the first handler that claims them.
// Handler order is priority. The handler and rewriter lists are fixed
// at construction.
type Dispatcher struct {
	handlers  []Handler
	rewriters []Rewriter
}

func New(handlers []Handler, rewriters ...Rewriter) *Dispatcher {
	return &Dispatcher{handlers: handlers, rewriters: rewriters}
}

// Claims reports whether any handler can resolve target.
func (d *Dispatcher) Claims(target any) bool {
	_, ok := d.claimant(target)
	return ok
}

func (d *Dispatcher) claimant(target any) (Handler, bool) {
	for _, h := range d.handlers {
		if h.Claims(target, d) {
			return h, true
		}
	}
	return nil, false
}

// HandlerFor returns the first handler claiming target, or an
// unclaimed-target failure naming every configured family.
func (d *Dispatcher) HandlerFor(target, v any) (Handler, *diagnostic.CheckError) {
	if h, ok := d.claimant(target); ok {
		return h, nil
	}
	families := make([]string, len(d.handlers))
	for i, h := range d.handlers {
		families[i] = fmt.Sprintf("%T", h)
	}
	return nil, diagnostic.Unclaimed(targetString(target), families, v)
}

// Check validates v against target. A nil return means Build would
// succeed on the same input. The full input is scanned so aggregated
// failures report every problem, not just the first.
func (d *Dispatcher) Check(target, v any) *diagnostic.CheckError {
	v, rErr := d.rewrite(target, v)
	if rErr != nil {
		return rErr
	}
	h, uErr := d.HandlerFor(target, v)
	if uErr != nil {
		return uErr
	}
	return h.Check(target, d, v)
}

// Build constructs the value target describes from v, aborting on the
// first failure.
func (d *Dispatcher) Build(target, v any) (any, error) {
	v, rErr := d.rewrite(target, v)
	if rErr != nil {
		return nil, rErr
	}
	h, uErr := d.HandlerFor(target, v)
	if uErr != nil {
		return nil, uErr
	}
	return h.Build(target, d, v)
}

// Hashable reports whether values of target may key a set or dict.
// Unclaimed targets are not hashable.
func (d *Dispatcher) Hashable(target any) bool {
	h, ok := d.claimant(target)
	return ok && h.Hashable(target, d)
}

// rewrite applies every claiming rewriter in order. Claimants are
// selected against the original value, then each receives the previous
// result.
func (d *Dispatcher) rewrite(target, v any) (any, *diagnostic.CheckError) {
	if len(d.rewriters) == 0 {
		return v, nil
	}
	var claimed []Rewriter
	for _, rw := range d.rewriters {
		if rw.Claims(target, d, v) {
			claimed = append(claimed, rw)
		}
	}
	for _, rw := range claimed {
		next, err := rw.Rewrite(target, d, v)
		if err != nil {
			return nil, err
		}
		logging.L().Debug("value rewritten",
			zap.String("rewriter", fmt.Sprintf("%T", rw)),
			zap.String("target", targetString(target)))
		v = next
	}
	return v, nil
}

func targetString(target any) string {
	if s, ok := target.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", target)
}

// valueAssignable reports whether v is already usable as an rt value.
// Nil never qualifies; absent values go through the normal flow.
func valueAssignable(v any, rt reflect.Type) bool {
	if v == nil || rt == nil {
		return false
	}
	return reflect.TypeOf(v).AssignableTo(rt)
}

func typeName(rt reflect.Type) string {
	if rt == nil {
		return "<nil>"
	}
	if name := rt.Name(); name != "" {
		return name
	}
	return rt.String()
}
