package diagnostic

import (
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// CheckError carries the state that produced a validation or construction
// failure. It implements error; Render exposes the indented tree form.
type CheckError struct {
	// Code classifies the failure shape.
	Code Code
	// Target is the rendered type the request was made against.
	Target string
	// Msg holds the explanation, one element per line.
	Msg []string
	// Child is a failure produced by a downstream check, if any.
	Child *CheckError
	// Obj is the caller-provided value involved in the failure.
	Obj any
	// Entries preserves the per-key failures behind an aggregate message.
	Entries []Entry
	// Cause is the wrapped failure behind a rewrite error.
	Cause error
}

// Entry pairs an aggregate key with the failure recorded under it.
type Entry struct {
	Key string
	Err *CheckError
}

func (e *CheckError) Error() string {
	return e.Render("")
}

// Render produces the explanation with every nesting level indented one
// tab further than its parent. seed is the indentation of this level.
func (e *CheckError) Render(seed string) string {
	prefix := ""
	if seed != "" {
		prefix = "\n" + seed
	}
	out := prefix + strings.Join(e.Msg, "\n"+seed)
	if e.Child == nil {
		return out
	}
	return out + e.Child.Render(seed+"\t")
}

// Unwrap exposes the cause of a rewrite failure to errors.Is and As.
func (e *CheckError) Unwrap() error {
	return e.Cause
}

// Equal compares failures by code, target, message, child, and offending
// value. Rewrite failures compare their cause by type alone, since the
// cause's text is not stable across platforms.
func (e *CheckError) Equal(o *CheckError) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Code != o.Code || e.Target != o.Target {
		return false
	}
	msgA, msgB := e.Msg, o.Msg
	if e.Code == CodeRewriteFailed {
		if len(msgA) > 0 {
			msgA = msgA[:len(msgA)-1]
		}
		if len(msgB) > 0 {
			msgB = msgB[:len(msgB)-1]
		}
		if reflect.TypeOf(e.Cause) != reflect.TypeOf(o.Cause) {
			return false
		}
	}
	if !slices.Equal(msgA, msgB) {
		return false
	}
	if !e.Child.Equal(o.Child) {
		return false
	}
	return reflect.DeepEqual(e.Obj, o.Obj)
}

// Aggregate accumulates per-key failures in encounter order. The zero
// value is ready to use.
type Aggregate struct {
	entries []Entry
}

// Add records a failure under key. Nil errors are ignored so callers can
// add unconditionally.
func (a *Aggregate) Add(key string, err *CheckError) {
	if err == nil {
		return
	}
	a.entries = append(a.entries, Entry{Key: key, Err: err})
}

// AddIndex records a failure under a positional key.
func (a *Aggregate) AddIndex(i int, err *CheckError) {
	a.Add(strconv.Itoa(i), err)
}

func (a *Aggregate) Empty() bool {
	return len(a.entries) == 0
}

func (a *Aggregate) Len() int {
	return len(a.entries)
}

// Err folds the accumulated entries into a single KeyValue failure, or
// returns nil when nothing was recorded.
func (a *Aggregate) Err(target string, obj any) *CheckError {
	if a.Empty() {
		return nil
	}
	return KeyValue(target, a.entries, obj)
}

// valueDumper renders offending values with sorted map keys so messages
// stay deterministic.
var valueDumper = spew.ConfigState{Indent: "\t", SortKeys: true}

func formatValue(obj any) string {
	if obj == nil {
		return "<nil>"
	}
	return valueDumper.Sprintf("%v", obj)
}

func typeName(obj any) string {
	if obj == nil {
		return "nil"
	}
	return reflect.TypeOf(obj).String()
}
