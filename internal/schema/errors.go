package schema

import "fmt"

// Side tells which of the two compared databases an object came from.
type Side int

const (
	Source Side = iota
	Target
)

func (s Side) String() string {
	if s == Target {
		return "TARGET"
	}
	return "SOURCE"
}

// ExtractionFailure records one object that could not be extracted.
type ExtractionFailure struct {
	Side   Side
	Object ObjectDescriptor
	Err    error
}

func (f ExtractionFailure) String() string {
	if f.Err == nil {
		return f.Object.String()
	}
	return fmt.Sprintf("%s: %v", f.Object, f.Err)
}

// ErrorLog accumulates extraction failures for one run. It is append-only and
// owned by the loop that drives extraction.
type ErrorLog struct {
	failures []ExtractionFailure
}

func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

func (l *ErrorLog) Record(side Side, obj ObjectDescriptor, err error) {
	l.failures = append(l.failures, ExtractionFailure{Side: side, Object: obj, Err: err})
}

// Merge appends all failures of other, keeping their order.
func (l *ErrorLog) Merge(other *ErrorLog) {
	if other == nil {
		return
	}
	l.failures = append(l.failures, other.failures...)
}

// BySide returns failures for one side in the order they were recorded.
func (l *ErrorLog) BySide(side Side) []ExtractionFailure {
	var out []ExtractionFailure
	for _, f := range l.failures {
		if f.Side == side {
			out = append(out, f)
		}
	}
	return out
}

func (l *ErrorLog) Len() int {
	return len(l.failures)
}
