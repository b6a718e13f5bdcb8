package metar

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by errors.Is against a ParseError or Errors.
var (
	ErrUnexpected    = errors.New("unexpected input")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidValue  = errors.New("invalid value")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// KindUnexpected is input that no alternative at this position accepts.
	KindUnexpected ErrorKind = iota
	// KindInvalidNumber is non-numeric content in a numeric slot that is not
	// the slot's placeholder.
	KindInvalidNumber
	// KindInvalidValue is a recognised group with an unsupported value, such as
	// an unknown wind unit.
	KindInvalidValue
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidNumber:
		return "invalid number"
	case KindInvalidValue:
		return "invalid value"
	default:
		return "unexpected input"
	}
}

// ParseError describes one failure at a byte span of the input.
type ParseError struct {
	Input  string
	Offset int
	Length int
	Kind   ErrorKind
	// Expected names what would have been accepted at Offset.
	Expected []string
	// Found is the offending text; empty at the end of the input.
	Found string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "metar: offset %d: ", e.Offset)
	switch {
	case e.Kind == KindUnexpected && e.Found == "":
		b.WriteString("unexpected end of report")
	case e.Kind == KindUnexpected:
		fmt.Fprintf(&b, "unexpected %q", e.Found)
	default:
		fmt.Fprintf(&b, "%s %q", e.Kind, e.Found)
	}
	if len(e.Expected) > 0 {
		if e.Kind == KindUnexpected {
			b.WriteString(", expected ")
		} else {
			b.WriteString(" in ")
		}
		b.WriteString(joinAlternatives(e.Expected))
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case KindInvalidNumber:
		return ErrInvalidNumber
	case KindInvalidValue:
		return ErrInvalidValue
	default:
		return ErrUnexpected
	}
}

// Snippet renders the input with the error span underlined:
//
//	EDDM 222020Z 27008KT 9A99 20/13 Q1017
//	                     ^~~~
func (e *ParseError) Snippet() string {
	line := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(e.Input)
	offset := min(max(e.Offset, 0), len(line))
	length := max(e.Length, 1)
	return line + "\n" + strings.Repeat(" ", offset) + "^" + strings.Repeat("~", length-1)
}

func joinAlternatives(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}

// Errors is the non-empty list of errors returned by Parse. All errors share
// the furthest offset the parser reached.
type Errors []*ParseError

func (es Errors) Error() string {
	switch len(es) {
	case 0:
		return "metar: no errors"
	case 1:
		return es[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", es[0].Error(), len(es)-1)
	}
}

func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Offset returns the offset of the errors, or -1 for an empty list.
func (es Errors) Offset() int {
	if len(es) == 0 {
		return -1
	}
	return es[0].Offset
}

// errorSet keeps the errors at the deepest offset seen so far.
type errorSet struct {
	input  string
	offset int
	errs   []*ParseError
}

func newErrorSet(input string) *errorSet {
	return &errorSet{input: input, offset: -1}
}

func (s *errorSet) add(kind ErrorKind, offset, length int, label string) {
	switch {
	case offset < s.offset:
		return
	case offset > s.offset:
		s.offset = offset
		s.errs = s.errs[:0]
	}
	for _, e := range s.errs {
		if e.Kind == kind && e.Length == length {
			for _, x := range e.Expected {
				if x == label {
					return
				}
			}
			e.Expected = append(e.Expected, label)
			return
		}
	}
	end := min(offset+length, len(s.input))
	s.errs = append(s.errs, &ParseError{
		Input:    s.input,
		Offset:   offset,
		Length:   length,
		Kind:     kind,
		Expected: []string{label},
		Found:    s.input[offset:end],
	})
}

func (s *errorSet) result() Errors {
	out := make(Errors, len(s.errs))
	copy(out, s.errs)
	return out
}
