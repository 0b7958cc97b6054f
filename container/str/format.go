package str

import (
	"fmt"

	"github.com/sneppy/korin-new/container/opt"
)

// prepareArgs readies formatter arguments: a *String argument is
// lowered to its raw character string, the way korin's format passes
// String arguments as their C pointer.
func prepareArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if s, ok := a.(*String); ok {
			out[i] = s.String()
		} else {
			out[i] = a
		}
	}
	return out
}

// Format renders a printf-style format into a new String: the
// rendered size is measured first, the buffer grown to fit, then the
// characters copied in.
func Format(format string, args ...any) *String {
	rendered := fmt.Sprintf(format, prepareArgs(args)...)
	out := NewWithCapacity(len(rendered))
	out.AppendString(rendered)
	return out
}

// AppendFormat renders a printf-style format onto the end of s.
func (s *String) AppendFormat(format string, args ...any) {
	s.AppendString(fmt.Sprintf(format, prepareArgs(args)...))
}

// ModTuple2 is the two-argument operator%: it treats format's
// characters as a printf format and unpacks the tuple positionally.
func ModTuple2[T0, T1 any](format *String, t opt.Tuple2[T0, T1]) *String {
	return Format(format.String(), t.V0, t.V1)
}

// ModTuple3 is the three-argument operator%.
func ModTuple3[T0, T1, T2 any](format *String, t opt.Tuple3[T0, T1, T2]) *String {
	return Format(format.String(), t.V0, t.V1, t.V2)
}

// ModTuple4 is the four-argument operator%.
func ModTuple4[T0, T1, T2, T3 any](format *String, t opt.Tuple4[T0, T1, T2, T3]) *String {
	return Format(format.String(), t.V0, t.V1, t.V2, t.V3)
}
