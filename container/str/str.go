// Package str implements String: a dynamic array of character units,
// always terminated by a zero unit at
// buffer[length] that does not count toward the length, with
// comparison, concatenation, repetition, formatting and slicing on
// top. Ported from korin's core/public/containers/string.h.
//
// The backing buffer is drawn from an alloc.Allocator with the same
// power-of-two growth as container/array, so a String's buffer can
// come out of a pooled allocator sized for string payloads.
package str

import (
	"unsafe"

	"github.com/cznic/mathutil"
	"github.com/sneppy/korin-new/alloc"
	"github.com/sneppy/korin-new/hashkey"
)

// MinCapacity is the smallest non-zero buffer capacity a String ever
// holds.
const MinCapacity = 4

// String is a NUL-terminated character array. Its zero value is the
// empty string, drawing from alloc.Global() on first growth.
type String struct {
	Alloc    alloc.Allocator
	buf      []byte
	length   int
	capacity int
}

func nextPow2(n int) int {
	if n <= 1 {
		return n
	}
	return 1 << uint(mathutil.BitLen(n-1))
}

// growthCapacity returns the buffer capacity for a string of n
// characters: the smallest power of two that fits n plus the
// terminator, at least MinCapacity.
func growthCapacity(n int) int {
	c := nextPow2(n + 1)
	if c < MinCapacity {
		c = MinCapacity
	}
	return c
}

func (s *String) allocator() alloc.Allocator {
	if s.Alloc == nil {
		s.Alloc = alloc.Global()
	}
	return s.Alloc
}

// New constructs a String holding a copy of v.
func New(v string) *String {
	s := &String{}
	s.AppendString(v)
	return s
}

// NewWithCapacity constructs an empty String that can hold at least n
// characters without reallocating.
func NewWithCapacity(n int) *String {
	s := &String{}
	if n > 0 {
		s.reserve(growthCapacity(n))
	}
	return s
}

// Len returns the number of characters, excluding the terminator.
func (s *String) Len() int { return s.length }

// Cap returns the current buffer capacity, including the terminator
// slot.
func (s *String) Cap() int { return s.capacity }

// String returns the Go string value. Implements fmt.Stringer, so a
// *String handed to the formatter renders as its characters.
func (s *String) String() string {
	if s.length == 0 {
		return ""
	}
	return string(s.buf[:s.length])
}

// Bytes returns the live character buffer of length Len(), excluding
// the terminator. It aliases the String's storage.
func (s *String) Bytes() []byte {
	if s.capacity == 0 {
		return nil
	}
	return s.buf[:s.length]
}

// At returns the character at index.
func (s *String) At(index int) byte {
	assertInBounds(index, s.length)
	return s.buf[index]
}

// Set overwrites the character at index. The character must not be
// zero; the terminator is managed by the String itself.
func (s *String) Set(index int, c byte) {
	assertInBounds(index, s.length)
	s.buf[index] = c
}

// ToHashKey returns the Murmur64A hash of the character bytes, the
// String specialization of the default hash policy.
func (s *String) ToHashKey() hashkey.Key {
	return hashkey.OfBytes(s.Bytes())
}

func (s *String) reserve(newCap int) {
	if newCap <= s.capacity {
		return
	}
	newBuf, err := s.allocator().Malloc(newCap, alloc.MinAlignment)
	if err != nil || newBuf == nil {
		panic(alloc.ErrOutOfMemory)
	}
	if s.capacity > 0 {
		copy(newBuf, s.buf[:s.length])
		_ = s.allocator().Free(s.buf)
	}
	s.buf = newBuf
	s.capacity = newCap
}

// terminate writes the zero unit at buf[length].
func (s *String) terminate() {
	if s.capacity > 0 {
		s.buf[s.length] = 0
	}
}

// AppendChar appends one character.
func (s *String) AppendChar(c byte) {
	s.reserve(growthCapacity(s.length + 1))
	s.buf[s.length] = c
	s.length++
	s.terminate()
}

// AppendString appends the characters of v.
func (s *String) AppendString(v string) {
	if len(v) == 0 {
		return
	}
	s.reserve(growthCapacity(s.length + len(v)))
	copy(s.buf[s.length:], v)
	s.length += len(v)
	s.terminate()
}

// Append appends the characters of other.
func (s *String) Append(other *String) {
	if other.length == 0 {
		return
	}
	s.reserve(growthCapacity(s.length + other.length))
	copy(s.buf[s.length:], other.buf[:other.length])
	s.length += other.length
	s.terminate()
}

// Concat returns a new String holding a followed by b. The result's
// buffer is sized for both up front, so the append never regrows.
func Concat(a, b *String) *String {
	out := NewWithCapacity(a.length + b.length)
	out.Append(a)
	out.Append(b)
	return out
}

// Plus returns a new String holding s followed by v.
func (s *String) Plus(v string) *String {
	out := NewWithCapacity(s.length + len(v))
	out.Append(s)
	out.AppendString(v)
	return out
}

// Repeat returns a new String holding n back-to-back copies of s,
// filled in power-of-two strides: the copied run doubles each
// iteration, with the last stride clamped to the remainder.
func (s *String) Repeat(n int) *String {
	if n <= 0 || s.length == 0 {
		return &String{Alloc: s.Alloc}
	}
	total := s.length * n
	out := NewWithCapacity(total)
	copy(out.buf, s.buf[:s.length])
	filled := s.length
	for filled < total {
		chunk := filled
		if total-filled < chunk {
			chunk = total - filled
		}
		copy(out.buf[filled:filled+chunk], out.buf[:chunk])
		filled += chunk
	}
	out.length = total
	out.terminate()
	return out
}

// RepeatInPlace replaces s with n back-to-back copies of itself.
func (s *String) RepeatInPlace(n int) {
	r := s.Repeat(n)
	if s.capacity > 0 {
		_ = s.allocator().Free(s.buf)
	}
	s.buf, s.length, s.capacity = r.buf, r.length, r.capacity
}

// Compare returns a negative value, zero, or a positive value when s
// sorts before, equal to, or after other. Length-bounded character
// compare with early exit on the first differing unit.
func (s *String) Compare(other *String) int {
	return compareBytes(s.Bytes(), other.Bytes())
}

// CompareString compares s against a Go string.
func (s *String) CompareString(v string) int {
	return compareBytes(s.Bytes(), unsafe.Slice(unsafe.StringData(v), len(v)))
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether s and other hold the same characters.
func (s *String) Equal(other *String) bool {
	return s.length == other.length && s.Compare(other) == 0
}

// Less reports whether s sorts strictly before other.
func (s *String) Less(other *String) bool { return s.Compare(other) < 0 }

// LessEq reports whether s sorts before or equal to other.
func (s *String) LessEq(other *String) bool { return s.Compare(other) <= 0 }

// Greater reports whether s sorts strictly after other.
func (s *String) Greater(other *String) bool { return s.Compare(other) > 0 }

// GreaterEq reports whether s sorts after or equal to other.
func (s *String) GreaterEq(other *String) bool { return s.Compare(other) >= 0 }

// Substr returns a new String holding the half-open range [begin,
// end), clamped to the string's bounds.
func (s *String) Substr(begin, end int) *String {
	if begin < 0 {
		begin = 0
	}
	if end > s.length {
		end = s.length
	}
	if end <= begin {
		return &String{Alloc: s.Alloc}
	}
	out := NewWithCapacity(end - begin)
	out.AppendString(string(s.buf[begin:end]))
	return out
}

// SubstrFrom returns the suffix of s starting at begin.
func (s *String) SubstrFrom(begin int) *String {
	return s.Substr(begin, s.length)
}

// Close releases the String's backing buffer. The String is empty and
// ready to reuse after Close returns.
func (s *String) Close() error {
	if s.capacity == 0 {
		return nil
	}
	err := s.allocator().Free(s.buf)
	s.buf, s.capacity, s.length = nil, 0, 0
	return err
}
