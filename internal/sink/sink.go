// Package sink defines the minimal output consumer used by the
// non-destructive query operations (spec §4.5, §6: "The sink used by
// query operations is a minimal consume(x) interface").
package sink

// Sink receives entries one at a time, in key order.
type Sink[T any] interface {
	Consume(x T)
}

// Slice is a Sink backed by a plain slice, the same way the source
// project lets a Vec stand in for Sink<T> directly. Pass a *Slice[T]
// wrapping a pre-reserved slice to avoid reallocation mid-traversal
// (spec §6).
type Slice[T any] struct {
	Items []T
}

func (s *Slice[T]) Consume(x T) {
	s.Items = append(s.Items, x)
}

// NewSlice returns a Slice pre-allocated to the given capacity.
func NewSlice[T any](capacity int) *Slice[T] {
	return &Slice[T]{Items: make([]T, 0, capacity)}
}

// Func adapts a plain function to Sink.
type Func[T any] func(T)

func (f Func[T]) Consume(x T) { f(x) }
