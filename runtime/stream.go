package runtime

import "context"

// Stream lazily drives a paginated listing operation one item at a time,
// mirroring progenitor's generated Stream<Item> built over futures::Stream.
// Each call to Next fetches a fresh page only when the current one is
// exhausted.
type Stream[T any] struct {
	fetch func(pageToken *string) ([]T, *string, error)

	buf       []T
	pos       int
	nextToken *string
	started   bool
	done      bool
	err       error
}

// NewStream constructs a Stream driven by fetch, which given the previous
// page's next-page token (nil for the first call) returns the next page's
// items and its own next-page token (nil when exhausted).
func NewStream[T any](fetch func(pageToken *string) ([]T, *string, error)) *Stream[T] {
	return &Stream[T]{fetch: fetch}
}

// Next advances the stream and returns the next item, or ok=false when the
// stream is exhausted or ctx is done. Check Err after a false result to
// distinguish exhaustion from failure.
func (s *Stream[T]) Next(ctx context.Context) (item T, ok bool) {
	for {
		if s.err != nil || s.done {
			return item, false
		}
		if err := ctx.Err(); err != nil {
			s.err = err
			return item, false
		}
		if s.pos < len(s.buf) {
			item = s.buf[s.pos]
			s.pos++
			return item, true
		}
		if s.started && s.nextToken == nil {
			s.done = true
			return item, false
		}
		page, next, err := s.fetch(s.nextToken)
		s.started = true
		if err != nil {
			s.err = err
			return item, false
		}
		s.buf = page
		s.pos = 0
		s.nextToken = next
		if len(page) == 0 && next == nil {
			s.done = true
			return item, false
		}
	}
}

// Err returns the error that stopped the stream, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// Collect drains the stream into a slice, stopping at exhaustion or the
// first error.
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var all []T
	for {
		item, ok := s.Next(ctx)
		if !ok {
			return all, s.err
		}
		all = append(all, item)
	}
}
