package rowmapper

import (
	"context"
	"iter"
	"unsafe"
)

// Result represents asynchronously mapped record
type Result[T any] struct {
	Item *T
	Err  error
}

// Map maps all records of all result sets of src, source errors abort mapping
func Map[T any](src Source, opts ...Option) ([]*T, error) {
	var result = make([]*T, 0)
	for item, err := range Iterate[T](src, opts...) {
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// MapFirst maps the first record of src, it returns nil when src is empty
func MapFirst[T any](src Source, opts ...Option) (*T, error) {
	for item, err := range Iterate[T](src, opts...) {
		return item, err
	}
	return nil, nil
}

// Iterate returns lazy, single pass sequence of mapped records, source error is yielded last
func Iterate[T any](src Source, opts ...Option) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		plan, err := PlanOf[T]()
		if err != nil {
			yield(nil, err)
			return
		}
		options := newOptions(opts)
		row := 0
		for resultSet := 0; ; resultSet++ {
			bound := resolve(plan, src)
			for src.Next() {
				item := new(T)
				bound.apply(unsafe.Pointer(item), src, row, resultSet, options)
				row++
				if !yield(item, nil) {
					return
				}
			}
			if err = src.Err(); err != nil {
				yield(nil, err)
				return
			}
			sets, ok := src.(ResultSets)
			if !ok || !sets.NextResultSet() {
				break
			}
		}
		if err = src.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// MapAsync maps src on a separate goroutine, the channel is closed after the last record or error.
// Cancelling ctx stops delivery once the consumer stops receiving.
func MapAsync[T any](ctx context.Context, src Source, opts ...Option) <-chan Result[T] {
	results := make(chan Result[T])
	go func() {
		defer close(results)
		for item, err := range Iterate[T](src, opts...) {
			select {
			case results <- Result[T]{Item: item, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return results
}

// Mapper maps sources into T with preconfigured options
type Mapper[T any] struct {
	plan    *Plan
	options []Option
}

// Plan returns T binding plan
func (m *Mapper[T]) Plan() *Plan {
	return m.plan
}

// Map maps all records of src
func (m *Mapper[T]) Map(src Source) ([]*T, error) {
	return Map[T](src, m.options...)
}

// MapFirst maps the first record of src
func (m *Mapper[T]) MapFirst(src Source) (*T, error) {
	return MapFirst[T](src, m.options...)
}

// Iterate returns lazy sequence of mapped records
func (m *Mapper[T]) Iterate(src Source) iter.Seq2[*T, error] {
	return Iterate[T](src, m.options...)
}

// MapAsync maps src on a separate goroutine
func (m *Mapper[T]) MapAsync(ctx context.Context, src Source) <-chan Result[T] {
	return MapAsync[T](ctx, src, m.options...)
}

// NewMapper creates a mapper, T plan is built eagerly
func NewMapper[T any](opts ...Option) (*Mapper[T], error) {
	plan, err := PlanOf[T]()
	if err != nil {
		return nil, err
	}
	return &Mapper[T]{plan: plan, options: opts}, nil
}
