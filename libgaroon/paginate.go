package libgaroon

import (
	"context"
	"fmt"
)

// Page is one batch of list results
type Page[T any] struct {
	Items   []T
	HasNext bool
}

// PageFunc fetches the page starting at offset holding at most limit items
type PageFunc[T any] func(ctx context.Context, offset, limit int) (Page[T], error)

// Paginator walks an offset/limit list endpoint one page at a time.
// Pages are requested strictly in order; the offset only advances once a
// page has been received.
type Paginator[T any] struct {
	fetch    PageFunc[T]
	pageSize int
	offset   int
	done     bool
}

// NewPaginator creates a paginator over fetch
func NewPaginator[T any](fetch PageFunc[T], pageSize int) (*Paginator[T], error) {
	if fetch == nil {
		return nil, fmt.Errorf("page function is required")
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	return &Paginator[T]{fetch: fetch, pageSize: pageSize}, nil
}

// Done reports whether the server has signalled the last page
func (p *Paginator[T]) Done() bool {
	return p.done
}

// Offset returns the offset of the next page
func (p *Paginator[T]) Offset() int {
	return p.offset
}

// Next fetches the next page. Calling Next after Done returns an empty page.
func (p *Paginator[T]) Next(ctx context.Context) (Page[T], error) {
	if p.done {
		return Page[T]{}, nil
	}

	page, err := p.fetch(ctx, p.offset, p.pageSize)
	if err != nil {
		return Page[T]{}, err
	}

	if len(page.Items) == 0 && page.HasNext {
		return Page[T]{}, &PaginationProtocolError{Offset: p.offset}
	}

	// Advance by what was actually returned so short pages are tolerated.
	p.offset += len(page.Items)
	p.done = !page.HasNext

	return page, nil
}

// FetchAll collects every page in server order. On error nothing is returned.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], pageSize int) ([]T, error) {
	p, err := NewPaginator(fetch, pageSize)
	if err != nil {
		return nil, err
	}

	var all []T
	for !p.Done() {
		page, err := p.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("page at offset %d: %w", p.Offset(), err)
		}
		all = append(all, page.Items...)
	}

	if all == nil {
		all = []T{}
	}
	return all, nil
}
