package client

import (
	"context"

	"github.com/you/quezi/pkg/pagination"
)

// FetchFunc loads one page of a listing
type FetchFunc[T any] func(ctx context.Context, page, limit int) (Page[T], error)

// Pager walks a paginated listing. Navigation goes through a pagination.State
// whose total is refreshed from every response, so Next and Previous stop at
// the edges the server reports.
type Pager[T any] struct {
	state *pagination.State
	fetch FetchFunc[T]
	items []T
}

// NewPager starts at page 1 with pageSize items per page
func NewPager[T any](fetch FetchFunc[T], pageSize int) *Pager[T] {
	return &Pager[T]{
		state: pagination.New(1, pageSize),
		fetch: fetch,
	}
}

func (p *Pager[T]) State() *pagination.State { return p.state }

// Items is the last loaded page
func (p *Pager[T]) Items() []T { return p.items }

// Load fetches the current page
func (p *Pager[T]) Load(ctx context.Context) ([]T, error) {
	page, err := p.fetch(ctx, p.state.CurrentPage(), p.state.PageSize())
	if err != nil {
		return nil, err
	}
	p.state.SetTotalItems(page.Meta.Total)
	p.items = page.Items
	return p.items, nil
}

// Next loads the following page. It reports false without fetching when the
// current page is the last one.
func (p *Pager[T]) Next(ctx context.Context) ([]T, bool, error) {
	return p.move(ctx, p.state.NextPage)
}

func (p *Pager[T]) Previous(ctx context.Context) ([]T, bool, error) {
	return p.move(ctx, p.state.PreviousPage)
}

// GoTo loads page n if it lies within the known total
func (p *Pager[T]) GoTo(ctx context.Context, n int) ([]T, bool, error) {
	return p.move(ctx, func() bool { return p.state.GoToPage(n) })
}

// move applies step and loads the new page. A failed load returns to the page
// whose items are still held, so state and Items never disagree.
func (p *Pager[T]) move(ctx context.Context, step func() bool) ([]T, bool, error) {
	prev := p.state.CurrentPage()
	if !step() {
		return p.items, false, nil
	}
	items, err := p.Load(ctx)
	if err != nil {
		p.state.GoToPage(prev)
		return p.items, false, err
	}
	return items, true, nil
}

// All restarts from the first page and accumulates every page
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	p.state.Reset()
	items, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	all := append([]T(nil), items...)
	for {
		items, moved, err := p.Next(ctx)
		if err != nil {
			return all, err
		}
		if !moved {
			break
		}
		all = append(all, items...)
	}
	return all, nil
}
