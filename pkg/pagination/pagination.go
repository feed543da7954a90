// Package pagination tracks the current page of a larger collection and derives
// navigation facts and slice boundaries from it.
//
// A State is owned by a single view and is not safe for concurrent use. None of
// its operations fail: out-of-range navigation and invalid sizes are ignored.
package pagination

import (
	"errors"
	"math"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// State is the pagination state of one view
type State struct {
	initialPage     int
	initialPageSize int

	currentPage int
	pageSize    int
	totalItems  int
}

// Meta is the serialisable view of a State
type Meta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// New creates a state at initialPage with initialPageSize items per page.
// Non-positive arguments fall back to DefaultPage and DefaultPageSize.
func New(initialPage, initialPageSize int) *State {
	if initialPage < 1 {
		initialPage = DefaultPage
	}
	if initialPageSize < 1 {
		initialPageSize = DefaultPageSize
	}
	// keeps page*size, and so every index, within int
	if maxPage := math.MaxInt / initialPageSize; initialPage > maxPage {
		initialPage = maxPage
	}
	return &State{
		initialPage:     initialPage,
		initialPageSize: initialPageSize,
		currentPage:     initialPage,
		pageSize:        initialPageSize,
	}
}

// Default creates a state with DefaultPage and DefaultPageSize
func Default() *State {
	return New(DefaultPage, DefaultPageSize)
}

// FromQuery builds a state from raw page/limit query values. Missing or
// malformed values use the defaults, the limit is capped at MaxPageSize and
// numbers too large for an int saturate.
func FromQuery(page, limit string) *State {
	p := atoiOr(page, DefaultPage)
	l := atoiOr(limit, DefaultPageSize)
	if l > MaxPageSize {
		l = MaxPageSize
	}
	return New(p, l)
}

// atoiOr parses v, keeping the clamped value strconv reports for out of range
// input and falling back to def for anything else unparseable
func atoiOr(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return def
	}
	return n
}

// SetTotalItems records the size of the whole collection
func (s *State) SetTotalItems(n int) {
	if n < 0 {
		n = 0
	}
	s.totalItems = n
}

// GoToPage moves to page p when 1 <= p <= TotalPages and reports whether it moved
func (s *State) GoToPage(p int) bool {
	if p < 1 || p > s.TotalPages() {
		return false
	}
	s.currentPage = p
	return true
}

// NextPage moves forward one page if there is one
func (s *State) NextPage() bool {
	if !s.HasNextPage() {
		return false
	}
	return s.GoToPage(s.currentPage + 1)
}

// PreviousPage moves back one page if there is one
func (s *State) PreviousPage() bool {
	if !s.HasPreviousPage() {
		return false
	}
	return s.GoToPage(s.currentPage - 1)
}

// SetPageSize changes the page size and returns to the first page
func (s *State) SetPageSize(size int) {
	if size < 1 {
		return
	}
	s.pageSize = size
	s.currentPage = 1
}

// Reset restores the construction-time page and size and forgets the total
func (s *State) Reset() {
	s.currentPage = s.initialPage
	s.pageSize = s.initialPageSize
	s.totalItems = 0
}

func (s *State) CurrentPage() int { return s.currentPage }
func (s *State) PageSize() int    { return s.pageSize }
func (s *State) TotalItems() int  { return s.totalItems }

// TotalPages is ceil(TotalItems / PageSize), zero for an empty collection
func (s *State) TotalPages() int {
	if s.totalItems == 0 {
		return 0
	}
	return (s.totalItems + s.pageSize - 1) / s.pageSize
}

func (s *State) HasNextPage() bool     { return s.currentPage < s.TotalPages() }
func (s *State) HasPreviousPage() bool { return s.currentPage > 1 }

// StartIndex is the inclusive start of the current window
func (s *State) StartIndex() int {
	return (s.currentPage - 1) * s.pageSize
}

// EndIndex is the exclusive end of the current window. It never drops below
// StartIndex, so a page left stale by a shrinking total is an empty window.
func (s *State) EndIndex() int {
	start := s.StartIndex()
	end := start + s.pageSize
	if end > s.totalItems {
		end = s.totalItems
	}
	if end < start {
		end = start
	}
	return end
}

// Offset and Limit express the current window as a storage query
func (s *State) Offset() int { return s.StartIndex() }
func (s *State) Limit() int  { return s.pageSize }

// Meta snapshots the state for a response body
func (s *State) Meta() Meta {
	return Meta{
		Page:            s.currentPage,
		Limit:           s.pageSize,
		Total:           s.totalItems,
		TotalPages:      s.TotalPages(),
		HasNextPage:     s.HasNextPage(),
		HasPreviousPage: s.HasPreviousPage(),
	}
}

// Window returns the items of the current page from a fully loaded collection.
// The total is taken from len(items).
func Window[T any](s *State, items []T) []T {
	s.SetTotalItems(len(items))
	start := s.StartIndex()
	if start >= len(items) {
		return items[:0]
	}
	return items[start:s.EndIndex()]
}
