package menu

import "errors"

// ErrNoPages is returned when a menu is built without any pages
var ErrNoPages = errors.New("menu needs at least one page")

// Cursor is a page index over a fixed number of pages.
// Every move wraps, so 0 <= Index() < Len() always holds.
type Cursor struct {
	index int
	count int
}

// NewCursor creates a cursor over count pages starting at index (wrapped into range)
func NewCursor(count, index int) (*Cursor, error) {
	if count < 1 {
		return nil, ErrNoPages
	}
	return &Cursor{index: wrap(index, count), count: count}, nil
}

// Index returns the current page index
func (c *Cursor) Index() int {
	return c.index
}

// Len returns the number of pages
func (c *Cursor) Len() int {
	return c.count
}

// Next moves forward one page, from the last page back to the first
func (c *Cursor) Next() int {
	c.index = wrap(c.index+1, c.count)
	return c.index
}

// Previous moves back one page, from the first page to the last
func (c *Cursor) Previous() int {
	c.index = wrap(c.index-1, c.count)
	return c.index
}

// JumpTo moves to page v mod Len()
func (c *Cursor) JumpTo(v int) int {
	c.index = wrap(v, c.count)
	return c.index
}

// wrap is Euclidean modulo: the result has the sign of n
func wrap(v, n int) int {
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}
