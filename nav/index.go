package nav

// Index tracks the highlighted entry of the merged list. The selection is
// -1 when the list is empty and otherwise within [0, len-1].
type Index struct {
	items    []Item
	selected int
	query    string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{selected: -1}
}

// Set installs a freshly merged list. A changed query resets the selection
// to the top; otherwise the selection is clamped to the new length.
func (x *Index) Set(items []Item, query string) {
	queryChanged := query != x.query
	x.items = items
	x.query = query

	switch {
	case len(items) == 0:
		x.selected = -1
	case queryChanged || x.selected < 0:
		x.selected = 0
	case x.selected >= len(items):
		x.selected = len(items) - 1
	}
}

// Next moves down, wrapping from the last entry to the first.
func (x *Index) Next() {
	if len(x.items) == 0 {
		return
	}
	x.selected = (x.selected + 1) % len(x.items)
}

// Prev moves up, wrapping from the first entry to the last.
func (x *Index) Prev() {
	if len(x.items) == 0 {
		return
	}
	x.selected = (x.selected - 1 + len(x.items)) % len(x.items)
}

// Select highlights i if it is in range.
func (x *Index) Select(i int) bool {
	if i < 0 || i >= len(x.items) {
		return false
	}
	x.selected = i
	return true
}

// Selected returns the highlighted item.
func (x *Index) Selected() (Item, bool) {
	if x.selected < 0 || x.selected >= len(x.items) {
		return Item{}, false
	}
	return x.items[x.selected], true
}

// Cursor is the highlighted position, or -1.
func (x *Index) Cursor() int { return x.selected }

// Items returns the current list.
func (x *Index) Items() []Item { return x.items }

// Len is the number of entries.
func (x *Index) Len() int { return len(x.items) }

// Reset empties the index.
func (x *Index) Reset() {
	x.items = nil
	x.query = ""
	x.selected = -1
}
