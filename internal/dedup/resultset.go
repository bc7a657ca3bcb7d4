package dedup

// ResultSet is an ordered, capacity-bounded sequence of accepted
// records. Insertion is first-accepted-wins: once capacity is reached
// further additions are dropped, never re-ranked.
type ResultSet[T any] struct {
	limit int
	items []T
}

// NewResultSet creates a result set bounded at limit records.
func NewResultSet[T any](limit int) *ResultSet[T] {
	return &ResultSet[T]{limit: limit}
}

// Add appends an item unless the set is at capacity. Returns false
// when the item was dropped.
func (r *ResultSet[T]) Add(item T) bool {
	if len(r.items) >= r.limit {
		return false
	}
	r.items = append(r.items, item)
	return true
}

// Full reports whether the set has reached capacity.
func (r *ResultSet[T]) Full() bool {
	return len(r.items) >= r.limit
}

// Len returns the number of accepted items.
func (r *ResultSet[T]) Len() int {
	return len(r.items)
}

// Items returns the accepted records in admission order.
func (r *ResultSet[T]) Items() []T {
	return r.items
}
