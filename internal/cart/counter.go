package cart

import "sync"

// Counter exposes the derived total item count of a cart.
type Counter interface {
	TotalItems() int
}

// Totals computes the count on first use and memoizes it, including a failure.
type Totals struct {
	once  sync.Once
	load  func() (int, error)
	total int
	err   error
}

func newTotals(load func() (int, error)) *Totals {
	return &Totals{load: load}
}

// StaticCounter is a fixed count, used for anonymous visitors.
type StaticCounter int

func (c StaticCounter) TotalItems() int { return int(c) }

func (t *Totals) TotalItems() int {
	t.resolve()
	return t.total
}

// Err reports why the count could not be loaded; TotalItems is zero in that case.
func (t *Totals) Err() error {
	t.resolve()
	return t.err
}

func (t *Totals) resolve() {
	t.once.Do(func() {
		total, err := t.load()
		if err != nil {
			t.err = err
			return
		}
		t.total = total
	})
}
