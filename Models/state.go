package Models

import "sort"

// CatalogueLists are the read-only selector sources for the screens.
type CatalogueLists struct {
	Products     []string `json:"products"`
	Fabrics      []string `json:"fabrics"`
	PaymentTypes []string `json:"payment_types"`
	Clubs        []string `json:"clubs"`
}

// AppState is the working set a screen session operates on. It is loaded
// once from the store, mutated in memory, and written back with replace-all
// saves. A single operator owns it; there is no cross-session sharing.
type AppState struct {
	Orders    []Order
	Expenses  []Expense
	Lists     CatalogueLists
	Prospects []Prospect

	// Totals and Jobs are carried as opaque field maps: loaded, backed up
	// and restored, never interpreted.
	Totals []map[string]interface{}
	Jobs   []map[string]interface{}
}

// NextOrderID returns max(id)+1 among orders of the given year, or 1 when
// the year has none.
func (s *AppState) NextOrderID(year int) int {
	max := 0
	for _, o := range s.Orders {
		if o.Year == year && o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}

// NextExpenseID returns max(id)+1 over the whole expense table, or 1.
func (s *AppState) NextExpenseID() int {
	max := 0
	for _, e := range s.Expenses {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// FindOrder returns the index of the order with the given (year, id), or -1.
func (s *AppState) FindOrder(year, id int) int {
	for i, o := range s.Orders {
		if o.Year == year && o.ID == id {
			return i
		}
	}
	return -1
}

// FindExpense returns the index of the expense with the given id, or -1.
func (s *AppState) FindExpense(id int) int {
	for i, e := range s.Expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// RemoveOrderAt drops the order at index i, preserving table order.
func (s *AppState) RemoveOrderAt(i int) {
	s.Orders = append(s.Orders[:i], s.Orders[i+1:]...)
}

// RemoveExpenseAt drops the expense at index i, preserving table order.
func (s *AppState) RemoveExpenseAt(i int) {
	s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
}

// RenumberYear reassigns ids 1..N to the orders of one year, in ascending
// order of their current id, closing the gap a deletion left. Other years
// are untouched. Ids are user-facing handles within a year, so the sequence
// is kept dense at the cost of id stability.
func (s *AppState) RenumberYear(year int) {
	var idx []int
	for i, o := range s.Orders {
		if o.Year == year {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Orders[idx[a]].ID < s.Orders[idx[b]].ID
	})
	for n, i := range idx {
		s.Orders[i].ID = n + 1
	}
}
