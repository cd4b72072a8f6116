package Models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProductLine is one garment line inside an order: what to make, out of
// which fabric, at which unit price and how many.
type ProductLine struct {
	Product   string  `json:"product" validate:"required"`
	Fabric    string  `json:"fabric"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
}

// Subtotal returns unit price times quantity.
func (p ProductLine) Subtotal() float64 {
	return p.UnitPrice * float64(p.Quantity)
}

// Order is a customer job. Identity is (Year, ID): the id is unique within
// its year only, and is renumbered to stay dense after deletions, so it must
// never be referenced from outside the orders table.
type Order struct {
	Year             int           `json:"year"`
	ID               int           `json:"id"`
	Client           string        `json:"client"`
	Phone            string        `json:"phone"`
	Club             string        `json:"club"`
	BriefDescription string        `json:"brief_description"`
	Observations     string        `json:"observations"`
	EntryDate        time.Time     `json:"entry_date"`
	ExitDate         time.Time     `json:"exit_date"`
	Price            float64       `json:"price"`
	InvoicePrice     float64       `json:"invoice_price"`
	Advance          float64       `json:"advance"`
	PaymentType      string        `json:"payment_type"`
	Products         []ProductLine `json:"products"`

	// Workflow flags as stored. Pending is orthogonal to progress.
	Started  bool `json:"started"`
	Finished bool `json:"finished"`
	Paid     bool `json:"paid"`
	PickedUp bool `json:"picked_up"`
	Pending  bool `json:"pending"`

	// StoreDocID is the opaque document id assigned by the store on first
	// sync. Never surfaced to the operator.
	StoreDocID string `json:"-"`
}

// Ref returns the user-facing "id/year" handle.
func (o Order) Ref() string {
	return fmt.Sprintf("%d/%d", o.ID, o.Year)
}

// TotalProducts sums the subtotals of every line.
func (o Order) TotalProducts() float64 {
	var total float64
	for _, p := range o.Products {
		total += p.Subtotal()
	}
	return total
}

// Stage is the typed view over the workflow flags, so new code cannot build
// illegal flag combinations. Pending travels separately.
type Stage int

const (
	StageNew Stage = iota
	StageStarted
	StageFinished
	StageCompleted
)

// String returns the user-facing stage label.
func (s Stage) String() string {
	switch s {
	case StageStarted:
		return "Started"
	case StageFinished:
		return "Finished"
	case StageCompleted:
		return "Completed"
	default:
		return "New"
	}
}

// StageOf derives the typed stage from the stored flags.
// Completed requires finished, paid and picked up all at once.
func (o Order) StageOf() Stage {
	switch {
	case o.Finished && o.Paid && o.PickedUp:
		return StageCompleted
	case o.Finished:
		return StageFinished
	case o.Started:
		return StageStarted
	default:
		return StageNew
	}
}

// DisplayLabel returns the label and color the consult screen paints the
// order with. Pending wins over everything else.
func (o Order) DisplayLabel() (label string, color string) {
	if o.Pending {
		return "Pending", "magenta"
	}
	switch o.StageOf() {
	case StageCompleted:
		return "Completed", "green"
	case StageFinished:
		return "Finished", "blue"
	case StageStarted:
		return "Started", "orange"
	default:
		return "New", "gray"
	}
}

// Initial workflow choices offered on the create screen.
const (
	InitialPending = "pending"
	InitialStarted = "started"
	InitialPaid    = "paid"
)

// ApplyInitialState maps the create-screen workflow choice onto the flags.
// Exactly one of pending/started/paid ends up set.
func (o *Order) ApplyInitialState(initial string) error {
	o.Started, o.Finished, o.Paid, o.PickedUp, o.Pending = false, false, false, false, false
	switch initial {
	case InitialPending:
		o.Pending = true
	case InitialStarted:
		o.Started = true
	case InitialPaid:
		o.Paid = true
	default:
		return fmt.Errorf("%w: unknown initial state %q", ErrValidation, initial)
	}
	return nil
}

// storedProduct is the wire shape of one product line inside the textual
// Products field. Key names are fixed by the existing store contents.
type storedProduct struct {
	Product   string  `json:"Producto"`
	Fabric    string  `json:"Tela"`
	UnitPrice float64 `json:"PrecioUnitario"`
	Quantity  int     `json:"Cantidad"`
}

// EncodeProducts serialises a product list into the single JSON string field
// the order document carries.
func EncodeProducts(lines []ProductLine) string {
	stored := make([]storedProduct, 0, len(lines))
	for _, l := range lines {
		stored = append(stored, storedProduct{
			Product:   l.Product,
			Fabric:    l.Fabric,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	encoded, err := json.Marshal(stored)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// DecodeProducts parses the textual product encoding. A malformed or empty
// encoding yields an empty list; the modify screen repairs that to a single
// default line before editing.
func DecodeProducts(encoded string) []ProductLine {
	if encoded == "" {
		return []ProductLine{}
	}
	var stored []storedProduct
	if err := json.Unmarshal([]byte(encoded), &stored); err != nil {
		return []ProductLine{}
	}
	lines := make([]ProductLine, 0, len(stored))
	for _, s := range stored {
		lines = append(lines, ProductLine{
			Product:   s.Product,
			Fabric:    s.Fabric,
			UnitPrice: s.UnitPrice,
			Quantity:  s.Quantity,
		})
	}
	return lines
}

// DefaultProductLine is what the modify screen seeds when an order comes back
// from the store with no readable product list.
func DefaultProductLine() ProductLine {
	return ProductLine{Product: "", Fabric: "", UnitPrice: 0, Quantity: 1}
}
