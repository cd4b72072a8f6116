package Models

import (
	"context"
	"fmt"
	"log"
	"time"

	"Imperyo/AbstractFunctions"
)

// CollectionSaver is the slice of the persistence gateway the command layer
// needs: replace-all saves for the two big tables plus single-document
// deletes. Implemented by Store.Gateway and by the test fake.
type CollectionSaver interface {
	SaveOrders(ctx context.Context, orders []Order) error
	SaveExpenses(ctx context.Context, expenses []Expense) error
	DeleteDoc(ctx context.Context, collection, storeDocID string) error
}

// Notifier pushes a short new-order summary to the outside world.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o Order) error
}

// Commands are the core screen operations, kept free of HTTP concerns so
// they can be exercised headlessly.
type Commands struct {
	State    *AppState
	Store    CollectionSaver
	Notifier Notifier

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (c *Commands) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// OrderInput carries the editable order fields submitted by the create and
// modify screens.
type OrderInput struct {
	Client           string
	Phone            string
	Club             string
	BriefDescription string
	Observations     string
	EntryDate        time.Time
	ExitDate         time.Time
	Price            float64
	InvoicePrice     float64
	Advance          float64
	PaymentType      string
	Products         []ProductLine
}

func (in *OrderInput) validate() error {
	if in.Client == "" {
		return fmt.Errorf("%w: client is required", ErrValidation)
	}
	in.Phone = AbstractFunctions.NormalizePhone(in.Phone)
	if in.Phone == "" {
		return fmt.Errorf("%w: phone must contain at least 9 digits", ErrValidation)
	}
	if in.Club == "" {
		return fmt.Errorf("%w: club is required", ErrValidation)
	}
	if in.EntryDate.IsZero() {
		return fmt.Errorf("%w: entry date is required", ErrValidation)
	}
	if len(in.Products) == 0 {
		return fmt.Errorf("%w: at least one product line is required", ErrValidation)
	}
	for i, p := range in.Products {
		if p.Product == "" {
			return fmt.Errorf("%w: product line %d has no product", ErrValidation, i+1)
		}
		if p.Quantity <= 0 {
			return fmt.Errorf("%w: product line %d quantity must be positive", ErrValidation, i+1)
		}
		if p.UnitPrice < 0 {
			return fmt.Errorf("%w: product line %d unit price cannot be negative", ErrValidation, i+1)
		}
	}
	if in.Price < 0 || in.InvoicePrice < 0 || in.Advance < 0 {
		return fmt.Errorf("%w: prices cannot be negative", ErrValidation)
	}
	return nil
}

func (in OrderInput) applyTo(o *Order) {
	o.Client = in.Client
	o.Phone = in.Phone
	o.Club = in.Club
	o.BriefDescription = in.BriefDescription
	o.Observations = in.Observations
	o.EntryDate = in.EntryDate
	o.ExitDate = in.ExitDate
	o.Price = in.Price
	o.InvoicePrice = in.InvoicePrice
	o.Advance = in.Advance
	o.PaymentType = in.PaymentType
	// The submitted list replaces the stored one wholesale, never merged.
	o.Products = append([]ProductLine(nil), in.Products...)
}

// CreateOrder appends a new order for the current calendar year, persists
// the table and fires the new-order notification. A notification failure is
// returned wrapping ErrNotification after the save already succeeded.
func (c *Commands) CreateOrder(ctx context.Context, in OrderInput, initial string) (Order, error) {
	if err := in.validate(); err != nil {
		return Order{}, err
	}
	year := c.now().Year()
	order := Order{Year: year, ID: c.State.NextOrderID(year)}
	in.applyTo(&order)
	if err := order.ApplyInitialState(initial); err != nil {
		return Order{}, err
	}

	c.State.Orders = append(c.State.Orders, order)
	if err := c.Store.SaveOrders(ctx, c.State.Orders); err != nil {
		return order, fmt.Errorf("%w: saving orders: %v", ErrTransport, err)
	}

	if c.Notifier != nil {
		if err := c.Notifier.NotifyNewOrder(ctx, order); err != nil {
			log.Printf("New order %s saved but notification failed: %v", order.Ref(), err)
			return order, fmt.Errorf("%w: %v", ErrNotification, err)
		}
	}
	return order, nil
}

// ModifyOrder overwrites every editable field of the order selected by
// (year, id) and persists the table. Year, id and the store document id are
// immutable. Workflow flags are accepted as submitted; the operator may set
// any combination.
func (c *Commands) ModifyOrder(ctx context.Context, year, id int, in OrderInput, started, finished, paid, pickedUp, pending bool) (Order, error) {
	i := c.State.FindOrder(year, id)
	if i < 0 {
		return Order{}, fmt.Errorf("%w: order %d/%d", ErrNotFound, id, year)
	}
	if err := in.validate(); err != nil {
		return Order{}, err
	}

	order := &c.State.Orders[i]
	in.applyTo(order)
	order.Started = started
	order.Finished = finished
	order.Paid = paid
	order.PickedUp = pickedUp
	order.Pending = pending

	if err := c.Store.SaveOrders(ctx, c.State.Orders); err != nil {
		return *order, fmt.Errorf("%w: saving orders: %v", ErrTransport, err)
	}
	return *order, nil
}

// DeleteOrder removes the order selected by (year, id), renumbers the
// remaining orders of that year to a dense 1..N sequence and commits the
// renumbering with a full save.
func (c *Commands) DeleteOrder(ctx context.Context, year, id int) error {
	i := c.State.FindOrder(year, id)
	if i < 0 {
		return fmt.Errorf("%w: order %d/%d", ErrNotFound, id, year)
	}

	if docID := c.State.Orders[i].StoreDocID; docID != "" {
		if err := c.Store.DeleteDoc(ctx, "orders", docID); err != nil {
			return fmt.Errorf("%w: deleting order document: %v", ErrTransport, err)
		}
	}

	c.State.RemoveOrderAt(i)
	c.State.RenumberYear(year)

	if err := c.Store.SaveOrders(ctx, c.State.Orders); err != nil {
		return fmt.Errorf("%w: saving renumbered orders: %v", ErrTransport, err)
	}
	return nil
}

// AddExpense validates and appends a new expense with the next global id,
// then persists the expense table.
func (c *Commands) AddExpense(ctx context.Context, date time.Time, concept string, amount float64, expenseType string) (Expense, error) {
	if concept == "" {
		return Expense{}, fmt.Errorf("%w: concept is required", ErrValidation)
	}
	if amount <= 0 {
		return Expense{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if expenseType != ExpenseFixed && expenseType != ExpenseVariable {
		return Expense{}, fmt.Errorf("%w: unknown expense type %q", ErrValidation, expenseType)
	}
	if date.IsZero() {
		date = c.now()
	}

	expense := Expense{
		ID:      c.State.NextExpenseID(),
		Date:    AbstractFunctions.NormalizeDate(date),
		Concept: concept,
		Amount:  amount,
		Type:    expenseType,
	}
	c.State.Expenses = append(c.State.Expenses, expense)
	if err := c.Store.SaveExpenses(ctx, c.State.Expenses); err != nil {
		return expense, fmt.Errorf("%w: saving expenses: %v", ErrTransport, err)
	}
	return expense, nil
}

// DeleteExpense removes the expense with the given id and persists the
// table. Expense ids are stable; no renumbering happens here.
func (c *Commands) DeleteExpense(ctx context.Context, id int) error {
	i := c.State.FindExpense(id)
	if i < 0 {
		return fmt.Errorf("%w: expense %d", ErrNotFound, id)
	}
	if docID := c.State.Expenses[i].StoreDocID; docID != "" {
		if err := c.Store.DeleteDoc(ctx, "expenses", docID); err != nil {
			return fmt.Errorf("%w: deleting expense document: %v", ErrTransport, err)
		}
	}
	c.State.RemoveExpenseAt(i)
	if err := c.Store.SaveExpenses(ctx, c.State.Expenses); err != nil {
		return fmt.Errorf("%w: saving expenses: %v", ErrTransport, err)
	}
	return nil
}
