package Models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSaver records saves and deletes and can be told to fail.
type fakeSaver struct {
	saveOrdersErr   error
	saveExpensesErr error
	deleteErr       error

	orderSaves   int
	expenseSaves int
	deleted      []string
}

func (f *fakeSaver) SaveOrders(ctx context.Context, orders []Order) error {
	f.orderSaves++
	return f.saveOrdersErr
}

func (f *fakeSaver) SaveExpenses(ctx context.Context, expenses []Expense) error {
	f.expenseSaves++
	return f.saveExpensesErr
}

func (f *fakeSaver) DeleteDoc(ctx context.Context, collection, storeDocID string) error {
	f.deleted = append(f.deleted, collection+"/"+storeDocID)
	return f.deleteErr
}

type fakeNotifier struct {
	err    error
	orders []Order
}

func (f *fakeNotifier) NotifyNewOrder(ctx context.Context, o Order) error {
	f.orders = append(f.orders, o)
	return f.err
}

func testCommands() (*Commands, *fakeSaver) {
	saver := &fakeSaver{}
	cmd := &Commands{
		State: &AppState{},
		Store: saver,
		Now:   func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) },
	}
	return cmd, saver
}

func validInput(client string) OrderInput {
	return OrderInput{
		Client:    client,
		Phone:     "612 345 678",
		Club:      "CC Norte",
		EntryDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Price:     90,
		Products:  []ProductLine{{Product: "Jersey", Fabric: "Lycra", UnitPrice: 30, Quantity: 3}},
	}
}

func TestCreateOrderAssignsSequentialIDs(t *testing.T) {
	cmd, saver := testCommands()
	ctx := context.Background()

	for i, client := range []string{"Ana", "Benito", "Carla"} {
		order, err := cmd.CreateOrder(ctx, validInput(client), InitialStarted)
		require.NoError(t, err)
		assert.Equal(t, i+1, order.ID)
		assert.Equal(t, 2025, order.Year)
	}
	assert.Equal(t, 3, saver.orderSaves)
	assert.Len(t, cmd.State.Orders, 3)
	assert.Equal(t, "612345678", cmd.State.Orders[0].Phone)
}

func TestDeleteOrderRenumbersYear(t *testing.T) {
	cmd, saver := testCommands()
	ctx := context.Background()

	for _, client := range []string{"Ana", "Benito", "Carla"} {
		_, err := cmd.CreateOrder(ctx, validInput(client), InitialStarted)
		require.NoError(t, err)
	}
	cmd.State.Orders[1].StoreDocID = "doc-b"

	require.NoError(t, cmd.DeleteOrder(ctx, 2025, 2))

	require.Len(t, cmd.State.Orders, 2)
	assert.Equal(t, "Ana", cmd.State.Orders[0].Client)
	assert.Equal(t, 1, cmd.State.Orders[0].ID)
	// Carla closed the gap Benito left.
	assert.Equal(t, "Carla", cmd.State.Orders[1].Client)
	assert.Equal(t, 2, cmd.State.Orders[1].ID)

	assert.Equal(t, []string{"orders/doc-b"}, saver.deleted)
	assert.Equal(t, 4, saver.orderSaves)
}

func TestDeleteOrderLeavesOtherYearsAlone(t *testing.T) {
	cmd, _ := testCommands()
	ctx := context.Background()
	cmd.State.Orders = []Order{
		{Year: 2024, ID: 1, Client: "Viejo"},
		{Year: 2025, ID: 1, Client: "Ana"},
		{Year: 2025, ID: 2, Client: "Benito"},
	}

	require.NoError(t, cmd.DeleteOrder(ctx, 2025, 1))

	assert.Equal(t, 1, cmd.State.Orders[0].ID)
	assert.Equal(t, "Viejo", cmd.State.Orders[0].Client)
	assert.Equal(t, 1, cmd.State.Orders[1].ID)
	assert.Equal(t, "Benito", cmd.State.Orders[1].Client)
}

func TestCreateOrderValidation(t *testing.T) {
	cmd, saver := testCommands()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*OrderInput)
	}{
		{"no client", func(in *OrderInput) { in.Client = "" }},
		{"short phone", func(in *OrderInput) { in.Phone = "6123" }},
		{"no club", func(in *OrderInput) { in.Club = "" }},
		{"no entry date", func(in *OrderInput) { in.EntryDate = time.Time{} }},
		{"no products", func(in *OrderInput) { in.Products = nil }},
		{"zero quantity", func(in *OrderInput) { in.Products[0].Quantity = 0 }},
		{"negative price", func(in *OrderInput) { in.Price = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("Ana")
			tt.mutate(&in)
			_, err := cmd.CreateOrder(ctx, in, InitialStarted)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Zero(t, saver.orderSaves, "nothing may be saved on validation failure")
	assert.Empty(t, cmd.State.Orders)
}

func TestCreateOrderRequiresInitialState(t *testing.T) {
	cmd, saver := testCommands()
	ctx := context.Background()

	// The create screen must choose one of pending/started/paid; an empty
	// or unknown choice is rejected before anything is appended.
	for _, initial := range []string{"", "delivered"} {
		_, err := cmd.CreateOrder(ctx, validInput("Ana"), initial)
		assert.ErrorIs(t, err, ErrValidation, initial)
	}
	assert.Empty(t, cmd.State.Orders)
	assert.Zero(t, saver.orderSaves)
}

func TestCreateOrderSaveFailureKeepsOrderInMemory(t *testing.T) {
	cmd, saver := testCommands()
	saver.saveOrdersErr = errors.New("deadline exceeded")

	order, err := cmd.CreateOrder(context.Background(), validInput("Ana"), InitialStarted)
	assert.ErrorIs(t, err, ErrTransport)
	// The append stands so the operator can retry the save.
	assert.Len(t, cmd.State.Orders, 1)
	assert.Equal(t, 1, order.ID)
}

func TestCreateOrderNotificationFailure(t *testing.T) {
	cmd, saver := testCommands()
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	cmd.Notifier = notifier

	order, err := cmd.CreateOrder(context.Background(), validInput("Ana"), InitialStarted)
	assert.ErrorIs(t, err, ErrNotification)
	// The order was created and saved before the notification failed.
	assert.Equal(t, 1, order.ID)
	assert.Len(t, cmd.State.Orders, 1)
	assert.Equal(t, 1, saver.orderSaves)
}

func TestCreateOrderNotifies(t *testing.T) {
	cmd, _ := testCommands()
	notifier := &fakeNotifier{}
	cmd.Notifier = notifier

	_, err := cmd.CreateOrder(context.Background(), validInput("Ana"), InitialPending)
	require.NoError(t, err)
	require.Len(t, notifier.orders, 1)
	assert.Equal(t, "Ana", notifier.orders[0].Client)
	assert.True(t, notifier.orders[0].Pending)
}

func TestModifyOrder(t *testing.T) {
	cmd, _ := testCommands()
	ctx := context.Background()
	_, err := cmd.CreateOrder(ctx, validInput("Ana"), InitialStarted)
	require.NoError(t, err)
	cmd.State.Orders[0].StoreDocID = "doc-a"

	in := validInput("Ana María")
	in.Products = []ProductLine{{Product: "Culotte", UnitPrice: 45, Quantity: 2}}
	order, err := cmd.ModifyOrder(ctx, 2025, 1, in, true, true, false, false, false)
	require.NoError(t, err)

	assert.Equal(t, "Ana María", order.Client)
	assert.True(t, order.Started)
	assert.True(t, order.Finished)
	assert.False(t, order.Paid)
	// Identity and store handle never change on modify.
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, 2025, order.Year)
	assert.Equal(t, "doc-a", cmd.State.Orders[0].StoreDocID)
	// The submitted product list replaced the stored one.
	require.Len(t, cmd.State.Orders[0].Products, 1)
	assert.Equal(t, "Culotte", cmd.State.Orders[0].Products[0].Product)
}

func TestModifyOrderNotFound(t *testing.T) {
	cmd, _ := testCommands()
	_, err := cmd.ModifyOrder(context.Background(), 2025, 99, validInput("Ana"), false, false, false, false, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOrderNotFound(t *testing.T) {
	cmd, _ := testCommands()
	assert.ErrorIs(t, cmd.DeleteOrder(context.Background(), 2025, 1), ErrNotFound)
}

func TestAddExpense(t *testing.T) {
	cmd, saver := testCommands()
	ctx := context.Background()

	e, err := cmd.AddExpense(ctx, time.Date(2025, 2, 3, 14, 30, 0, 0, time.UTC), "Tela lycra", 120.5, ExpenseVariable)
	require.NoError(t, err)
	assert.Equal(t, 1, e.ID)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), e.Date)
	assert.Equal(t, 1, saver.expenseSaves)

	e2, err := cmd.AddExpense(ctx, time.Time{}, "Alquiler", 600, ExpenseFixed)
	require.NoError(t, err)
	assert.Equal(t, 2, e2.ID)
	// Zero date defaults to today.
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), e2.Date)
}

func TestAddExpenseValidation(t *testing.T) {
	cmd, _ := testCommands()
	ctx := context.Background()

	_, err := cmd.AddExpense(ctx, time.Time{}, "", 10, ExpenseFixed)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = cmd.AddExpense(ctx, time.Time{}, "Tela", 0, ExpenseFixed)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = cmd.AddExpense(ctx, time.Time{}, "Tela", 10, "ocasional")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteExpense(t *testing.T) {
	cmd, saver := testCommands()
	ctx := context.Background()
	cmd.State.Expenses = []Expense{
		{ID: 1, Concept: "Tela", StoreDocID: "doc-1"},
		{ID: 2, Concept: "Alquiler"},
	}

	require.NoError(t, cmd.DeleteExpense(ctx, 1))
	require.Len(t, cmd.State.Expenses, 1)
	// Expense ids are stable, no renumbering.
	assert.Equal(t, 2, cmd.State.Expenses[0].ID)
	assert.Equal(t, []string{"expenses/doc-1"}, saver.deleted)

	assert.ErrorIs(t, cmd.DeleteExpense(ctx, 9), ErrNotFound)
}
