package Store

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"Imperyo/AbstractFunctions"
	"Imperyo/Models"
)

// Gateway maps the in-memory collection set to the remote store. Saves are
// replace-all: the screen's table is the source of truth, so every existing
// document is deleted in one batch and the current rows are inserted as
// fresh documents in a second batch. At hundreds of orders per year the
// O(N) write cost is a non-issue.
type Gateway struct {
	Client DocClient
}

// NewGateway wraps a document client.
func NewGateway(client DocClient) *Gateway {
	return &Gateway{Client: client}
}

// LoadAll streams every known collection into a fresh working set. Orders
// and expenses come back sorted ascending by id, rows without a readable id
// last.
func (g *Gateway) LoadAll(ctx context.Context) (*Models.AppState, error) {
	state := &Models.AppState{}

	orderDocs, err := g.Client.StreamAll(ctx, CollectionOrders)
	if err != nil {
		return nil, fmt.Errorf("%w: loading orders: %v", Models.ErrTransport, err)
	}
	for _, d := range orderDocs {
		state.Orders = append(state.Orders, DocToOrder(d))
	}
	sort.SliceStable(state.Orders, func(i, j int) bool {
		return idLess(state.Orders[i].ID, state.Orders[j].ID)
	})

	expenseDocs, err := g.Client.StreamAll(ctx, CollectionExpenses)
	if err != nil {
		return nil, fmt.Errorf("%w: loading expenses: %v", Models.ErrTransport, err)
	}
	for _, d := range expenseDocs {
		state.Expenses = append(state.Expenses, DocToExpense(d))
	}
	sort.SliceStable(state.Expenses, func(i, j int) bool {
		return idLess(state.Expenses[i].ID, state.Expenses[j].ID)
	})

	listDocs, err := g.Client.StreamAll(ctx, CollectionLists)
	if err != nil {
		return nil, fmt.Errorf("%w: loading catalogue lists: %v", Models.ErrTransport, err)
	}
	state.Lists = ListsFromDocs(listDocs)

	prospectDocs, err := g.Client.StreamAll(ctx, CollectionProspects)
	if err != nil {
		return nil, fmt.Errorf("%w: loading prospects: %v", Models.ErrTransport, err)
	}
	for _, d := range prospectDocs {
		state.Prospects = append(state.Prospects, DocToProspect(d))
	}

	// Opaque passthrough collections: keep the raw field maps.
	totalDocs, err := g.Client.StreamAll(ctx, CollectionTotals)
	if err != nil {
		return nil, fmt.Errorf("%w: loading totals: %v", Models.ErrTransport, err)
	}
	for _, d := range totalDocs {
		state.Totals = append(state.Totals, d.Fields)
	}
	jobDocs, err := g.Client.StreamAll(ctx, CollectionJobs)
	if err != nil {
		return nil, fmt.Errorf("%w: loading jobs: %v", Models.ErrTransport, err)
	}
	for _, d := range jobDocs {
		state.Jobs = append(state.Jobs, d.Fields)
	}

	return state, nil
}

// idLess orders ascending by numeric id, rows without a readable id last.
func idLess(a, b int) bool {
	if a <= 0 {
		return false
	}
	if b <= 0 {
		return true
	}
	return a < b
}

// Save replaces the whole remote collection with the given rows: one atomic
// delete batch, then one atomic insert batch with store-generated ids. Every
// value is passed through ToStoreValue first, whatever path built the row. If
// the delete batch fails the old documents are still in place; if the insert
// batch fails the collection is empty and the caller must retry with the
// same table, the in-memory rows being the only remaining copy.
func (g *Gateway) Save(ctx context.Context, collection string, rows []map[string]interface{}) error {
	for _, row := range rows {
		for k, v := range row {
			row[k] = AbstractFunctions.ToStoreValue(v)
		}
	}
	if err := g.Client.DeleteAll(ctx, collection); err != nil {
		return fmt.Errorf("%w: clearing %s (old documents kept): %v", Models.ErrTransport, collection, err)
	}
	if err := g.Client.InsertAll(ctx, collection, rows); err != nil {
		return fmt.Errorf("%w: inserting into %s (collection now empty, retry this save): %v", Models.ErrTransport, collection, err)
	}
	return nil
}

// SaveOrders persists the whole orders table.
func (g *Gateway) SaveOrders(ctx context.Context, orders []Models.Order) error {
	rows := make([]map[string]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, OrderToDoc(o))
	}
	return g.Save(ctx, CollectionOrders, rows)
}

// SaveExpenses persists the whole expenses table.
func (g *Gateway) SaveExpenses(ctx context.Context, expenses []Models.Expense) error {
	rows := make([]map[string]interface{}, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, ExpenseToDoc(e))
	}
	return g.Save(ctx, CollectionExpenses, rows)
}

// SaveLists persists the catalogue lists.
func (g *Gateway) SaveLists(ctx context.Context, lists Models.CatalogueLists) error {
	return g.Save(ctx, CollectionLists, ListsToDocs(lists))
}

// DeleteDoc removes one document. An unknown id is treated as success: the
// document is gone either way.
func (g *Gateway) DeleteDoc(ctx context.Context, collection, docID string) error {
	if err := g.Client.DeleteOne(ctx, collection, docID); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("%w: deleting %s/%s: %v", Models.ErrTransport, collection, docID, err)
	}
	return nil
}

// AddProspect creates a single prospect document and returns its id.
func (g *Gateway) AddProspect(ctx context.Context, p Models.Prospect) (string, error) {
	id, err := g.Client.AddOne(ctx, CollectionProspects, ProspectToDoc(p))
	if err != nil {
		return "", fmt.Errorf("%w: adding prospect: %v", Models.ErrTransport, err)
	}
	return id, nil
}

// UpdateProspect merges the prospect's fields into its existing document.
func (g *Gateway) UpdateProspect(ctx context.Context, docID string, p Models.Prospect) error {
	if err := g.Client.UpdateOne(ctx, CollectionProspects, docID, ProspectToDoc(p)); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: prospect %s", Models.ErrNotFound, docID)
		}
		return fmt.Errorf("%w: updating prospect %s: %v", Models.ErrTransport, docID, err)
	}
	return nil
}
