package Queries

import (
	"fmt"
	"strings"
	"time"

	"Imperyo/Models"
)

// OrdersOfYear returns the orders whose year matches.
func OrdersOfYear(orders []Models.Order, year int) []Models.Order {
	var out []Models.Order
	for _, o := range orders {
		if o.Year == year {
			out = append(out, o)
		}
	}
	return out
}

// BucketCounts are the five fixed summary buckets. Pending is orthogonal:
// an order with the pending flag counts only there, whatever its progress.
type BucketCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Started   int `json:"started"`
	Finished  int `json:"finished"`
	New       int `json:"new"`
}

// CountBuckets tallies the selected year's orders into the summary buckets.
func CountBuckets(orders []Models.Order, year int) BucketCounts {
	var counts BucketCounts
	for _, o := range orders {
		if o.Year != year {
			continue
		}
		if o.Pending {
			counts.Pending++
			continue
		}
		switch o.StageOf() {
		case Models.StageCompleted:
			counts.Completed++
		case Models.StageFinished:
			counts.Finished++
		case Models.StageStarted:
			counts.Started++
		default:
			counts.New++
		}
	}
	return counts
}

// orderText renders one order row as searchable text.
func orderText(o Models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %s %s %s %s %s %s %g %g %g %g",
		o.ID, o.Year, o.Client, o.Phone, o.Club, o.BriefDescription,
		o.Observations, o.PaymentType, o.Price, o.InvoicePrice, o.Advance,
		o.TotalProducts())
	for _, p := range o.Products {
		fmt.Fprintf(&b, " %s %s", p.Product, p.Fabric)
	}
	if !o.EntryDate.IsZero() {
		b.WriteString(" " + o.EntryDate.Format("2006-01-02"))
	}
	if !o.ExitDate.IsZero() {
		b.WriteString(" " + o.ExitDate.Format("2006-01-02"))
	}
	return b.String()
}

// SearchOrders returns the orders whose textual representation contains the
// query, case-insensitively. An empty query matches everything.
func SearchOrders(orders []Models.Order, query string) []Models.Order {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return orders
	}
	var out []Models.Order
	for _, o := range orders {
		if strings.Contains(strings.ToLower(orderText(o)), query) {
			out = append(out, o)
		}
	}
	return out
}

// ProductRow is one exploded product line for the analytics screen: one row
// per line-item of every order in the year.
type ProductRow struct {
	OrderRef  string  `json:"order_ref"`
	Client    string  `json:"client"`
	Club      string  `json:"club"`
	Product   string  `json:"product"`
	Fabric    string  `json:"fabric"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// ExplodeProducts emits one row per product line of every order of the year.
func ExplodeProducts(orders []Models.Order, year int) []ProductRow {
	var rows []ProductRow
	for _, o := range orders {
		if o.Year != year {
			continue
		}
		for _, p := range o.Products {
			rows = append(rows, ProductRow{
				OrderRef:  o.Ref(),
				Client:    o.Client,
				Club:      o.Club,
				Product:   p.Product,
				Fabric:    p.Fabric,
				Quantity:  p.Quantity,
				UnitPrice: p.UnitPrice,
				Total:     p.Subtotal(),
			})
		}
	}
	return rows
}

// ProductGroup aggregates exploded rows by (product, fabric).
type ProductGroup struct {
	Product  string  `json:"product"`
	Fabric   string  `json:"fabric"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// ExplosionSummary are the product-analytics aggregates for one year.
type ExplosionSummary struct {
	TotalUnits     int            `json:"total_units"`
	TotalRevenue   float64        `json:"total_revenue"`
	DistinctOrders int            `json:"distinct_orders"`
	Groups         []ProductGroup `json:"groups"`
}

// SummarizeExplosion aggregates the exploded rows: total units, total
// revenue, distinct orders and per-(product, fabric) groups in first-seen
// order.
func SummarizeExplosion(rows []ProductRow) ExplosionSummary {
	summary := ExplosionSummary{}
	seenOrders := map[string]bool{}
	groupIndex := map[string]int{}
	for _, r := range rows {
		summary.TotalUnits += r.Quantity
		summary.TotalRevenue += r.Total
		if !seenOrders[r.OrderRef] {
			seenOrders[r.OrderRef] = true
			summary.DistinctOrders++
		}
		key := r.Product + "\x00" + r.Fabric
		i, ok := groupIndex[key]
		if !ok {
			i = len(summary.Groups)
			groupIndex[key] = i
			summary.Groups = append(summary.Groups, ProductGroup{Product: r.Product, Fabric: r.Fabric})
		}
		summary.Groups[i].Quantity += r.Quantity
		summary.Groups[i].Total += r.Total
	}
	return summary
}

// ExpenseFilter selects expenses by type set, date range and free text.
// Zero values mean "no constraint" for their dimension.
type ExpenseFilter struct {
	Types  []string
	From   time.Time
	To     time.Time
	Search string
}

// FilterExpenses applies the filter over the flat expense list. The text
// search matches the string representation of the whole row.
func FilterExpenses(expenses []Models.Expense, filter ExpenseFilter) []Models.Expense {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []Models.Expense
	for _, e := range expenses {
		if len(filter.Types) > 0 && !containsString(filter.Types, e.Type) {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		if search != "" {
			text := fmt.Sprintf("%d %s %s %g %s", e.ID, e.Date.Format("2006-01-02"), e.Concept, e.Amount, e.Type)
			if !strings.Contains(strings.ToLower(text), search) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// ExpenseTotals sums amounts overall and per type.
type ExpenseTotals struct {
	Total    float64 `json:"total"`
	Fixed    float64 `json:"fixed"`
	Variable float64 `json:"variable"`
}

// TotalExpenses aggregates a filtered expense list.
func TotalExpenses(expenses []Models.Expense) ExpenseTotals {
	var totals ExpenseTotals
	for _, e := range expenses {
		totals.Total += e.Amount
		if e.Type == Models.ExpenseFixed {
			totals.Fixed += e.Amount
		} else {
			totals.Variable += e.Amount
		}
	}
	return totals
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
