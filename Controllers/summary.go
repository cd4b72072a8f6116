package Controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"Imperyo/Backup"
	"Imperyo/Models"
	"Imperyo/Queries"
)

// SummaryHandler serves the yearly summary and product analytics screens.
type SummaryHandler struct {
	State *Models.AppState
}

// NewSummaryHandler creates a summary handler over the shared working set.
func NewSummaryHandler(state *Models.AppState) *SummaryHandler {
	return &SummaryHandler{State: state}
}

// GetSummary returns the five status buckets and the money totals of one
// year.
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	year := queryYear(c)
	yearOrders := Queries.OrdersOfYear(h.State.Orders, year)

	var revenue, advances float64
	for _, o := range yearOrders {
		revenue += o.Price
		advances += o.Advance
	}

	var yearExpenses []Models.Expense
	for _, e := range h.State.Expenses {
		if e.Date.Year() == year {
			yearExpenses = append(yearExpenses, e)
		}
	}

	return c.JSON(fiber.Map{
		"year":     year,
		"buckets":  Queries.CountBuckets(h.State.Orders, year),
		"orders":   len(yearOrders),
		"revenue":  revenue,
		"advances": advances,
		"expenses": Queries.TotalExpenses(yearExpenses),
	})
}

// GetAnalytics returns the exploded product rows of one year with their
// aggregates.
func (h *SummaryHandler) GetAnalytics(c *fiber.Ctx) error {
	year := queryYear(c)
	rows := Queries.ExplodeProducts(h.State.Orders, year)
	return c.JSON(fiber.Map{
		"rows":    rows,
		"summary": Queries.SummarizeExplosion(rows),
	})
}

// ExportOrders streams the year's orders and product analytics as a
// spreadsheet download.
func (h *SummaryHandler) ExportOrders(c *fiber.Ctx) error {
	year := queryYear(c)
	buf, err := Backup.BuildOrdersExport(h.State.Orders, year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build export",
		})
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pedidos_%d.xlsx"`, year))
	return c.Send(buf.Bytes())
}
