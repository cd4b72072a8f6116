package Controllers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Imperyo/AbstractFunctions"
	"Imperyo/Models"
	"Imperyo/Queries"
)

// ExpenseHandler serves the expense screen: flat list with filters, add and
// delete.
type ExpenseHandler struct {
	Commands *Models.Commands
	State    *Models.AppState
	Validate *validator.Validate
}

// NewExpenseHandler creates an expense handler over the shared working set.
func NewExpenseHandler(commands *Models.Commands, state *Models.AppState) *ExpenseHandler {
	return &ExpenseHandler{
		Commands: commands,
		State:    state,
		Validate: validator.New(),
	}
}

// ExpenseRequest is the add-expense form.
type ExpenseRequest struct {
	Date    string  `json:"date"`
	Concept string  `json:"concept" validate:"required"`
	Amount  float64 `json:"amount" validate:"gt=0"`
	Type    string  `json:"type" validate:"required,oneof=fixed variable"`
}

// filterFromQuery builds the expense filter from query parameters:
// types is a comma-separated set, from/to accept any supported date form,
// q searches the whole row text.
func filterFromQuery(c *fiber.Ctx) Queries.ExpenseFilter {
	var filter Queries.ExpenseFilter
	if types := strings.TrimSpace(c.Query("types")); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Types = append(filter.Types, t)
			}
		}
	}
	filter.From = AbstractFunctions.NormalizeDate(c.Query("from"))
	filter.To = AbstractFunctions.NormalizeDate(c.Query("to"))
	filter.Search = c.Query("q")
	return filter
}

// GetExpenses returns the filtered expense list plus its totals.
func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	filtered := Queries.FilterExpenses(h.State.Expenses, filterFromQuery(c))
	return c.JSON(fiber.Map{
		"expenses": filtered,
		"totals":   Queries.TotalExpenses(filtered),
	})
}

// CreateExpense validates and registers a new expense with the next global
// id.
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	req := new(ExpenseRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	date := AbstractFunctions.NormalizeDate(req.Date)
	if req.Date != "" && date.IsZero() {
		return RespondError(c, fmt.Errorf("%w: unreadable date %q", Models.ErrValidation, req.Date))
	}

	expense, err := h.Commands.AddExpense(c.Context(), date, req.Concept, req.Amount, req.Type)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// DeleteExpense removes the expense with the given id.
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Bad expense id",
		})
	}
	if err := h.Commands.DeleteExpense(c.Context(), id); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Expense deleted successfully",
	})
}
