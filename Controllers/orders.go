package Controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Imperyo/AbstractFunctions"
	"Imperyo/Models"
	"Imperyo/Queries"
)

// OrderHandler serves the create/consult/modify/delete order screens.
type OrderHandler struct {
	Commands *Models.Commands
	State    *Models.AppState
	Validate *validator.Validate
}

// NewOrderHandler creates an order handler over the shared working set.
func NewOrderHandler(commands *Models.Commands, state *Models.AppState) *OrderHandler {
	return &OrderHandler{
		Commands: commands,
		State:    state,
		Validate: validator.New(),
	}
}

// OrderRequest carries the editable order fields as submitted by a screen.
type OrderRequest struct {
	Client           string               `json:"client" validate:"required"`
	Phone            string               `json:"phone" validate:"required"`
	Club             string               `json:"club" validate:"required"`
	BriefDescription string               `json:"brief_description"`
	Observations     string               `json:"observations"`
	EntryDate        string               `json:"entry_date" validate:"required"`
	ExitDate         string               `json:"exit_date"`
	Price            float64              `json:"price" validate:"gte=0"`
	InvoicePrice     float64              `json:"invoice_price" validate:"gte=0"`
	Advance          float64              `json:"advance" validate:"gte=0"`
	PaymentType      string               `json:"payment_type"`
	Products         []Models.ProductLine `json:"products" validate:"required,min=1,dive"`
}

// CreateOrderRequest adds the initial workflow choice.
type CreateOrderRequest struct {
	OrderRequest
	Initial string `json:"initial" validate:"required,oneof=pending started paid"`
}

// ModifyOrderRequest adds the five workflow flags, accepted as submitted.
type ModifyOrderRequest struct {
	OrderRequest
	Started  bool `json:"started"`
	Finished bool `json:"finished"`
	Paid     bool `json:"paid"`
	PickedUp bool `json:"picked_up"`
	Pending  bool `json:"pending"`
}

func (h *OrderHandler) toInput(req OrderRequest) (Models.OrderInput, error) {
	entryDate := AbstractFunctions.NormalizeDate(req.EntryDate)
	if entryDate.IsZero() {
		return Models.OrderInput{}, fmt.Errorf("%w: unreadable entry date %q", Models.ErrValidation, req.EntryDate)
	}
	var exitDate time.Time
	if !AbstractFunctions.IsNullish(req.ExitDate) {
		exitDate = AbstractFunctions.NormalizeDate(req.ExitDate)
		if exitDate.IsZero() {
			return Models.OrderInput{}, fmt.Errorf("%w: unreadable exit date %q", Models.ErrValidation, req.ExitDate)
		}
	}
	if req.PaymentType != "" && len(h.State.Lists.PaymentTypes) > 0 {
		if !containsString(h.State.Lists.PaymentTypes, req.PaymentType) {
			return Models.OrderInput{}, fmt.Errorf("%w: unknown payment type %q", Models.ErrValidation, req.PaymentType)
		}
	}
	return Models.OrderInput{
		Client:           req.Client,
		Phone:            req.Phone,
		Club:             req.Club,
		BriefDescription: req.BriefDescription,
		Observations:     req.Observations,
		EntryDate:        entryDate,
		ExitDate:         exitDate,
		Price:            req.Price,
		InvoicePrice:     req.InvoicePrice,
		Advance:          req.Advance,
		PaymentType:      req.PaymentType,
		Products:         req.Products,
	}, nil
}

// orderView decorates an order with its display label and color.
type orderView struct {
	Models.Order
	Label string `json:"label"`
	Color string `json:"color"`
}

func viewOf(o Models.Order) orderView {
	label, color := o.DisplayLabel()
	return orderView{Order: o, Label: label, Color: color}
}

// GetOrders lists the orders of one year, optionally filtered by a free
// text search over the whole row.
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	year := queryYear(c)
	orders := Queries.OrdersOfYear(h.State.Orders, year)
	orders = Queries.SearchOrders(orders, c.Query("q"))

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, viewOf(o))
	}
	return c.JSON(views)
}

// GetOrder returns one order by (year, id), with an unreadable product list
// repaired to a single default line so the modify screen always has a row
// to edit.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	year, id, err := h.pathRef(c)
	if err != nil {
		return RespondError(c, err)
	}
	i := h.State.FindOrder(year, id)
	if i < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	order := h.State.Orders[i]
	if len(order.Products) == 0 {
		order.Products = []Models.ProductLine{Models.DefaultProductLine()}
	}
	return c.JSON(viewOf(order))
}

// CreateOrder registers a new order for the current calendar year.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	req := new(CreateOrderRequest)
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
	input, err := h.toInput(req.OrderRequest)
	if err != nil {
		return RespondError(c, err)
	}

	order, err := h.Commands.CreateOrder(c.Context(), input, req.Initial)
	if err != nil && errors.Is(err, Models.ErrNotification) {
		// Saved fine, only the notification failed.
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"order":   viewOf(order),
			"warning": err.Error(),
		})
	}
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order": viewOf(order),
	})
}

// UpdateOrder overwrites the order selected by (year, id). Year and id
// cannot change.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	year, id, err := h.pathRef(c)
	if err != nil {
		return RespondError(c, err)
	}
	req := new(ModifyOrderRequest)
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
	input, err := h.toInput(req.OrderRequest)
	if err != nil {
		return RespondError(c, err)
	}

	order, err := h.Commands.ModifyOrder(c.Context(), year, id, input,
		req.Started, req.Finished, req.Paid, req.PickedUp, req.Pending)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(viewOf(order))
}

// DeleteOrder removes an order and renumbers its year to a dense 1..N.
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	year, id, err := h.pathRef(c)
	if err != nil {
		return RespondError(c, err)
	}
	if err := h.Commands.DeleteOrder(c.Context(), year, id); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}

func (h *OrderHandler) pathRef(c *fiber.Ctx) (year, id int, err error) {
	year, err = strconv.Atoi(c.Params("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad year %q", Models.ErrValidation, c.Params("year"))
	}
	id, err = strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad id %q", Models.ErrValidation, c.Params("id"))
	}
	return year, id, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
