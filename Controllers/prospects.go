package Controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Imperyo/AbstractFunctions"
	"Imperyo/Models"
	"Imperyo/Store"
)

// ProspectHandler serves the prospect CRM screen. Unlike orders and
// expenses, prospects are written with single-document store operations.
type ProspectHandler struct {
	State    *Models.AppState
	Gateway  *Store.Gateway
	Validate *validator.Validate
}

// NewProspectHandler creates a prospect handler.
func NewProspectHandler(state *Models.AppState, gateway *Store.Gateway) *ProspectHandler {
	return &ProspectHandler{
		State:    state,
		Gateway:  gateway,
		Validate: validator.New(),
	}
}

// ProspectRequest is the add/update prospect form.
type ProspectRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Club     string `json:"club"`
	Interest string `json:"interest" validate:"required,oneof=cycling trail both"`
	Status   string `json:"status" validate:"required,oneof=new contacted thinking negotiating lost closed"`
	Notes    string `json:"notes"`
}

// GetProspects lists every prospect.
func (h *ProspectHandler) GetProspects(c *fiber.Ctx) error {
	return c.JSON(h.State.Prospects)
}

// CreateProspect adds a new prospect document.
func (h *ProspectHandler) CreateProspect(c *fiber.Ctx) error {
	req := new(ProspectRequest)
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

	now := time.Now()
	prospect := Models.Prospect{
		Name:      req.Name,
		Phone:     AbstractFunctions.NormalizePhone(req.Phone),
		Club:      req.Club,
		Interest:  req.Interest,
		Status:    req.Status,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	docID, err := h.Gateway.AddProspect(c.Context(), prospect)
	if err != nil {
		return RespondError(c, err)
	}
	prospect.StoreDocID = docID
	h.State.Prospects = append(h.State.Prospects, prospect)
	return c.Status(fiber.StatusCreated).JSON(prospect)
}

// UpdateProspect overwrites the prospect's editable fields.
func (h *ProspectHandler) UpdateProspect(c *fiber.Ctx) error {
	docID := c.Params("docId")
	i := h.findProspect(docID)
	if i < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prospect not found",
		})
	}
	req := new(ProspectRequest)
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

	prospect := &h.State.Prospects[i]
	prospect.Name = req.Name
	prospect.Phone = AbstractFunctions.NormalizePhone(req.Phone)
	prospect.Club = req.Club
	prospect.Interest = req.Interest
	prospect.Status = req.Status
	prospect.Notes = req.Notes
	prospect.UpdatedAt = time.Now()

	if err := h.Gateway.UpdateProspect(c.Context(), docID, *prospect); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(*prospect)
}

// DeleteProspect removes a prospect document.
func (h *ProspectHandler) DeleteProspect(c *fiber.Ctx) error {
	docID := c.Params("docId")
	i := h.findProspect(docID)
	if i < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prospect not found",
		})
	}
	if err := h.Gateway.DeleteDoc(c.Context(), Store.CollectionProspects, docID); err != nil {
		return RespondError(c, err)
	}
	h.State.Prospects = append(h.State.Prospects[:i], h.State.Prospects[i+1:]...)
	return c.JSON(fiber.Map{
		"message": "Prospect deleted successfully",
	})
}

func (h *ProspectHandler) findProspect(docID string) int {
	for i, p := range h.State.Prospects {
		if p.StoreDocID == docID {
			return i
		}
	}
	return -1
}
