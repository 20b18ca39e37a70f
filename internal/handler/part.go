package handler // handler package contains part CRUD handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/autoparts/catalog/internal/model"
	"github.com/autoparts/catalog/internal/repository"
	"github.com/autoparts/catalog/internal/utils"
)

// CreatePart handles POST /v1/parts and creates a new part
func (h *CatalogHandler) CreatePart(c echo.Context) error {
	var body struct {
		PartNumber string `json:"part_number"`
		Name       string `json:"name"`
		Details    string `json:"details"`
		Price      string `json:"price"`    // decimal string, e.g. "199.90"
		Quantity   *int64 `json:"quantity"` // pointer so that absent != 0
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	fields := map[string]string{}
	body.PartNumber = strings.TrimSpace(body.PartNumber)
	body.Name = strings.TrimSpace(body.Name)
	if body.PartNumber == "" {
		fields["part_number"] = "field is required"
	}
	if body.Name == "" {
		fields["name"] = "field is required"
	}
	priceCents, err := utils.ParseCents(body.Price)
	if err != nil {
		fields["price"] = "must be a decimal with at most two fractional digits"
	}
	if body.Quantity == nil || *body.Quantity < 0 {
		fields["quantity"] = "must be a non-negative integer"
	}
	if len(fields) > 0 {
		return fieldErrors(c, http.StatusUnprocessableEntity, fields)
	}
	p := &model.Part{
		PartNumber: body.PartNumber,
		Name:       body.Name,
		Details:    strings.TrimSpace(body.Details),
		PriceCents: priceCents,
		Quantity:   uint32(*body.Quantity),
	}
	if err := h.Parts.Create(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create part"})
	}
	return c.JSON(http.StatusCreated, partTransport(p))
}

// ListParts handles GET /v1/parts and returns one page of parts
func (h *CatalogHandler) ListParts(c echo.Context) error {
	items, err := h.Parts.List(c.Request().Context(), pageParam(c), defaultPageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	resp := make([]partResp, 0, len(items))
	for i := range items {
		resp = append(resp, partTransport(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": resp, "page": pageParam(c)})
}

// GetPart handles GET /v1/parts/:id
func (h *CatalogHandler) GetPart(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Parts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, partTransport(p))
}

// UpdatePart handles PATCH/PUT /v1/parts/:id with merge semantics:
// absent fields keep their current value.
func (h *CatalogHandler) UpdatePart(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		PartNumber *string `json:"part_number"`
		Name       *string `json:"name"`
		Details    *string `json:"details"`
		Price      *string `json:"price"`
		Quantity   *int64  `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	p, err := h.Parts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	fields := map[string]string{}
	if body.PartNumber != nil {
		p.PartNumber = strings.TrimSpace(*body.PartNumber)
		if p.PartNumber == "" {
			fields["part_number"] = "must not be empty"
		}
	}
	if body.Name != nil {
		p.Name = strings.TrimSpace(*body.Name)
		if p.Name == "" {
			fields["name"] = "must not be empty"
		}
	}
	if body.Details != nil {
		p.Details = strings.TrimSpace(*body.Details)
	}
	if body.Price != nil {
		cents, err := utils.ParseCents(*body.Price)
		if err != nil {
			fields["price"] = "must be a decimal with at most two fractional digits"
		} else {
			p.PriceCents = cents
		}
	}
	if body.Quantity != nil {
		if *body.Quantity < 0 {
			fields["quantity"] = "must be a non-negative integer"
		} else {
			p.Quantity = uint32(*body.Quantity)
		}
	}
	if len(fields) > 0 {
		return fieldErrors(c, http.StatusUnprocessableEntity, fields)
	}
	if err := h.Parts.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, partTransport(p))
}

// DeletePart handles DELETE /v1/parts/:id (soft delete).
func (h *CatalogHandler) DeletePart(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Parts.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPartsByCarModel handles GET /v1/parts/car-model/:id and returns
// the parts linked to one car model.
func (h *CatalogHandler) ListPartsByCarModel(c echo.Context) error {
	carModelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.CarModels.GetByID(ctx, carModelID); err != nil {
		if errors.Is(err, repository.ErrCarModelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car model not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Parts.ListByCarModel(ctx, carModelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	resp := make([]partResp, 0, len(items))
	for i := range items {
		resp = append(resp, partTransport(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": resp})
}
