package handler // handler package contains car model CRUD handlers

import (
	"errors"   // errors is imported for sentinel comparisons
	"net/http" // http provides status code constants
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/autoparts/catalog/internal/model"
	"github.com/autoparts/catalog/internal/repository"
)

// CreateCarModel handles POST /v1/car-models and creates a new car model
func (h *CatalogHandler) CreateCarModel(c echo.Context) error {
	var body struct { // anonymous struct to bind incoming JSON
		Name         string `json:"name"`
		Manufacturer string `json:"manufacturer"`
		Year         int    `json:"year"`
	}
	if err := c.Bind(&body); err != nil { // attempt to bind the request body
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	fields := map[string]string{}
	body.Name = strings.TrimSpace(body.Name)
	body.Manufacturer = strings.TrimSpace(body.Manufacturer)
	if body.Name == "" {
		fields["name"] = "field is required"
	}
	if body.Manufacturer == "" {
		fields["manufacturer"] = "field is required"
	}
	if body.Year <= 0 {
		fields["year"] = "must be a positive integer"
	}
	if len(fields) > 0 {
		return fieldErrors(c, http.StatusUnprocessableEntity, fields)
	}
	m := &model.CarModel{
		Name:         body.Name,
		Manufacturer: body.Manufacturer,
		Year:         body.Year,
	}
	if err := h.CarModels.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create car model"})
	}
	return c.JSON(http.StatusCreated, carModelTransport(m, nil))
}

// ListCarModels handles GET /v1/car-models and returns one page of car models
func (h *CatalogHandler) ListCarModels(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.CarModels.List(ctx, pageParam(c), defaultPageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	resp := make([]carModelResp, 0, len(items))
	for i := range items {
		partIDs, err := h.CarModels.PartIDs(ctx, items[i].ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		resp = append(resp, carModelTransport(&items[i], partIDs))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": resp, "page": pageParam(c)})
}

// GetCarModel handles GET /v1/car-models/:id
func (h *CatalogHandler) GetCarModel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	m, err := h.CarModels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCarModelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car model not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	partIDs, err := h.CarModels.PartIDs(ctx, m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, carModelTransport(m, partIDs))
}

// UpdateCarModel handles PATCH/PUT /v1/car-models/:id. Absent fields
// keep their current value, so PATCH with a single field works the
// same as a full PUT.
func (h *CatalogHandler) UpdateCarModel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct { // pointer fields distinguish "absent" from "empty"
		Name         *string `json:"name"`
		Manufacturer *string `json:"manufacturer"`
		Year         *int    `json:"year"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	m, err := h.CarModels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCarModelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car model not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	fields := map[string]string{}
	if body.Name != nil {
		m.Name = strings.TrimSpace(*body.Name)
		if m.Name == "" {
			fields["name"] = "must not be empty"
		}
	}
	if body.Manufacturer != nil {
		m.Manufacturer = strings.TrimSpace(*body.Manufacturer)
		if m.Manufacturer == "" {
			fields["manufacturer"] = "must not be empty"
		}
	}
	if body.Year != nil {
		if *body.Year <= 0 {
			fields["year"] = "must be a positive integer"
		}
		m.Year = *body.Year
	}
	if len(fields) > 0 {
		return fieldErrors(c, http.StatusUnprocessableEntity, fields)
	}
	if err := h.CarModels.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrCarModelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car model not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	partIDs, err := h.CarModels.PartIDs(ctx, m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, carModelTransport(m, partIDs))
}

// DeleteCarModel handles DELETE /v1/car-models/:id. Deletion is a soft
// delete: the row is tombstoned and drops out of reads and link
// eligibility, but is never physically erased.
func (h *CatalogHandler) DeleteCarModel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.CarModels.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCarModelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car model not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCarModelsByPart handles GET /v1/car-models/part/:id and returns
// the car models linked to one part.
func (h *CatalogHandler) ListCarModelsByPart(c echo.Context) error {
	partID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Parts.GetByID(ctx, partID); err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.CarModels.ListByPart(ctx, partID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	resp := make([]carModelResp, 0, len(items))
	for i := range items {
		partIDs, err := h.CarModels.PartIDs(ctx, items[i].ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		resp = append(resp, carModelTransport(&items[i], partIDs))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": resp})
}
