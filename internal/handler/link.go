package handler // handler package contains the association workflow endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/autoparts/catalog/internal/repository"
)

// AssociateParts handles POST /v1/car-models/associate-parts. The body
// carries two id lists; every (car model, part) pair of the cross
// product is evaluated independently by the link resolver. The response
// reports partial progress rather than failing the whole batch: 200
// whenever at least one car model resolved, 404 with the unmatched ids
// when none did.
func (h *CatalogHandler) AssociateParts(c echo.Context) error {
	var body struct {
		CarModelIDs []string `json:"car_model_ids"`
		PartIDs     []string `json:"part_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	report, err := h.Links.Associate(c.Request().Context(), body.CarModelIDs, body.PartIDs)
	if err != nil {
		return serviceError(c, err)
	}

	if !report.Resolved() {
		resp := echo.Map{"error": "no car models or parts found to associate"}
		if len(report.NotFoundCarModels) > 0 {
			resp["not_found_car_models"] = report.NotFoundCarModels
		}
		return c.JSON(http.StatusNotFound, resp)
	}
	resp := echo.Map{
		"message":          "parts associated successfully",
		"associated_parts": report.Associated,
	}
	if len(report.NotFoundParts) > 0 {
		resp["not_found_parts"] = report.NotFoundParts
	}
	if len(report.NotFoundCarModels) > 0 {
		resp["not_found_car_models"] = report.NotFoundCarModels
	}
	return c.JSON(http.StatusOK, resp)
}

// RemoveParts handles PATCH /v1/car-models/:id/remove-parts. Each part
// id in the body is classified as removed (the link existed and was
// deleted) or invalid (malformed, unknown, or not linked). Removal is
// non-fatal by design: an empty or fully-invalid list is still a 200.
func (h *CatalogHandler) RemoveParts(c echo.Context) error {
	carModelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		PartIDs []string `json:"part_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return fieldErrors(c, http.StatusBadRequest, map[string]string{"part_ids": "must be a list"})
	}

	ctx := c.Request().Context()
	if _, err := h.CarModels.GetByID(ctx, carModelID); err != nil {
		if errors.Is(err, repository.ErrCarModelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car model not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	report, err := h.Links.Disassociate(ctx, carModelID, body.PartIDs)
	if err != nil {
		return serviceError(c, err)
	}

	if len(report.Removed) == 0 && len(report.Invalid) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"detail": "no parts were removed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"detail":           fmt.Sprintf("%d parts removed", len(report.Removed)),
		"removed_part_ids": report.Removed,
		"invalid_part_ids": report.Invalid,
	})
}
