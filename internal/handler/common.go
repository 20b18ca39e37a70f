package handler // handler defines http handlers

import (
	"net/http" // status codes for error helpers
	"strconv"  // strconv parses pagination parameters
	"time"     // time formats transport timestamps

	"github.com/google/uuid"      // uuid parses path identifiers
	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/autoparts/catalog/internal/model"
	"github.com/autoparts/catalog/internal/repository"
	"github.com/autoparts/catalog/internal/service"
	"github.com/autoparts/catalog/internal/utils"
)

// defaultPageSize matches the catalog's fixed pagination size for list
// endpoints.
const defaultPageSize = 10

// CatalogHandler bundles the dependencies for car model and part
// endpoints, including the link resolver that runs the association
// workflow. Everything is passed in at construction; there are no
// package-level service singletons.
type CatalogHandler struct {
	CarModels *repository.CarModelRepo // car model persistence
	Parts     *repository.PartRepo     // part persistence
	Links     *service.LinkResolver    // association/removal workflow
}

// NewCatalogHandler constructs a CatalogHandler and panics if any
// dependency is nil.
func NewCatalogHandler(carModels *repository.CarModelRepo, parts *repository.PartRepo, links *service.LinkResolver) *CatalogHandler {
	if carModels == nil || parts == nil || links == nil {
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{CarModels: carModels, Parts: parts, Links: links}
}

// pathID parses the named path parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// pageParam reads the 1-based ?page= query parameter, defaulting to 1.
func pageParam(c echo.Context) int {
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		return n
	}
	return 1
}

// fieldErrors writes a field-level validation error map in the shape
// {"errors": {field: message}}.
func fieldErrors(c echo.Context, status int, fields map[string]string) error {
	return c.JSON(status, echo.Map{"errors": fields})
}

// serviceError translates link resolver failures: payload problems
// become a 400 with the field map, anything else is a store failure.
func serviceError(c echo.Context, err error) error {
	if verr, ok := err.(*service.ValidationError); ok {
		return fieldErrors(c, http.StatusBadRequest, verr.Fields)
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}

// ----- transports -----
//
// Each resource has an explicit response mapping resolved at compile
// time; nothing is serialized through reflection over model structs.

type carModelResp struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Year         int      `json:"year"`
	PartIDs      []string `json:"part_ids"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func carModelTransport(m *model.CarModel, partIDs []uuid.UUID) carModelResp {
	ids := make([]string, 0, len(partIDs))
	for _, id := range partIDs {
		ids = append(ids, id.String())
	}
	return carModelResp{
		ID:           m.ID.String(),
		Name:         m.Name,
		Manufacturer: m.Manufacturer,
		Year:         m.Year,
		PartIDs:      ids,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type partResp struct {
	ID         string `json:"id"`
	PartNumber string `json:"part_number"`
	Name       string `json:"name"`
	Details    string `json:"details"`
	Price      string `json:"price"` // fixed-point, two fractional digits
	Quantity   uint32 `json:"quantity"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func partTransport(p *model.Part) partResp {
	return partResp{
		ID:         p.ID.String(),
		PartNumber: p.PartNumber,
		Name:       p.Name,
		Details:    p.Details,
		Price:      utils.FormatCents(p.PriceCents),
		Quantity:   p.Quantity,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type userResp struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func userTransport(u *model.User) userResp {
	return userResp{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}
