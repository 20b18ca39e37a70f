package handler // handler package contains user management handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/autoparts/catalog/internal/config"
	"github.com/autoparts/catalog/internal/repository"
	"github.com/autoparts/catalog/internal/utils"
)

// UserHandler bundles the dependencies for user endpoints. Group
// membership changes go through the permission repository so the gate
// picks them up on the very next request.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Perms  *repository.PermissionRepo
	Tokens *repository.TokenRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, p *repository.PermissionRepo, t *repository.TokenRepo) *UserHandler {
	if u == nil || p == nil || t == nil {
		panic("nil dependency passed to NewUserHandler")
	}
	return &UserHandler{Cfg: cfg, Users: u, Perms: p, Tokens: t}
}

// GetUser handles GET /v1/users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, userTransport(u))
}

// UpdateUser handles PATCH /v1/users/:id with merge semantics. A
// password change must carry a matching confirmation.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Username        *string `json:"username"`
		Email           *string `json:"email"`
		Password        *string `json:"password"`
		ConfirmPassword *string `json:"confirm_password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	fields := map[string]string{}
	if body.Username != nil {
		u.Username = strings.TrimSpace(*body.Username)
		if u.Username == "" {
			fields["username"] = "must not be empty"
		}
	}
	if body.Email != nil {
		u.Email = repository.NormalizeEmail(*body.Email)
		if u.Email == "" || !strings.Contains(u.Email, "@") {
			fields["email"] = "must be a valid email address"
		}
	}
	if body.Password != nil {
		if body.ConfirmPassword == nil {
			return fieldErrors(c, http.StatusBadRequest, map[string]string{"confirm_password": "field is required"})
		}
		if *body.Password != *body.ConfirmPassword {
			fields["password"] = "passwords must match"
		} else if len(*body.Password) < 8 {
			fields["password"] = "must be at least 8 characters"
		}
	}
	if len(fields) > 0 {
		return fieldErrors(c, http.StatusUnprocessableEntity, fields)
	}

	if err := h.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if body.Password != nil {
		hash, err := utils.HashPassword(*body.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		// Old sessions stop working after a password change.
		_ = h.Tokens.RevokeAllForUser(ctx, u.ID)
	}
	return c.JSON(http.StatusOK, userTransport(u))
}

// DeleteUser handles DELETE /v1/users/:id: tombstone the account,
// deactivate it, and revoke its refresh tokens.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, id)
	return c.NoContent(http.StatusNoContent)
}

// AddUserGroups handles PATCH /v1/users/:id/groups. Each group id in
// the body is classified independently: linked when the group exists
// and the user was not yet a member, invalid otherwise (malformed id,
// unknown group, or already a member). Partial progress is a 200.
func (h *UserHandler) AddUserGroups(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		GroupIDs []string `json:"group_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return fieldErrors(c, http.StatusBadRequest, map[string]string{"group_ids": "must be a list"})
	}
	if len(body.GroupIDs) == 0 {
		return fieldErrors(c, http.StatusBadRequest, map[string]string{"group_ids": "must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	added := []string{}
	invalid := []string{}
	for _, raw := range body.GroupIDs {
		gid, err := uuid.Parse(raw)
		if err != nil {
			invalid = append(invalid, raw)
			continue
		}
		exists, err := h.Perms.GroupExists(ctx, gid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if !exists {
			invalid = append(invalid, raw)
			continue
		}
		member, err := h.Perms.UserInGroup(ctx, id, gid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if member {
			invalid = append(invalid, raw)
			continue
		}
		if err := h.Perms.AddUserToGroup(ctx, id, gid); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		added = append(added, raw)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"detail":            fmt.Sprintf("%d groups linked", len(added)),
		"added_group_ids":   added,
		"invalid_group_ids": invalid,
	})
}
