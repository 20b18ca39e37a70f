package middleware // middleware provides shared request processing for handlers

import (
	"context"  // context propagates request deadlines to the capability loader
	"net/http" // http package defines standard HTTP status codes

	"github.com/google/uuid"      // uuid identifies the principal
	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// Resource kinds known to the permission gate. These are logical names,
// not URL fragments; the same gate serves every route touching the kind.
const (
	ResourceCarModel = "car_model"
	ResourcePart     = "part"
	ResourceUser     = "user"
)

// deniedReason is the fixed message returned whenever a principal lacks
// the required capability.
const deniedReason = "you do not have permission to perform this action"

// CapabilityLoader resolves the capability set of a principal. It is
// consulted on every gated request so that group changes take effect
// immediately; implementations must not cache across requests.
// Implemented by repository.PermissionRepo.
type CapabilityLoader interface {
	CapabilitiesForUser(ctx context.Context, userID uuid.UUID) (map[string]bool, error)
}

// Gate maps (HTTP method, resource kind) to the capability required to
// perform it. Methods with no mapping are implicitly allowed — the
// DefaultAllow policy. That fail-open default is deliberate and kept as
// an explicit, named policy rather than an accidental gap; deployments
// that want fail-closed must map every method they expose.
type Gate struct {
	rules map[string]map[string]string // resource -> method -> capability
}

// NewGate returns the gate with the application's standard capability
// mapping: every read requires view_<kind>, writes require the
// corresponding add/change/delete capability.
func NewGate() *Gate {
	return &Gate{rules: map[string]map[string]string{
		ResourceCarModel: {
			http.MethodGet:    "view_car_model",
			http.MethodPost:   "add_car_model",
			http.MethodPatch:  "change_car_model",
			http.MethodPut:    "change_car_model",
			http.MethodDelete: "delete_car_model",
		},
		ResourcePart: {
			http.MethodGet:    "view_part",
			http.MethodPost:   "add_part",
			http.MethodPatch:  "change_part",
			http.MethodPut:    "change_part",
			http.MethodDelete: "delete_part",
		},
		ResourceUser: {
			http.MethodGet:    "view_user",
			http.MethodPatch:  "change_user",
			http.MethodPut:    "change_user",
			http.MethodDelete: "delete_user",
		},
	}}
}

// Authorize checks whether a principal holding the given capabilities
// may perform method on resource. It returns true when the gate has no
// mapping for the method (DefaultAllow) or when the mapped capability
// is held; otherwise false together with the fixed denial reason.
func (g *Gate) Authorize(method, resource string, caps map[string]bool) (bool, string) {
	methods, ok := g.rules[resource]
	if !ok {
		return true, "" // unknown resource kind: DefaultAllow
	}
	required, ok := methods[method]
	if !ok {
		return true, "" // no capability mapped for this method: DefaultAllow
	}
	if caps[required] {
		return true, ""
	}
	return false, deniedReason
}

// RequireCapability returns a middleware enforcing the gate for one
// resource kind. It must run after JWTAuth: the principal id is taken
// from the context, the capability set is loaded fresh from the store,
// and the gate decides. A missing capability yields 403 with the fixed
// reason; loader failures yield 500.
func RequireCapability(gate *Gate, loader CapabilityLoader, resource string) echo.MiddlewareFunc {
	return requireCapability(gate, loader, resource, "")
}

// RequireCapabilityOrSelf behaves like RequireCapability but also
// admits a request whose path parameter idParam equals the principal's
// own id. Users may always read, change or delete their own record
// regardless of group grants.
func RequireCapabilityOrSelf(gate *Gate, loader CapabilityLoader, resource, idParam string) echo.MiddlewareFunc {
	return requireCapability(gate, loader, resource, idParam)
}

func requireCapability(gate *Gate, loader CapabilityLoader, resource, selfParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := PrincipalID(c)
			if !ok {
				// JWTAuth did not run or did not authenticate; treat as
				// an authentication failure, not a permission failure.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if selfParam != "" {
				if pathID, err := uuid.Parse(c.Param(selfParam)); err == nil && pathID == userID {
					return next(c)
				}
			}
			caps, err := loader.CapabilitiesForUser(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load permissions"})
			}
			if allowed, reason := gate.Authorize(c.Request().Method, resource, caps); !allowed {
				return c.JSON(http.StatusForbidden, echo.Map{"error": reason})
			}
			return next(c)
		}
	}
}
