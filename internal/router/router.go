package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/autoparts/catalog/internal/handler"    // import the handlers that implement business logic
	"github.com/autoparts/catalog/internal/middleware" // import middleware for JWT authentication and the permission gate
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler. This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. Token
// issuance lives under /v1/auth and needs no session; /v1/auth/me is
// the one protected member of the group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh, logout).
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Logout does not require JWT authentication: the handler accepts a JSON
	// body containing a `refresh_token` and invalidates that token. With a
	// valid bearer token and no body it revokes every session of the caller.
	g.POST("/logout", a.Logout)

	// /v1/auth/me returns the authenticated caller's own record and is the
	// only member of the group that requires a valid access token.
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// Protected wires the authenticated API surface. Every route group
// below carries the JWT middleware plus a permission-gate middleware
// bound to its resource name; the gate re-reads group membership on
// each request, so capability changes apply immediately. The optional
// rate limiter is applied first when present (nil when Redis is not
// configured).
func Protected(e *echo.Echo, cat *handler.CatalogHandler, users *handler.UserHandler, upload *handler.UploadHandler,
	gate *middleware.Gate, caps middleware.CapabilityLoader, jwtSecret string, rate echo.MiddlewareFunc) {

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	if rate != nil {
		v1.Use(rate)
	}

	// Car model CRUD plus the association workflow. The HTTP method decides
	// which capability the gate demands (GET -> view, POST -> add, ...).
	cm := v1.Group("/car-models", middleware.RequireCapability(gate, caps, middleware.ResourceCarModel))
	cm.POST("", cat.CreateCarModel)
	cm.GET("", cat.ListCarModels)
	cm.GET("/:id", cat.GetCarModel)
	cm.PATCH("/:id", cat.UpdateCarModel)
	cm.PUT("/:id", cat.UpdateCarModel)
	cm.DELETE("/:id", cat.DeleteCarModel)
	// Batch association: evaluated pair by pair, reported per item.
	cm.POST("/associate-parts", cat.AssociateParts)
	// Batch removal of links from one car model.
	cm.PATCH("/:id/remove-parts", cat.RemoveParts)
	// Reverse lookup: all car models linked to one part.
	cm.GET("/part/:id", cat.ListCarModelsByPart)

	// Part CRUD. The forward lookup (parts of one car model) lives here
	// because the returned resource is a part list.
	pt := v1.Group("/parts", middleware.RequireCapability(gate, caps, middleware.ResourcePart))
	pt.POST("", cat.CreatePart)
	pt.GET("", cat.ListParts)
	pt.GET("/:id", cat.GetPart)
	pt.PATCH("/:id", cat.UpdatePart)
	pt.PUT("/:id", cat.UpdatePart)
	pt.DELETE("/:id", cat.DeletePart)
	pt.GET("/car-model/:id", cat.ListPartsByCarModel)

	// User management. The self variant of the gate lets a user read,
	// update and delete their own record without user capabilities.
	us := v1.Group("/users", middleware.RequireCapabilityOrSelf(gate, caps, middleware.ResourceUser, "id"))
	us.GET("/:id", users.GetUser)
	us.PATCH("/:id", users.UpdateUser)
	us.DELETE("/:id", users.DeleteUser)
	// Group assignment is never a self-service operation; it goes through
	// the plain gate so only holders of change_user may call it.
	v1.PATCH("/users/:id/groups", users.AddUserGroups,
		middleware.RequireCapability(gate, caps, middleware.ResourceUser))

	// CSV import upload. Creating parts in bulk demands the same
	// capability as creating one part.
	v1.POST("/upload-csv", upload.UploadCSV,
		middleware.RequireCapability(gate, caps, middleware.ResourcePart))
}
