package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health responds with a static payload; load balancers probe it to
// decide whether the instance should receive traffic.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
