package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Wakeup answers HEAD /reserve/wakeup with an empty 200.  The free hosting
// tier idles the process; the chat platform pings this before the user
// reaches a booking block so the first real request does not time out.
func Wakeup(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
