package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// automationSignatures lists User-Agent fragments of common automation
// tooling.  Matching requests never reach business logic; the chat
// platform's own agent does not match any of these.
var automationSignatures = []string{
	"curl",
	"wget",
	"python-requests",
	"python-urllib",
	"scrapy",
	"go-http-client",
	"java/",
	"okhttp",
	"headlesschrome",
	"phantomjs",
	"selenium",
	"httpie",
	"postmanruntime",
}

// BotFilter rejects requests carrying a known automation-tool User-Agent
// with a generic forbidden response, before any business logic runs.  An
// empty User-Agent is rejected too.
func BotFilter() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ua := strings.ToLower(c.Request().UserAgent())
			if ua == "" {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			for _, sig := range automationSignatures {
				if strings.Contains(ua, sig) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
				}
			}
			return next(c)
		}
	}
}
