package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jihokoo/campus-reservation/internal/config"
	"github.com/jihokoo/campus-reservation/internal/model"
	"github.com/jihokoo/campus-reservation/internal/utils"
)

// LogStore reads recent audit entries.
type LogStore interface {
	RecentLogs(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// AdminHandler serves the operator endpoints: login and the audit log
// viewer used when a student disputes a booking.
type AdminHandler struct {
	Cfg  config.Config
	Logs LogStore
}

func NewAdminHandler(cfg config.Config, logs LogStore) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Logs: logs}
}

type adminLoginReq struct {
	Password string `json:"password"`
}

type adminLoginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login verifies the operator password against the configured bcrypt hash
// and issues a short-lived access token.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Password == "" || !utils.VerifyPassword(h.Cfg.AdminPassHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, "admin", h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, adminLoginResp{Token: token.Token, Expires: token.Exp})
}

type logEntryResp struct {
	ReserveCode  string    `json:"reserve_code"`
	ResourceType string    `json:"resource_type"`
	Action       string    `json:"action"`
	Name         string    `json:"name"`
	StudentID    string    `json:"student_id"`
	Phone        string    `json:"phone"`
	ChannelID    string    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecentLogs handles GET /admin/logs?limit=N.  Entries come back newest
// first with the full requester identity; the route sits behind JWT auth.
func (h *AdminHandler) RecentLogs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	entries, err := h.Logs.RecentLogs(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "log lookup failed"})
	}

	out := make([]logEntryResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryResp{
			ReserveCode:  e.ReserveCode,
			ResourceType: e.ResourceType,
			Action:       string(e.Action),
			Name:         e.Name,
			StudentID:    e.StudentID,
			Phone:        e.Phone,
			ChannelID:    e.ChannelID,
			CreatedAt:    e.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": out})
}
