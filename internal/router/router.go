// Package router defines how HTTP routes are registered for the service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/jihokoo/campus-reservation/internal/config"
	"github.com/jihokoo/campus-reservation/internal/handler"
	"github.com/jihokoo/campus-reservation/internal/middleware"
)

// RegisterRoutes registers routes that carry no middleware: the health
// check and the hosting wake-up ping.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.HEAD("/reserve/wakeup", handler.Wakeup)
}

// RegisterReserve registers the chatbot webhook surface under /reserve.
// The whole group sits behind the automation filter and the Redis token
// bucket: the endpoints are unauthenticated by design (the chat platform
// cannot attach credentials), so abuse control happens here.
func RegisterReserve(e *echo.Echo, h *handler.ReserveHandler, ck *handler.CheckHandler,
	rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/reserve")
	g.Use(middleware.BotFilter())
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))

	g.POST("/:resource", h.Reserve)
	g.POST("/cancel", h.Cancel)

	g.POST("/check/start_time", ck.StartTime)
	g.POST("/check/client_info", ck.ClientInfo)
	g.POST("/check/reserve_code", ck.ReserveCode)
}

// RegisterBoards registers the public availability boards.  Board content
// only changes when a booking commits, so responses are served through the
// short-TTL Redis cache.
func RegisterBoards(e *echo.Echo, b *handler.BoardHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/boards")
	g.Use(middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/:category", b.Board)
}

// RegisterVerify registers the student verification endpoints.
func RegisterVerify(e *echo.Echo, v *handler.VerifyHandler) {
	g := e.Group("/verify")
	g.Use(middleware.BotFilter())
	g.POST("/email", v.Email)
	g.POST("/code", v.Code)
}

// RegisterAdmin registers the operator endpoints.  Login is open; the log
// viewer requires a valid access token.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	e.POST("/admin/login", a.Login)

	g := e.Group("/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("/logs", a.RecentLogs)
}
