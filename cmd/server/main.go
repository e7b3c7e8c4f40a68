package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jihokoo/campus-reservation/internal/booking"
	"github.com/jihokoo/campus-reservation/internal/config"
	"github.com/jihokoo/campus-reservation/internal/database"
	"github.com/jihokoo/campus-reservation/internal/handler"
	"github.com/jihokoo/campus-reservation/internal/policy"
	"github.com/jihokoo/campus-reservation/internal/queue"
	"github.com/jihokoo/campus-reservation/internal/repository"
	"github.com/jihokoo/campus-reservation/internal/router"
	"github.com/jihokoo/campus-reservation/internal/verify"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Env == "dev" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.Timezone)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	pol := policy.Config{
		Location:     loc,
		OpenHour:     cfg.OpenHour,
		CloseHour:    cfg.CloseHour,
		WeekdaysOnly: cfg.WeekdaysOnly,
		MinMinutes:   cfg.MinMinutes,
		MaxMinutes:   cfg.MaxMinutes,
		MaxStartLag:  cfg.MaxStartLag,
	}

	store := repository.NewStore(db)
	svc := booking.NewService(store, booking.Options{
		Policy:       pol,
		PayerCheck:   cfg.PayerCheck,
		VerifiedOnly: cfg.VerifiedOnly,
		TxTimeout:    cfg.TxTimeout,
	}, logger)

	verifySvc := verify.NewService(store, rdb, verify.Options{
		APIURL:      cfg.CertAPIURL,
		APIKey:      cfg.CertAPIKey,
		Institution: cfg.CertInstitution,
		EmailDomain: "@cau.ac.kr",
		PendingTTL:  cfg.VerifyPendingTTL,
	}, logger)

	reserveH := handler.NewReserveHandler(svc, cfg.VerifiedOnly, logger)
	checkH := handler.NewCheckHandler(pol, store)
	boardH := handler.NewBoardHandler(store, loc)
	verifyH := handler.NewVerifyHandler(verifySvc, logger)
	adminH := handler.NewAdminHandler(cfg, store)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterReserve(e, reserveH, checkH, config.LoadRateLimitConfig(), rdb)
	router.RegisterBoards(e, boardH, config.LoadCacheConfig(), rdb)
	router.RegisterVerify(e, verifyH)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background consumer appends committed reservation events to the
	// local log file. It reconnects on its own; startup does not wait.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			logger.Error().Err(err).Msg("reservation consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
