package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Booking-window rules live here because the
// deployment decides them (weekend policy, duration bounds, lead rule);
// the policy package only evaluates whatever it is handed.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	Timezone  string        // IANA zone the booking window is evaluated in
	TxTimeout time.Duration // upper bound for one booking transaction

	OpenHour     int  // first bookable hour, inclusive
	CloseHour    int  // last bookable hour, exclusive
	WeekdaysOnly bool // reject weekend requests
	MinMinutes   int  // minimum slot length in minutes
	MaxMinutes   int  // maximum slot length in minutes
	MaxStartLag  int  // minutes a start time may lie in the past

	PayerCheck   bool // gate item bookings on the payers table
	VerifiedOnly bool // resolve requesters from verified_students only

	JWTSecret        string        // secret for admin access tokens
	AdminPassHash    string        // bcrypt hash of the admin password
	AccessTTLMin     int           // admin access token TTL in minutes
	CertAPIURL       string        // base URL of the student certification provider
	CertAPIKey       string        // API key for the certification provider
	CertInstitution  string        // institution name sent on verification requests
	VerifyPendingTTL time.Duration // how long a started verification stays valid
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:    must("APP_ENV"),
		Port:   must("APP_PORT"),
		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		Timezone:  envStr("APP_TIMEZONE", "Asia/Seoul"),
		TxTimeout: envDur("TX_TIMEOUT", 10*time.Second),

		OpenHour:     envInt("BOOKING_OPEN_HOUR", 9),
		CloseHour:    envInt("BOOKING_CLOSE_HOUR", 22),
		WeekdaysOnly: envBool("BOOKING_WEEKDAYS_ONLY", true),
		MinMinutes:   envInt("BOOKING_MIN_MINUTES", 30),
		MaxMinutes:   envInt("BOOKING_MAX_MINUTES", 240),
		MaxStartLag:  envInt("BOOKING_MAX_START_LAG", 30),

		PayerCheck:   envBool("PAYER_CHECK_ENABLED", false),
		VerifiedOnly: envBool("VERIFIED_ONLY", false),

		JWTSecret:        must("JWT_SECRET"),
		AdminPassHash:    must("ADMIN_PASSWORD_HASH"),
		AccessTTLMin:     envInt("ACCESS_TOKEN_TTL_MIN", 60),
		CertAPIURL:       envStr("CERT_API_URL", ""),
		CertAPIKey:       os.Getenv("CERT_API_KEY"),
		CertInstitution:  envStr("CERT_INSTITUTION", "중앙대학교"),
		VerifyPendingTTL: envDur("VERIFY_PENDING_TTL", 10*time.Minute),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
