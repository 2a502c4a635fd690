package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port          string
	DBDriver      string
	DBURL         string
	DBLogLevel    string
	CORSOrigins   []string
	SlowRequestMs int
	SeedDev       bool

	OverdueCron      string
	AMCReminderCron  string
	AMCReminderDays  int
	DefaultCountryCC string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string
}

// CountryCode is prefixed to phone numbers stored without one. Load sets it
// from DEFAULT_COUNTRY_CODE.
var CountryCode = "+91"

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %d", k, v, def)
		return def
	}
	return n
}

// Load reads .env (if present) and builds the Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DBURL:         os.Getenv("DB_URL"),
		DBLogLevel:    strings.ToLower(getenv("DB_LOG_LEVEL", "warn")),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		SlowRequestMs: getenvInt("SLOW_REQUEST_MS", 200),
		SeedDev:       os.Getenv("SEED_DEV") == "1",

		OverdueCron:      getenv("CRON_OVERDUE", "0 1 * * *"),
		AMCReminderCron:  getenv("CRON_AMC_REMINDERS", "0 9 * * *"),
		AMCReminderDays:  getenvInt("AMC_REMINDER_DAYS", 7),
		DefaultCountryCC: getenv("DEFAULT_COUNTRY_CODE", "+91"),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
	CountryCode = cfg.DefaultCountryCC
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
