// Package config holds the event details rendered on the invitation and
// baked into the reservation confirmation message. Nothing here is secret;
// credentials live in the database, never in configuration or code.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the application configuration.
type Config struct {
	CoupleNames    string
	WeddingDate    string    // display form, dd/mm/aaaa
	WeddingInstant time.Time // countdown target
	VenueName      string
	VenueAddress   string
	WhatsAppNumber string // international format, digits only
	ContactEmail   string
}

// defaultWeddingInstant is the event start used when WEDDING_INSTANT is
// absent or malformed.
var defaultWeddingInstant = time.Date(2025, time.September, 20, 17, 0, 0, 0,
	time.FixedZone("-03", -3*60*60))

// Load reads configuration from environment variables, honoring a .env file
// when one is present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		CoupleNames:    getEnv("COUPLE_NAMES", "Vitória & Eduardo"),
		WeddingDate:    getEnv("WEDDING_DATE", "20/09/2025"),
		WeddingInstant: defaultWeddingInstant,
		VenueName:      getEnv("VENUE_NAME", "Nossoaconchego Eventos"),
		VenueAddress:   getEnv("VENUE_ADDRESS", "Av. Mendanha, 1495 - Centro - Viamão, RS"),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "5551994495406"),
		ContactEmail:   getEnv("CONTACT_EMAIL", "vitoriaeeduardo@email.com"),
	}

	if raw := os.Getenv("WEDDING_INSTANT"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			cfg.WeddingInstant = t
		}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
