package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/vieduardo/presentes/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		CoupleNames:    "Vitória & Eduardo",
		WeddingDate:    "20/09/2025",
		VenueName:      "Nossoaconchego Eventos",
		VenueAddress:   "Av. Mendanha, 1495 - Centro - Viamão, RS",
		WhatsAppNumber: "5551994495406",
	}
}

func TestReservationLink(t *testing.T) {
	link := ReservationLink(testConfig(), "Jogo de Panelas", "Ana", "51999990000", "Felicidades!")

	if !strings.HasPrefix(link, "https://wa.me/5551994495406?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parsing link: %v", err)
	}
	text := parsed.Query().Get("text")

	for _, want := range []string{
		"Jogo de Panelas",
		"Ana",
		"51999990000",
		"Felicidades!",
		"20/09/2025",
		"Nossoaconchego Eventos",
		"VITÓRIA & EDUARDO",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected message to contain %q, got %q", want, text)
		}
	}
}

func TestReservationLinkOptionalMessage(t *testing.T) {
	link := ReservationLink(testConfig(), "Sofá", "Bruno", "51888880000", "")

	parsed, _ := url.Parse(link)
	text := parsed.Query().Get("text")
	if strings.Contains(text, "Mensagem:") {
		t.Error("message line must be omitted when no message was given")
	}
}

func TestReservationLinkEncoding(t *testing.T) {
	link := ReservationLink(testConfig(), "Sofá", "Ana", "51999990000", "")

	// Spaces must be percent-encoded, not form-encoded.
	if strings.Contains(link, "+") {
		t.Errorf("link must not contain '+': %s", link)
	}
	if _, err := url.Parse(link); err != nil {
		t.Errorf("link must parse as a URL: %v", err)
	}
}
