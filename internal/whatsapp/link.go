// Package whatsapp builds the outbound confirmation deep link. The link is
// constructed and handed to the guest's browser; the service never calls the
// messaging API itself.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vieduardo/presentes/internal/config"
)

// ReservationLink builds the wa.me URL a guest is sent to after reserving a
// gift, pre-filled with the templated confirmation message.
func ReservationLink(cfg *config.Config, giftName, guestName, phone, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🤵👰 *CASAMENTO %s* 💍\n\n", strings.ToUpper(cfg.CoupleNames))
	fmt.Fprintf(&b, "Olá! Eu gostaria de reservar o presente: *%s*\n\n", giftName)
	fmt.Fprintf(&b, "👤 Nome: %s\n", guestName)
	fmt.Fprintf(&b, "📱 Telefone: %s\n", phone)
	if message != "" {
		fmt.Fprintf(&b, "💌 Mensagem: %s\n\n", message)
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "📅 Data do Casamento: %s\n", cfg.WeddingDate)
	fmt.Fprintf(&b, "📍 Local: %s - %s\n\n", cfg.VenueName, cfg.VenueAddress)
	b.WriteString("Enviado através da lista de presentes online.")

	// Percent-encode rather than form-encode: wa.me does not decode '+'
	// back to a space on every client.
	text := strings.ReplaceAll(url.QueryEscape(b.String()), "+", "%20")
	return "https://wa.me/" + cfg.WhatsAppNumber + "?text=" + text
}
