package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Gift represents one entry on the registry.
type Gift struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	ImageURL        string     `json:"imageurl"`
	Category        string     `json:"category"`
	Reserved        bool       `json:"reserved"`
	ReservedBy      string     `json:"reserved_by,omitempty"`
	ReservedContact string     `json:"reserved_contact,omitempty"`
	ReservedMessage string     `json:"reserved_message,omitempty"`
	ReservedAt      *time.Time `json:"reserved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Categories.
const (
	CategoryCozinha    = "cozinha"
	CategorySala       = "sala"
	CategoryQuarto     = "quarto"
	CategoryBanheiro   = "banheiro"
	CategoryLavanderia = "lavanderia"
	CategoryDiversos   = "diversos"
)

// Categories lists the fixed category set in display order.
var Categories = []string{
	CategoryCozinha,
	CategorySala,
	CategoryQuarto,
	CategoryBanheiro,
	CategoryLavanderia,
	CategoryDiversos,
}

// NormalizeCategory resolves a raw category value to a member of the fixed
// set. Absent or unknown values map to "diversos".
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, known := range Categories {
		if category == known {
			return category
		}
	}
	return CategoryDiversos
}

// Image kinds, classified by inspecting the imageurl value itself.
// There is no stored type tag.
const (
	ImageKindEmoji = "emoji"
	ImageKindData  = "data"
	ImageKindURL   = "url"
)

// ImageKind classifies an imageurl value: an inline data URI, an emoji-class
// short string, or an image URL.
func ImageKind(imageurl string) string {
	if strings.HasPrefix(imageurl, "data:image") {
		return ImageKindData
	}
	if IsEmoji(imageurl) {
		return ImageKindEmoji
	}
	return ImageKindURL
}

// IsEmoji reports whether the value is an emoji-class short string rather
// than an image reference (at most five runes, at least one outside the
// ASCII and Latin ranges).
func IsEmoji(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > 5 {
		return false
	}
	for _, r := range s {
		if r > 0x2100 {
			return true
		}
	}
	return false
}

// HasReservation reports whether all reservation metadata fields are set.
// The fields are populated together on reserve and cleared together on
// unreserve; a partial state indicates a bug.
func (g Gift) HasReservation() bool {
	return g.Reserved && g.ReservedBy != "" && g.ReservedContact != "" && g.ReservedAt != nil
}
