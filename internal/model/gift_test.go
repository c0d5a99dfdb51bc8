package model

import (
	"testing"
	"time"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cozinha", CategoryCozinha},
		{" Sala ", CategorySala},
		{"QUARTO", CategoryQuarto},
		{"", CategoryDiversos},
		{"garagem", CategoryDiversos},
		{"diversos", CategoryDiversos},
	}
	for _, c := range cases {
		if got := NormalizeCategory(c.in); got != c.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestImageKind(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"🍳", ImageKindEmoji},
		{"🛋️", ImageKindEmoji},
		{"data:image/png;base64,iVBORw0KGgo=", ImageKindData},
		{"https://example.com/sofa.jpg", ImageKindURL},
		{"/images/gift-1.jpg", ImageKindURL},
	}
	for _, c := range cases {
		if got := ImageKind(c.in); got != c.want {
			t.Errorf("ImageKind(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsEmoji(t *testing.T) {
	if IsEmoji("https://example.com/a.png") {
		t.Error("URL should not classify as emoji")
	}
	if IsEmoji("") {
		t.Error("empty string should not classify as emoji")
	}
	if !IsEmoji("🎁") {
		t.Error("gift glyph should classify as emoji")
	}
}

func TestHasReservation(t *testing.T) {
	now := time.Now()
	g := Gift{Reserved: true, ReservedBy: "Ana", ReservedContact: "51999990000", ReservedAt: &now}
	if !g.HasReservation() {
		t.Error("expected complete reservation")
	}

	partial := Gift{Reserved: true, ReservedBy: "Ana"}
	if partial.HasReservation() {
		t.Error("partial reservation metadata must not count as reserved")
	}
}
