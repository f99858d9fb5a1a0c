package dashboard

import (
	"testing"

	"github.com/kapu/terrascope/internal/domain"
)

func TestProfileAggregatorTokens(t *testing.T) {
	a := NewProfileAggregator()
	if a.Status() != domain.StatusIdle {
		t.Fatalf("expected IDLE")
	}

	first := a.Begin("Japan")
	second := a.Begin("France")
	if a.Succeed(first, japan()) {
		t.Fatalf("stale token applied")
	}
	if !a.Succeed(second, france()) || a.Active().Name != "France" {
		t.Fatalf("current token rejected")
	}
	gen := a.Generation()

	third := a.Begin("Atlantis")
	if !a.Fail(third, "failed") {
		t.Fatalf("current failure rejected")
	}
	if a.Status() != domain.StatusError || a.Active().Name != "France" {
		t.Fatalf("failure must keep the active profile")
	}
	if a.Generation() != gen {
		t.Fatalf("failure must not start a new generation")
	}

	fourth := a.Begin("Japan")
	a.Reset()
	if a.Succeed(fourth, japan()) {
		t.Fatalf("reset must cancel in-flight loads")
	}
	if a.Active() != nil || a.Status() != domain.StatusIdle || a.Generation() == gen {
		t.Fatalf("unexpected state after reset")
	}
}

func TestTranslationOverlayTokens(t *testing.T) {
	o := NewTranslationOverlay()

	tok := o.Begin("French")
	if !o.Succeed(tok, &domain.TranslatedContent{Description: "bonjour"}) {
		t.Fatalf("current token rejected")
	}

	failed := o.Begin("German")
	o.Fail(failed, "boom")
	if s := o.snapshot(); s.Status != domain.StatusError || s.Overlay.Description != "bonjour" {
		t.Fatalf("failure must keep the overlay: %+v", s)
	}

	pending := o.Begin("Italian")
	o.Invalidate()
	if o.Succeed(pending, &domain.TranslatedContent{Description: "ciao"}) {
		t.Fatalf("invalidated token applied")
	}
	if o.Overlay() != nil || o.snapshot().Status != domain.StatusIdle {
		t.Fatalf("invalidate must clear the overlay")
	}
}

func TestURLLocationHistory(t *testing.T) {
	l, err := NewURLLocation("https://terrascope.example/?theme=dark")
	if err != nil {
		t.Fatalf("NewURLLocation: %v", err)
	}

	_ = l.SetCountry("Japan")
	_ = l.SetCountry("Japan")
	if n := len(l.History()); n != 2 {
		t.Fatalf("same value must not add history, got %d", n)
	}
	if l.Country() != "Japan" {
		t.Fatalf("unexpected country %q", l.Country())
	}

	_ = l.ClearCountry()
	_ = l.ClearCountry()
	if n := len(l.History()); n != 3 {
		t.Fatalf("unexpected history length %d", n)
	}
	if l.String() != "https://terrascope.example/?theme=dark" {
		t.Fatalf("other params must survive, got %q", l.String())
	}

	if _, err := NewURLLocation("://bad"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestURLLocationNavigate(t *testing.T) {
	l, _ := NewURLLocation("https://terrascope.example/")
	if err := l.Navigate("https://terrascope.example/?country=Peru"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if l.Country() != "Peru" || len(l.History()) != 2 {
		t.Fatalf("unexpected location %q %v", l.Country(), l.History())
	}
	if err := l.Navigate("://bad"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNotifyingLocation(t *testing.T) {
	inner, _ := NewURLLocation("https://terrascope.example/")
	var seen []string
	l := &NotifyingLocation{Location: inner, OnChange: func(c string) { seen = append(seen, c) }}

	_ = l.SetCountry("Japan")
	_ = l.ClearCountry()
	if len(seen) != 2 || seen[0] != "Japan" || seen[1] != "" {
		t.Fatalf("unexpected notifications %v", seen)
	}
}

func TestCapitalDistances(t *testing.T) {
	profiles := []*domain.CountryProfile{japan(), france(), testProfile("Germany", "DE", "EUR", 52.52, 13.405)}
	d := CapitalDistances(profiles)
	if len(d) != 3 {
		t.Fatalf("expected three pairs, got %d", len(d))
	}

	tokyoParis := d[0]
	if tokyoParis.From != "Tokyo" || tokyoParis.To != "Paris" {
		t.Fatalf("unexpected pair %+v", tokyoParis)
	}
	if tokyoParis.Kilometers < 9600 || tokyoParis.Kilometers > 9800 {
		t.Fatalf("Tokyo-Paris distance out of range: %.1f", tokyoParis.Kilometers)
	}

	parisBerlin := d[2]
	if parisBerlin.Kilometers < 850 || parisBerlin.Kilometers > 900 {
		t.Fatalf("Paris-Berlin distance out of range: %.1f", parisBerlin.Kilometers)
	}

	if CapitalDistances(profiles[:1]) != nil {
		t.Fatalf("a single profile has no pairs")
	}
}
