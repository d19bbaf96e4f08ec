package synthesize

import (
	"testing"
	"time"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// fixedNow is a Tuesday.
var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newFixed() *Synthesizer {
	s := New("UTC")
	s.Now = func() time.Time { return fixedNow }
	return s
}

// =============================================================================
// Core properties
// =============================================================================

func TestSynthesize_NeverFails(t *testing.T) {
	s := newFixed()

	for _, text := range []string{"", "   ", "asdf", "Team meeting tomorrow at 2 PM"} {
		got := s.Synthesize(text, nil)
		if got.Title == "" {
			t.Errorf("%q: synthesized title must never be empty", text)
		}
		if got.StartDateTime == "" {
			t.Errorf("%q: synthesized start must never be empty", text)
		}
		if got.EndDateTime == "" {
			t.Errorf("%q: synthesized end must never be empty", text)
		}
		if got.Confidence < 0.10 || got.Confidence >= domain.BandProceed {
			t.Errorf("%q: confidence %.2f outside the synthesized range", text, got.Confidence)
		}
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	s := newFixed()

	text := "Lunch with Sam on Friday morning at the cafe"
	first := s.Synthesize(text, nil)
	second := s.Synthesize(text, nil)
	if first != second {
		t.Errorf("synthesis must be deterministic:\n  %+v\n  %+v", first, second)
	}
}

func TestSynthesize_KeepsPartialFields(t *testing.T) {
	s := newFixed()

	partial := &domain.ParseResult{
		Title:         "Quarterly review",
		StartDateTime: "2026-09-10T15:00:00Z",
	}
	got := s.Synthesize("something tomorrow at 2 PM", partial)
	if got.Title != "Quarterly review" {
		t.Errorf("partial title must win, got %q", got.Title)
	}
	if got.StartDateTime != "2026-09-10T15:00:00Z" {
		t.Errorf("partial start must win, got %q", got.StartDateTime)
	}
	// End was empty in the partial, so it is derived from the kept start.
	if got.End().Before(got.Start()) {
		t.Error("derived end must follow the kept start")
	}
}

// =============================================================================
// Title extraction
// =============================================================================

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Team meeting tomorrow at 2 PM", "Team meeting tomorrow at 2 PM"},
		{"i need to call the dentist tomorrow", "Call the dentist tomorrow"},
		{"Remember to submit the report, then go home", "Submit the report"},
		{"attend the standup at the main office, bring notes", "The standup at the main office"},
		{"", "Event"},
		{"   ", "Event"},
	}
	for _, tt := range tests {
		if got := extractTitle(tt.text); got != tt.want {
			t.Errorf("extractTitle(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractTitle_Capped(t *testing.T) {
	long := "planning session about the upcoming launch with every stakeholder from both offices"
	got := extractTitle(long)
	if len(got) > 60 {
		t.Errorf("title must be capped at 60 chars, got %d", len(got))
	}
}

// =============================================================================
// Time extraction
// =============================================================================

func TestSynthesize_ClockTime(t *testing.T) {
	s := newFixed()

	got := s.Synthesize("Team meeting tomorrow at 2 PM", nil)
	start := got.Start()
	want := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("expected start %v, got %v", want, start)
	}
}

func TestSynthesize_DayParts(t *testing.T) {
	s := newFixed()

	tests := []struct {
		text string
		hour int
	}{
		{"standup tomorrow morning", 9},
		{"lunch tomorrow", 12},
		{"review tomorrow afternoon", 13},
		{"drinks tomorrow evening", 18},
	}
	for _, tt := range tests {
		got := s.Synthesize(tt.text, nil)
		if h := got.Start().Hour(); h != tt.hour {
			t.Errorf("%q: expected hour %d, got %d", tt.text, tt.hour, h)
		}
	}
}

func TestSynthesize_WeekdayResolvesForward(t *testing.T) {
	s := newFixed() // fixedNow is Tuesday 2026-09-01

	got := s.Synthesize("planning on Friday at 10 AM", nil)
	start := got.Start()
	if start.Weekday() != time.Friday {
		t.Errorf("expected Friday, got %s", start.Weekday())
	}
	if !start.After(fixedNow) {
		t.Errorf("resolved day must be in the future, got %v", start)
	}

	// Naming today's weekday means next week, not today.
	got = s.Synthesize("sync on Tuesday at 10 AM", nil)
	if d := got.Start().Sub(fixedNow); d < 6*24*time.Hour {
		t.Errorf("same-weekday mention must resolve a week out, got %v", got.Start())
	}
}

func TestSynthesize_NoSignalDefaultsTomorrowMorning(t *testing.T) {
	s := newFixed()

	got := s.Synthesize("catch up with Alex", nil)
	want := time.Date(2026, 9, 2, DefaultHour, 0, 0, 0, time.UTC)
	if !got.Start().Equal(want) {
		t.Errorf("expected %v, got %v", want, got.Start())
	}
}

// =============================================================================
// All-day and duration
// =============================================================================

func TestSynthesize_AllDay(t *testing.T) {
	s := newFixed()

	got := s.Synthesize("company offsite tomorrow", nil)
	if !got.AllDay {
		t.Fatal("expected all-day event")
	}
	start := got.Start()
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("all-day start must be midnight, got %v", start)
	}
	if d := got.End().Sub(start); d != 24*time.Hour {
		t.Errorf("all-day span must be 24h, got %v", d)
	}
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		text string
		want time.Duration
	}{
		{"meet for 2 hours", 2 * time.Hour},
		{"call for 30 minutes", 30 * time.Minute},
		{"workshop for 1.5 hours", 90 * time.Minute},
		{"just a meeting", time.Hour},
	}
	for _, tt := range tests {
		if got := extractDuration(tt.text); got != tt.want {
			t.Errorf("extractDuration(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

// =============================================================================
// Provenance
// =============================================================================

func TestToCanonical(t *testing.T) {
	s := newFixed()

	got := s.ToCanonical(s.Synthesize("standup tomorrow", nil), "standup tomorrow")
	if !got.FallbackApplied {
		t.Error("canonical synthesized result must carry fallback_applied")
	}
	if got.OriginalText != "standup tomorrow" {
		t.Errorf("expected original text preserved, got %q", got.OriginalText)
	}
	if got.ErrorRecoveryInfo == "" {
		t.Error("expected recovery info to be stamped")
	}
}
