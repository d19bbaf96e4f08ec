package calendar

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// BuildICS renders the event as a single-VEVENT iCalendar payload.
func BuildICS(ev EventRequest) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//eventflow//EN")

	ve := cal.AddEvent(uuid.New().String())
	ve.SetCreatedTime(time.Now())
	ve.SetDtStampTime(time.Now())
	ve.SetSummary(ev.Title)
	if ev.AllDay {
		ve.SetAllDayStartAt(ev.Start)
		ve.SetAllDayEndAt(ev.End)
	} else {
		ve.SetStartAt(ev.Start)
		ve.SetEndAt(ev.End)
	}
	if ev.Location != "" {
		ve.SetLocation(ev.Location)
	}
	if ev.Description != "" {
		ve.SetDescription(ev.Description)
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize ics: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTempICS writes the event to a temp .ics file and returns its path.
func WriteTempICS(ev EventRequest) (string, error) {
	data, err := BuildICS(ev)
	if err != nil {
		return "", err
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("eventflow-%s.ics", uuid.New().String()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write ics file: %w", err)
	}
	return path, nil
}
