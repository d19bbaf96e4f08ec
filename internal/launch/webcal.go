package launch

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jacolabs/eventflow/internal/infra/calendar"
)

// Web calendar providers, tried in priority order.
const (
	providerGoogle  = "google"
	providerOutlook = "outlook"
)

// webProviders is the fixed priority order of web calendar URL builders.
var webProviders = []struct {
	name  string
	build func(calendar.EventRequest) string
}{
	{providerGoogle, googleCalendarURL},
	{providerOutlook, outlookCalendarURL},
}

// googleCalendarURL builds a Google Calendar event-creation link.
func googleCalendarURL(ev calendar.EventRequest) string {
	layout := "20060102T150405Z"
	if ev.AllDay {
		layout = "20060102"
	}
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", ev.Title)
	q.Set("dates", fmt.Sprintf("%s/%s",
		ev.Start.UTC().Format(layout), ev.End.UTC().Format(layout)))
	if ev.Location != "" {
		q.Set("location", ev.Location)
	}
	if ev.Description != "" {
		q.Set("details", ev.Description)
	}
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// outlookCalendarURL builds an Outlook Web event-creation link.
func outlookCalendarURL(ev calendar.EventRequest) string {
	q := url.Values{}
	q.Set("path", "/calendar/action/compose")
	q.Set("rru", "addevent")
	q.Set("subject", ev.Title)
	q.Set("startdt", ev.Start.UTC().Format(time.RFC3339))
	q.Set("enddt", ev.End.UTC().Format(time.RFC3339))
	if ev.AllDay {
		q.Set("allday", "true")
	}
	if ev.Location != "" {
		q.Set("location", ev.Location)
	}
	if ev.Description != "" {
		q.Set("body", ev.Description)
	}
	return "https://outlook.live.com/calendar/0/deeplink/compose?" + q.Encode()
}
