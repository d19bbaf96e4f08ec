// Package calendar holds the concrete mechanisms for reaching an external
// calendar application. Each mechanism sits behind a small interface so the
// dispatcher can be exercised with fakes.
package calendar

import (
	"context"
	"time"
)

// EventRequest is the abstract "create event" capability payload.
type EventRequest struct {
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
	AllDay      bool
}

// Inserter creates an event through the platform's default calendar.
type Inserter interface {
	Insert(ctx context.Context, ev EventRequest) error
}

// AppLauncher targets one specific, known calendar application.
type AppLauncher interface {
	// HasApp reports whether the application is present on this host.
	HasApp(id string) bool

	// Launch hands the event to the application. Must return promptly;
	// acceptance without a completion signal counts as success.
	Launch(ctx context.Context, id string, ev EventRequest) error
}

// FileOpener opens a file with whatever handler the platform registers for
// its type.
type FileOpener interface {
	OpenFile(ctx context.Context, path string) error
}

// URLOpener opens a URL in the default browser.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// Clipboard places text in the shared system clipboard.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}
