package calendar

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// attemptTimeout bounds every external invocation: a strategy attempt must
// return or fail immediately, never block.
const attemptTimeout = 5 * time.Second

// ExecInvoker drives external applications through desktop commands
// (xdg-open, gtk-launch, wl-copy/xclip). It implements Inserter, AppLauncher,
// FileOpener, URLOpener, and Clipboard.
type ExecInvoker struct {
	lookPath func(string) (string, error)
}

// NewExecInvoker creates the default command-based invoker.
func NewExecInvoker() *ExecInvoker {
	return &ExecInvoker{lookPath: exec.LookPath}
}

func (e *ExecInvoker) run(ctx context.Context, name string, args ...string) error {
	if _, err := e.lookPath(name); err != nil {
		return fmt.Errorf("%s not available: %w", name, err)
	}
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	// These launchers detach and exit once the target accepted the request,
	// so a clean exit is the acceptance signal.
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Insert hands the event to the default calendar application registered for
// text/calendar. Handler acceptance is the success signal; the desktop gives
// no completion callback.
func (e *ExecInvoker) Insert(ctx context.Context, ev EventRequest) error {
	path, err := WriteTempICS(ev)
	if err != nil {
		return err
	}
	return e.run(ctx, "gio", "open", path)
}

// HasApp checks the desktop database for the application id.
func (e *ExecInvoker) HasApp(id string) bool {
	dirs := []string{"/usr/share/applications", "/usr/local/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local/share/applications"))
	}
	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, id+".desktop")); err == nil {
			return true
		}
	}
	return false
}

// Launch starts the named desktop application.
func (e *ExecInvoker) Launch(ctx context.Context, id string, ev EventRequest) error {
	return e.run(ctx, "gtk-launch", id)
}

// OpenFile opens a file with the registered handler.
func (e *ExecInvoker) OpenFile(ctx context.Context, path string) error {
	return e.run(ctx, "xdg-open", path)
}

// OpenURL opens a URL in the default browser.
func (e *ExecInvoker) OpenURL(ctx context.Context, url string) error {
	return e.run(ctx, "xdg-open", url)
}

// Copy places text in the clipboard, preferring wl-copy, falling back to
// xclip. When no clipboard tool works, the text is written to a file in the
// temp directory instead: the terminal strategy must not fail.
func (e *ExecInvoker) Copy(ctx context.Context, text string) error {
	for _, tool := range []struct {
		name string
		args []string
	}{
		{"wl-copy", nil},
		{"xclip", []string{"-selection", "clipboard"}},
	} {
		if _, err := e.lookPath(tool.name); err != nil {
			continue
		}
		if err := e.pipe(ctx, text, tool.name, tool.args...); err == nil {
			return nil
		}
	}
	return writeSummaryFile(text)
}

func (e *ExecInvoker) pipe(ctx context.Context, stdin, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}

func writeSummaryFile(text string) error {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("eventflow-summary-%d.txt", time.Now().UnixNano()))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("write summary file: %w", err)
	}
	return nil
}
