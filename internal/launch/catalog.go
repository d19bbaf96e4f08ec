package launch

// knownApps is the priority-ordered catalog of calendar application
// identifiers probed by the specific-app strategy. Entries not present on
// the host are skipped.
var knownApps = []string{
	"org.gnome.Calendar",
	"org.kde.korganizer",
	"thunderbird",
	"org.gnome.Evolution",
	"io.elementary.calendar",
}
