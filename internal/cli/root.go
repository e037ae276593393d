package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/hedaya/internal/backup"
	"github.com/julianstephens/hedaya/internal/clock"
	"github.com/julianstephens/hedaya/internal/config"
	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/notifier"
	"github.com/julianstephens/hedaya/internal/storage"
	"github.com/julianstephens/hedaya/internal/tracker"
	"github.com/julianstephens/hedaya/internal/utils"
)

// Context is shared by every command. Store is set by main; the rest is
// filled in by Open.
type Context struct {
	Store  storage.Provider
	Config *config.Config

	// Clock overrides the system clock when set before Open.
	Clock    clock.Clock
	Notifier tracker.Notifier
	Out      io.Writer

	Settings models.Settings
	Location *time.Location
	Tracker  *tracker.Tracker
}

// Open loads the store and settings and builds the tracker. It is safe to
// call more than once.
func (c *Context) Open() error {
	if c.Tracker != nil {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}

	settings, err := storage.NewSettingsStore(c.Store).GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	c.Settings = settings

	tz := settings.Timezone
	if c.Config != nil && c.Config.Timezone != "" {
		tz = c.Config.Timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		logger.Warn("Invalid timezone, using local time", "timezone", tz, "error", err)
		loc = time.Local
	}
	c.Location = loc

	if c.Clock == nil {
		c.Clock = clock.NewSystem(loc)
	}
	if c.Notifier == nil {
		if settings.NotificationsEnabled {
			c.Notifier = notifier.New()
		} else {
			c.Notifier = notifier.Nop{}
		}
	}

	c.Tracker = tracker.New(tracker.StoresFor(c.Store), c.Clock,
		tracker.WithNotifier(c.Notifier),
		tracker.WithStrictMercy(settings.StrictMercy),
	)
	return nil
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// PerformAutomaticBackup snapshots SQLite stores and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
