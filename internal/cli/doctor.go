package cli

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/julianstephens/hedaya/internal/backup"
	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/keyring"
	"github.com/julianstephens/hedaya/internal/storage"
	"github.com/julianstephens/hedaya/internal/utils"
)

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkip
)

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	report := func(name string, res checkResult, detail error) {
		switch res {
		case checkOK:
			ctx.printf("✓ %s: OK\n", name)
		case checkWarn:
			ctx.printf("⚠ %s: WARNING\n   %v\n", name, detail)
		case checkFail:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", name, detail)
			hasError = true
		case checkSkip:
			ctx.printf("⊘ %s: SKIPPED (%v)\n", name, detail)
		}
	}

	reachable := true
	if err := ctx.Store.Load(); err != nil {
		report("Database reachable", checkFail, err)
		reachable = false
	} else {
		report("Database reachable", checkOK, nil)
	}

	if !reachable {
		report("Schema version", checkSkip, errors.New("database not reachable"))
		report("Data readable", checkSkip, errors.New("database not reachable"))
		report("Progress cache", checkSkip, errors.New("database not reachable"))
	} else {
		if err := checkSchema(ctx); err != nil {
			report("Schema version", checkFail, err)
		} else {
			report("Schema version", checkOK, nil)
		}

		if err := checkData(ctx); err != nil {
			report("Data readable", checkFail, err)
		} else {
			report("Data readable", checkOK, nil)
		}

		if err := checkProgressCache(ctx); err != nil {
			report("Progress cache", checkWarn, err)
		} else {
			report("Progress cache", checkOK, nil)
		}
	}

	if err := checkBackups(ctx); err != nil {
		report("Backups present", checkWarn, err)
	} else {
		report("Backups present", checkOK, nil)
	}

	if err := checkClock(ctx); err != nil {
		report("Clock/timezone", checkFail, err)
	} else {
		report("Clock/timezone", checkOK, nil)
	}

	if keyring.IsAvailable() {
		report("OS keyring", checkOK, nil)
	} else {
		report("OS keyring", checkWarn, errors.New("not available; use HEDAYA_DB_CONNECTION for PostgreSQL credentials"))
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkSchema(ctx *Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkData reports blobs that the tracker would silently replace with
// defaults.
func checkData(ctx *Context) error {
	if _, err := storage.NewSettingsStore(ctx.Store).GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	data, err := ctx.Store.Get(constants.KeyDailyLogs)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read day logs: %w", err)
	}
	if err == nil && len(storage.NewDayLogStore(ctx.Store).Load()) == 0 && len(data) > 2 {
		return errors.New("day logs could not be decoded and will be treated as empty")
	}

	if _, err := ctx.Store.Get(constants.KeyProfile); err == nil && !storage.NewProfileStore(ctx.Store).Exists() {
		return errors.New("profile could not be decoded and will be treated as missing")
	}
	return nil
}

// checkProgressCache compares the cached progress to a fresh computation.
func checkProgressCache(ctx *Context) error {
	cache := storage.NewProgressCache(ctx.Store)
	cached, ok := cache.Load()
	if err := ctx.Open(); err != nil {
		return err
	}
	if !ok {
		return errors.New("no cached progress (it is rebuilt on the next command)")
	}
	fresh := ctx.Tracker.Progress()
	if !reflect.DeepEqual(cached, fresh) {
		return fmt.Errorf("cache was stale (streak %d, now %d) and has been refreshed", cached.StreakDays, fresh.StreakDays)
	}
	return nil
}

func checkBackups(ctx *Context) error {
	if _, ok := ctx.Store.(*storage.SQLiteStore); !ok {
		return errBackupUnsupported
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'hedaya backup create'")
	}
	return nil
}

func checkClock(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil && ctx.Config.Timezone != "" && !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Config.Timezone)
	}
	return nil
}
