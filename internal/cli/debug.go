package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show database path."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump a stored document as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath(), "log": logger.Path()})
}

type DebugDumpCmd struct {
	What string `arg:"" enum:"logs,profile,progress,settings" help:"One of logs, profile, progress, settings."`
}

// Run prints the decoded document, so a corrupt blob shows up as the
// default value the tracker would use.
func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	switch cmd.What {
	case "logs":
		return printJSON(ctx, storage.NewDayLogStore(ctx.Store).Load())
	case "profile":
		return printJSON(ctx, storage.NewProfileStore(ctx.Store).Load())
	case "progress":
		state, ok := storage.NewProgressCache(ctx.Store).Load()
		if !ok {
			return fmt.Errorf("no cached progress")
		}
		return printJSON(ctx, state)
	case "settings":
		settings, err := storage.NewSettingsStore(ctx.Store).GetSettings()
		if err != nil {
			return err
		}
		return printJSON(ctx, settings)
	default:
		return fmt.Errorf("unknown document %q", cmd.What)
	}
}

func printJSON(ctx *Context, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(out))
	return nil
}
