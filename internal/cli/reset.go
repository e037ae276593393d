package cli

import (
	"github.com/charmbracelet/huh"
)

// confirmFunc asks a yes/no question. Tests replace it.
var confirmFunc = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	return confirmFunc(title)
}

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

// Run deletes every day log, the profile and the cached progress. Settings
// are kept. SQLite stores are backed up first.
func (c *ResetCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	ok, err := confirm("Delete all tracking history and your profile?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.println("Reset cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.ClearAll(); err != nil {
		return err
	}
	ctx.println("✓ All tracking data cleared.")
	return nil
}
