package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/storage"
)

type InitCmd struct{}

// Run creates the store, applies migrations and writes default settings
// along with a fresh installation id. Running it again keeps existing data.
func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	settingsStore := storage.NewSettingsStore(ctx.Store)
	settings, err := settingsStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.InstallationID == "" {
		settings.InstallationID = uuid.New().String()
	}
	if err := settingsStore.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if err := ctx.Open(); err != nil {
		return err
	}

	ctx.printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())
	if _, ok := ctx.Tracker.Profile(); !ok {
		ctx.println("Next: describe your routine with 'hedaya profile complete'.")
	}
	return nil
}
