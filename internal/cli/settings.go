package cli

import (
	"fmt"
	"sort"

	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/storage"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"List current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := storage.NewSettingsStore(ctx.Store).GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := models.SettingsToMap(settings)
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx.println(titleStyle.Render("Current Settings"))
	for _, name := range names {
		ctx.println(row(name, orDash(values[name])))
	}
	return nil
}

type SettingsSetCmd struct {
	Name  string `arg:"" help:"Setting name, e.g. timezone, strict_mercy, fajr_time."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := storage.NewSettingsStore(ctx.Store).Set(c.Name, c.Value); err != nil {
		return err
	}
	ctx.printf("✓ %s updated.\n", c.Name)
	return nil
}
