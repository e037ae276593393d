package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/tracker"
)

type MarkCmd struct {
	Prayer  MarkPrayerCmd  `cmd:"" help:"Mark an obligatory prayer as prayed."`
	Sunnah  MarkSunnahCmd  `cmd:"" help:"Mark a prayer's companion sunnah."`
	Sunrise MarkSunriseCmd `cmd:"" help:"Mark the sunrise (duha) sunnah."`
	Quran   MarkQuranCmd   `cmd:"" help:"Mark today's Quran portion."`
	Branch  MarkBranchCmd  `cmd:"" help:"Mark a worship branch."`
	Action  MarkActionCmd  `cmd:"" help:"Record an essential or bonus by action type."`
}

type MarkPrayerCmd struct {
	Prayer string `arg:"" help:"fajr, dhuhr, asr, maghrib or isha."`
}

func (c *MarkPrayerCmd) Run(ctx *Context) error {
	p := models.PrayerName(strings.ToLower(c.Prayer))
	return mark(ctx, p.TitleAr(), func(tr *tracker.Tracker) error { return tr.MarkPrayerDone(p) })
}

type MarkSunnahCmd struct {
	Prayer string `arg:"" help:"Prayer whose sunnah was prayed (asr has none)."`
}

func (c *MarkSunnahCmd) Run(ctx *Context) error {
	p := models.PrayerName(strings.ToLower(c.Prayer))
	return mark(ctx, "sunnah "+p.TitleAr(), func(tr *tracker.Tracker) error { return tr.MarkSunnahDone(p) })
}

type MarkSunriseCmd struct{}

func (c *MarkSunriseCmd) Run(ctx *Context) error {
	return mark(ctx, "sunrise sunnah", func(tr *tracker.Tracker) error { return tr.MarkSunriseSunnahDone() })
}

type MarkQuranCmd struct{}

func (c *MarkQuranCmd) Run(ctx *Context) error {
	return mark(ctx, "quran", func(tr *tracker.Tracker) error { return tr.MarkQuranDone() })
}

type MarkBranchCmd struct {
	Branch string `arg:"" help:"Branch id, e.g. morningZikr, sadaqa, extraSalah."`
}

func (c *MarkBranchCmd) Run(ctx *Context) error {
	b, err := parseBranch(c.Branch)
	if err != nil {
		return err
	}
	return mark(ctx, b.TitleAr(), func(tr *tracker.Tracker) error { return tr.MarkBranchDone(b) })
}

type MarkActionCmd struct {
	Action string `arg:"" help:"Action type, e.g. dhikrSabah, sunnahFajr, qiyamAlLayl."`
}

func (c *MarkActionCmd) Run(ctx *Context) error {
	a := models.ActionType(c.Action)
	return mark(ctx, c.Action, func(tr *tracker.Tracker) error { return tr.Apply(a) })
}

// parseBranch accepts branch ids case-insensitively.
func parseBranch(s string) (models.BranchType, error) {
	for _, b := range models.AllBranches {
		if strings.EqualFold(string(b), s) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %v)", tracker.ErrUnknownBranch, s, models.AllBranches)
}

type TapCmd struct {
	Element string `arg:"" help:"Tree element id: trunk, root-<prayer> or branch-<name>."`
}

func (c *TapCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	el, err := ctx.Tracker.Tap(c.Element)
	if err != nil {
		if el.ID == "" {
			return fmt.Errorf("%w (known elements: %s)", err, strings.Join(tracker.AllElementIDs(), ", "))
		}
		return err
	}
	printMarked(ctx, el.ID)
	return nil
}

type GraceCmd struct {
	Date string `help:"Day to excuse (YYYY-MM-DD). Defaults to today."`
}

func (c *GraceCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	res, err := ctx.Tracker.MarkGraceDay(c.Date)
	if err != nil {
		return err
	}

	switch {
	case res.AlreadyMarked:
		ctx.printf("%s was already a grace day.\n", res.DateKey)
	case res.OverBudget:
		ctx.println(warnStyle.Render(fmt.Sprintf("⚠ Grace day recorded for %s, beyond this week's allowance (%d of %d).",
			res.DateKey, res.UsedThisWeek, res.AllowedPerWeek)))
	default:
		ctx.printf("✓ Grace day recorded for %s (%d of %d this week).\n", res.DateKey, res.UsedThisWeek, res.AllowedPerWeek)
	}
	return nil
}

func mark(ctx *Context, what string, fn func(*tracker.Tracker) error) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	if err := fn(ctx.Tracker); err != nil {
		return err
	}
	printMarked(ctx, what)
	return nil
}

func printMarked(ctx *Context, what string) {
	p := ctx.Tracker.Progress()
	ctx.printf("✓ %s (streak %d, %s)\n", what, p.StreakDays, renderLevel(p.CurrentLevel))
}
