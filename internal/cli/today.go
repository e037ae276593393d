package cli

import (
	"fmt"

	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/tracker"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	log := ctx.Tracker.TodayLog()

	ctx.println(titleStyle.Render("Today " + log.DateKey))
	for _, p := range models.AllPrayers {
		line := fmt.Sprintf("%s %-8s %s", check(log.PrayersCompleted.Has(p)), p, p.TitleAr())
		if p.HasSunnah() {
			line += fmt.Sprintf("   sunnah %s", check(log.SunnahCompleted.Has(p)))
		}
		ctx.println(line)
	}
	ctx.printf("%s sunrise sunnah\n", check(log.SunriseSunnahDone))
	ctx.printf("%s quran\n", check(log.QuranDone))
	for _, b := range models.AllBranches {
		if log.BranchesCompleted.Has(b) {
			ctx.printf("%s %s %s\n", check(true), b, b.TitleAr())
		}
	}
	if log.UsedGraceDay {
		ctx.println(warnStyle.Render("Grace day"))
	}
	ctx.printf("On the path: %v\n", tracker.IsOnPath(log, profilePtr(ctx.Tracker)))
	return nil
}

func profilePtr(tr *tracker.Tracker) *models.Profile {
	p, ok := tr.Profile()
	if !ok {
		return nil
	}
	return &p
}

type EssentialsCmd struct{}

func (c *EssentialsCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	status := ctx.Tracker.EssentialStatus()
	if len(status) == 0 {
		ctx.println("No profile yet; any worship today keeps the streak.")
	} else {
		ctx.println(titleStyle.Render("Essentials"))
		for _, s := range status {
			ctx.printf("%s %s (%s)\n", check(s.Done), s.Item.TitleAr, s.Item.Action)
		}
	}

	ctx.println(titleStyle.Render("Bonuses"))
	for _, b := range ctx.Tracker.Bonuses() {
		if b.Action == "" {
			ctx.printf("  %s\n", b.TitleAr)
			continue
		}
		ctx.printf("  %s (%s)\n", b.TitleAr, b.Action)
	}
	return nil
}
