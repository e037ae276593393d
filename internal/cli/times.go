package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/prayertimes"
	"github.com/julianstephens/hedaya/internal/utils"
)

type TimesCmd struct {
	Date string `help:"Day to show (YYYY-MM-DD). Defaults to today."`
}

func (c *TimesCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	now := ctx.Clock.Now().In(ctx.Location)
	day := now
	if c.Date != "" {
		d, err := utils.ParseDateKey(c.Date, ctx.Location)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
		day = d
	}

	provider := prayertimes.NewScheduleProvider(ctx.Settings, ctx.Location)
	times, err := provider.Times(ctx.Settings.Coordinates(), ctx.Settings.CalculationMethod, day)
	if err != nil {
		return err
	}

	isToday := utils.DateKey(day) == ctx.Tracker.TodayKey()
	log := ctx.Tracker.TodayLog()
	if !isToday {
		if log, err = ctx.Tracker.Log(utils.DateKey(day)); err != nil {
			return err
		}
	}

	ctx.println(titleStyle.Render(fmt.Sprintf("Prayer times %s (%s)", utils.DateKey(day), ctx.Settings.CalculationMethod.TitleAr())))
	for _, p := range models.AllPrayers {
		note := ""
		if isToday && prayertimes.IsDue(times, p, log, now) {
			note = warnStyle.Render("  due")
		}
		ctx.printf("%s %-8s %s%s\n", check(log.PrayersCompleted.Has(p)), p, times.For(p).Format("15:04"), note)
		if p == models.PrayerFajr {
			ctx.printf("  %-8s %s\n", "sunrise", times.Sunrise.Format("15:04"))
		}
	}

	if isToday {
		if p, at, ok := prayertimes.Next(times, now); ok {
			ctx.printf("\nNext: %s in %s\n", p, at.Sub(now).Round(time.Minute))
		}
	}
	return nil
}
