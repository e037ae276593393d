package cli

import (
	"fmt"

	"github.com/julianstephens/hedaya/internal/models"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	p := ctx.Tracker.Progress()

	ctx.println(titleStyle.Render("Path progress"))
	ctx.println(row("Level", renderLevel(p.CurrentLevel)))
	ctx.println(row("Streak", fmt.Sprintf("%d day(s)", p.StreakDays)))

	if p.CurrentLevel == models.LevelBlossom {
		ctx.println(row("Progress", progressBar(p.LevelProgress)+" full bloom"))
	} else {
		next := p.CurrentLevel.Next()
		toGo := next.LowerBound() - p.StreakDays
		ctx.println(row("Progress", fmt.Sprintf("%s %d to %s", progressBar(p.LevelProgress), toGo, next)))
	}

	mercy := fmt.Sprintf("%d of %d used, %d left", p.MercyDaysUsedThisWeek, p.MercyDaysAllowedPerWeek, p.MercyDaysRemaining())
	if p.MercyDaysUsedThisWeek > p.MercyDaysAllowedPerWeek {
		mercy = warnStyle.Render(mercy + " (over allowance)")
	}
	ctx.println(row("Mercy days", mercy))
	ctx.println(row("Week of", p.WeekStartKey))

	_, week := ctx.Clock.Now().In(ctx.Location).ISOWeek()
	ctx.println(row("Weekly focus", models.WeeklyFocus(week)))
	return nil
}
