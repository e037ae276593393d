package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hedaya/internal/models"
)

type HistoryCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	if err := ctx.Open(); err != nil {
		return err
	}

	for _, entry := range ctx.Tracker.History(c.Days) {
		ctx.printf("%s %s  %s\n", check(entry.OnPath), entry.Log.DateKey, summarize(entry.Log))
	}
	return nil
}

// summarize lists what a day recorded in a single short line.
func summarize(log models.DayLog) string {
	var parts []string
	if n := len(log.PrayersCompleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%d/5 prayers", n))
	}
	if n := len(log.SunnahCompleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%d sunnah", n))
	}
	if log.SunriseSunnahDone {
		parts = append(parts, "sunrise")
	}
	if log.QuranDone {
		parts = append(parts, "quran")
	}
	for _, b := range log.BranchesCompleted.Sorted() {
		parts = append(parts, string(b))
	}
	if log.UsedGraceDay {
		parts = append(parts, warnStyle.Render("grace"))
	}
	if len(parts) == 0 {
		return pendingStyle.Render("nothing recorded")
	}
	return strings.Join(parts, ", ")
}
