package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/hedaya/internal/jobs"
	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/prayertimes"
)

type WatchCmd struct {
	Remind bool `help:"Also send due-prayer reminders through the notifier." default:"false"`
}

// Run keeps the tracker alive, rolling it over at midnight and checking for
// due prayers every hour, until interrupted.
func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	remind := func(text string) {
		ctx.printf("[%s] %s\n", time.Now().In(ctx.Location).Format("15:04"), text)
		if c.Remind {
			if err := ctx.Notifier.Notify(text); err != nil {
				logger.Warn("Failed to send reminder", "error", err)
			}
		}
	}

	provider := prayertimes.NewScheduleProvider(ctx.Settings, ctx.Location)
	sched := jobs.NewScheduler(ctx.Tracker, provider, ctx.Settings, ctx.Location, remind)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	sig, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.printf("Watching in %s. Press Ctrl+C to stop.\n", ctx.Location)
	sched.CheckDue(time.Now())
	<-sig.Done()
	ctx.println("Stopped.")
	return nil
}
