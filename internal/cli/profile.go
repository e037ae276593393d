package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hedaya/internal/models"
)

type ProfileCmd struct {
	Show     ProfileShowCmd     `cmd:"" help:"Show the worship profile." default:"1"`
	Set      ProfileSetCmd      `cmd:"" help:"Change profile answers."`
	Complete ProfileCompleteCmd `cmd:"" help:"Save profile answers and finish onboarding."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	p, ok := ctx.Tracker.Profile()
	if !ok {
		ctx.println("No profile yet. Create one with 'hedaya profile complete'.")
		return nil
	}

	areas := make([]string, 0, len(p.WorshipAreas))
	for _, a := range p.WorshipAreas {
		areas = append(areas, string(a))
	}
	if len(areas) == 0 {
		areas = append(areas, "all")
	}

	ctx.println(titleStyle.Render("Profile"))
	ctx.println(row("Pace", string(p.ResolvedPace())))
	ctx.println(row("Worship areas", strings.Join(areas, ", ")))
	ctx.println(row("Consistency", orDash(string(p.ConsistencyLevel))))
	ctx.println(row("Time", orDash(string(p.TimeAvailability))))
	ctx.println(row("Intention", orDash(string(p.PrimaryIntention))))
	ctx.println(row("Tracking feeling", orDash(string(p.TrackingFeeling))))
	ctx.println(row("Life context", orDash(string(p.LifeContext))))
	ctx.println(row("Mercy days/week", fmt.Sprint(p.MercyDaysPerWeek())))
	if p.CompletedAt != nil {
		ctx.println(row("Completed", p.CompletedAt.In(ctx.Location).Format("2006-01-02 15:04")))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ProfileFlags are the onboarding answers. Each accepts the value or its
// zero-based index among the choices.
type ProfileFlags struct {
	Pace        string   `help:"gentle, balanced or ambitious."`
	Areas       []string `help:"Worship areas: salah, quran, dhikr, dua, sadaqah, zakat, goodDeeds." sep:","`
	Consistency string   `help:"very_regular, sometimes, start_stop or fresh_start."`
	Time        string   `help:"very_little, medium, more or varies."`
	Intention   string   `help:"discipline, closeness, learning or habit."`
	Feeling     string   `help:"motivating, sometimes_heavy or prefer_minimal."`
	Life        string   `help:"busy_parent, student, traveler or none."`
}

func (f *ProfileFlags) apply(p *models.Profile) error {
	var err error
	if f.Pace != "" {
		if p.Pace, err = models.ParseOption(f.Pace, models.AllPaces); err != nil {
			return fmt.Errorf("pace: %w", err)
		}
	}
	if len(f.Areas) > 0 {
		areas := make([]models.WorshipArea, 0, len(f.Areas))
		seen := map[models.WorshipArea]bool{}
		for _, s := range f.Areas {
			a, err := models.ParseOption(s, models.AllWorshipAreas)
			if err != nil {
				return fmt.Errorf("areas: %w", err)
			}
			if a != "" && !seen[a] {
				seen[a] = true
				areas = append(areas, a)
			}
		}
		p.WorshipAreas = areas
	}
	if f.Consistency != "" {
		if p.ConsistencyLevel, err = models.ParseOption(f.Consistency, models.AllConsistencyLevels); err != nil {
			return fmt.Errorf("consistency: %w", err)
		}
	}
	if f.Time != "" {
		if p.TimeAvailability, err = models.ParseOption(f.Time, models.AllTimeAvailabilities); err != nil {
			return fmt.Errorf("time: %w", err)
		}
	}
	if f.Intention != "" {
		if p.PrimaryIntention, err = models.ParseOption(f.Intention, models.AllPrimaryIntentions); err != nil {
			return fmt.Errorf("intention: %w", err)
		}
	}
	if f.Feeling != "" {
		if p.TrackingFeeling, err = models.ParseOption(f.Feeling, models.AllTrackingFeelings); err != nil {
			return fmt.Errorf("feeling: %w", err)
		}
	}
	if f.Life != "" {
		if p.LifeContext, err = models.ParseOption(f.Life, models.AllLifeContexts); err != nil {
			return fmt.Errorf("life: %w", err)
		}
	}
	return nil
}

type ProfileSetCmd struct {
	ProfileFlags `embed:""`
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	current, _ := ctx.Tracker.Profile()
	if err := c.apply(&current); err != nil {
		return err
	}
	if err := ctx.Tracker.SaveProfile(current); err != nil {
		return err
	}
	ctx.println("Profile updated.")
	return nil
}

type ProfileCompleteCmd struct {
	ProfileFlags `embed:""`
}

func (c *ProfileCompleteCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	current, _ := ctx.Tracker.Profile()
	if err := c.apply(&current); err != nil {
		return err
	}
	p, err := ctx.Tracker.CompleteOnboarding(current)
	if err != nil {
		return err
	}
	ctx.printf("Onboarding complete. %d essential(s) a day, %d mercy day(s) a week.\n",
		len(p.DailyEssentials()), p.MercyDaysPerWeek())
	return nil
}
