package constants

// Streak milestones (inclusive lower bounds, in days).
const (
	RootsMilestone     = 7
	GrowthMilestone    = 14
	SteadfastMilestone = 21
	BlossomMilestone   = 28

	// Weekly grace-day allowances by pace.
	MercyDaysAmbitious = 1
	MercyDaysDefault   = 2

	// GentleEssentialsLimit caps the essentials list for the gentle pace.
	GentleEssentialsLimit = 6
)
