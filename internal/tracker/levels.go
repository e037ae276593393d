package tracker

import "github.com/julianstephens/hedaya/internal/models"

// LevelForStreak maps a streak length to its level using inclusive lower
// bounds 0/7/14/21/28.
func LevelForStreak(streak int) models.Level {
	level := models.LevelSeeds
	for _, l := range models.AllLevels {
		if streak >= l.LowerBound() {
			level = l
		}
	}
	return level
}

// LevelProgress is the fraction of the way from the current level's bound
// to the next one, clamped to [0, 1]. Blossom is always complete.
func LevelProgress(streak int) float64 {
	level := LevelForStreak(streak)
	prev := level.LowerBound()
	next := level.Next().LowerBound()
	if next <= prev {
		return 1.0
	}
	return clamp01(float64(streak-prev) / float64(next-prev))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
