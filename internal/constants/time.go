package constants

const (
	// DateFormat is the day-key format used for storage (YYYY-MM-DD, Gregorian)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// MaxStreakWalkDays bounds the backward streak walk to one year.
	MaxStreakWalkDays = 365
)
