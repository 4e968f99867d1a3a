package ports

// Notifier announces milestones to the user.
// This is a driving port (called by the application layer).
type Notifier interface {
	// NotifyDayComplete is called when the last open task of a day is done.
	NotifyDayComplete(day, totalDays int) error

	// NotifyChallengeComplete is called when every day of the challenge is done.
	NotifyChallengeComplete(totalDays int) error
}
