package view

import (
	"time"

	"github.com/xvierd/daytrack/internal/domain"
)

// NarrowWidth is the terminal width below which date labels are hidden
// unless the always-mobile setting is active.
const NarrowWidth = 80

// FormatDateLabel renders date for a calendar cell: "Mon, January 2" for the
// long setting, "Jan 2" otherwise.
func FormatDateLabel(date time.Time, label domain.DateLabel) string {
	if label == domain.DateLabelLong {
		return date.Format("Mon, January 2")
	}
	return date.Format("Jan 2")
}

// ShowDateLabels reports whether cells carry a date label at the given
// terminal width.
func ShowDateLabels(label domain.DateLabel, width int) bool {
	return label == domain.DateLabelAlwaysMobile || width >= NarrowWidth
}
