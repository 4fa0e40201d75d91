package marketplace

import "strings"

// ApplicationStatus is the backend's free-form application state. Only a few
// values are known; everything else is displayed as-is.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusInterview ApplicationStatus = "interview"
)

func (s ApplicationStatus) String() string {
	return string(s)
}

// IsInterview reports whether the application reached the interview stage.
func (s ApplicationStatus) IsInterview() bool {
	return s == StatusInterview
}

// Label returns a display label; unknown statuses are title-cased.
func (s ApplicationStatus) Label() string {
	if s == "" {
		return "Unknown"
	}
	return titleCaser().String(strings.ReplaceAll(string(s), "_", " "))
}

// BadgeColor is the palette entry a status badge is drawn with.
type BadgeColor string

const (
	BadgeYellow BadgeColor = "yellow"
	BadgeGreen  BadgeColor = "green"
	BadgeRed    BadgeColor = "red"
	BadgeBlue   BadgeColor = "blue"
	BadgeGray   BadgeColor = "gray"
)

// Badge maps a status to its badge color. It is total: any unrecognized
// status gets BadgeGray.
func (s ApplicationStatus) Badge() BadgeColor {
	switch s {
	case StatusPending:
		return BadgeYellow
	case StatusAccepted:
		return BadgeGreen
	case StatusRejected:
		return BadgeRed
	case StatusInterview:
		return BadgeBlue
	default:
		return BadgeGray
	}
}

// Classes returns the CSS classes for a badge of this color.
func (c BadgeColor) Classes() string {
	return "bg-" + string(c) + "-100 text-" + string(c) + "-800"
}
