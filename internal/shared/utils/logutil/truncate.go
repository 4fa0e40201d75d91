package logutil

// TruncateForLog cuts s to maxLen runes and marks the cut with "...".
// Use it for bearer tokens and upstream bodies so logs never carry them whole.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
