package utils

import "strings"

// CloneString returns a copy of s that shares no memory with it.
func CloneString(s string) string {
	if len(s) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s)
	return sb.String()
}
