package markdown

import "strings"

// ReplaceManagedBlock swaps the text between startMarker and endMarker for
// generated, appending a new block when the markers are absent. Text outside
// the markers is preserved.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(endMarker):]
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
