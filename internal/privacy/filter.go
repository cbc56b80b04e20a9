// Package privacy removes content the user marked as private before it is
// written to the timeline.
package privacy

import (
	"regexp"
	"strings"
)

// privateBlock matches a <private>...</private> span, across lines.
var privateBlock = regexp.MustCompile(`(?is)<private>.*?</private>`)

// StripPrivateTags drops every private block and trims the result.
func StripPrivateTags(content string) string {
	return strings.TrimSpace(privateBlock.ReplaceAllString(content, ""))
}
