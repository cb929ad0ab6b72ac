package router

import (
	"regexp"
	"strings"
)

var (
	triggerPattern = regexp.MustCompile(`(?i)\b(i want to|i would like to|i'd like to|buy)\b`)
	articlePattern = regexp.MustCompile(`(?i)^(a|an|the)\s+`)
)

// ExtractItem pulls an item name out of a purchase message by stripping the
// trigger phrases. Best effort: when nothing is left the trimmed message is
// returned so the cart never ends up empty.
func ExtractItem(message string) string {
	trimmed := strings.TrimSpace(message)
	item := triggerPattern.ReplaceAllString(trimmed, " ")
	item = strings.Join(strings.Fields(item), " ")
	item = strings.Trim(item, ".!?,")
	item = strings.TrimSpace(articlePattern.ReplaceAllString(item, ""))
	if item == "" {
		return trimmed
	}
	return item
}
