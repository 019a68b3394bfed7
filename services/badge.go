package services

import "strings"

// BadgeStyle is the color pair a verdict renders with.
type BadgeStyle struct {
	Background string `json:"bg"`
	Color      string `json:"color"`
}

type badgeRule struct {
	patterns []string
	style    BadgeStyle
}

// Order matters: the first rule whose pattern appears in the verdict wins.
var badgeRules = []badgeRule{
	{[]string{"assista com certeza"}, BadgeStyle{"#198754", "white"}},
	{[]string{"vale a pena"}, BadgeStyle{"#20c997", "black"}},
	{[]string{"tem filmes melhores", "legal"}, BadgeStyle{"#ffc107", "black"}},
	{[]string{"não tão bom"}, BadgeStyle{"#fd7e14", "white"}},
	{[]string{"não perca seu tempo", "nunca"}, BadgeStyle{"#dc3545", "white"}},
}

var neutralBadge = BadgeStyle{"#6c757d", "white"}

// BadgeStyleFor maps a free-text verdict to its display colors. Matching is
// case-insensitive substring; empty or unknown verdicts get the neutral gray.
func BadgeStyleFor(text string) BadgeStyle {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return neutralBadge
	}
	for _, rule := range badgeRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(t, pattern) {
				return rule.style
			}
		}
	}
	return neutralBadge
}

// VerdictOptions are the canonical verdicts offered by the add-review form.
var VerdictOptions = []string{
	"Assista com certeza",
	"Vale a pena assistir",
	"tem filmes melhores, mas é legal",
	"não tão bom",
	"Não perca seu tempo",
}
