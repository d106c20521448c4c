package services

import (
	"log"
	"strings"
)

// buttonLikeSelector covers the clickable shapes the target site uses:
// real buttons, submit inputs, and anchors styled as buttons.
const buttonLikeSelector = `button, input[type="submit"], a.btn`

// ActionLocatorService finds page actions by their visible text instead
// of markup, since the site gives apply/submit controls no stable ids.
type ActionLocatorService struct{}

// ClickByText clicks the first button-like element whose visible text or
// value attribute contains label, case-insensitively. It returns false
// when nothing matches; callers choose a fallback, never treat that as a
// hard failure.
func (s *ActionLocatorService) ClickByText(doc Document, label string) bool {
	needle := strings.ToLower(label)

	for _, candidate := range doc.FindAll(buttonLikeSelector) {
		if strings.Contains(strings.ToLower(candidate.Text()), needle) ||
			strings.Contains(strings.ToLower(candidate.Value()), needle) {
			candidate.ScrollIntoView()
			log.Printf("Clicking button containing text: %s", label)
			if err := candidate.Click(); err != nil {
				log.Printf("Failed to click button containing %q: %v", label, err)
				return false
			}
			return true
		}
	}

	return false
}
