package services

import (
	"log"
	"strings"
)

// SubmissionCheckerService verifies that an application actually went
// through by scanning the page's visible text for the confirmation
// phrases the site renders after a submit.
type SubmissionCheckerService struct{}

var successPhrases = []string{
	"successfully applied",
	"application submitted",
	"thank you for applying",
}

// CheckForSuccess reports whether any known confirmation phrase appears
// in the page text, case-insensitively.
func (s *SubmissionCheckerService) CheckForSuccess(doc Document) bool {
	pageText := strings.ToLower(doc.BodyText())

	for _, phrase := range successPhrases {
		if strings.Contains(pageText, phrase) {
			log.Printf("Found success indicator: %q", phrase)
			return true
		}
	}

	log.Printf("No success indicators found")
	return false
}
