package fetcher

import (
	"strings"

	"github.com/andybalholm/cascadia"

	"github.com/akimerslys/hltv-go/document"
)

// challengePhrase is the exact text of the anti-automation interstitial.
// The provider changing markup or copy yields a false negative; that is an
// accepted limitation, the detector is not generalized beyond this marker.
const challengePhrase = "Enable JavaScript and cookies to continue"

var challengeMarker = cascadia.MustCompile("#challenge-error-title")

// IsChallenge reports whether the parsed document is an anti-bot challenge
// interstitial rather than real content.
func IsChallenge(doc *document.Document) bool {
	el := doc.FindMatcher(challengeMarker)
	if el == nil {
		return false
	}
	return strings.TrimSpace(el.Text()) == challengePhrase
}
