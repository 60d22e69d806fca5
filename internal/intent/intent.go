// Package intent classifies user utterances before any retrieval happens.
package intent

import "strings"

// Intent is the coarse category of a user utterance.
type Intent int

const (
	PolicyQuestion Intent = iota
	Greeting
	Gratitude
)

func (i Intent) String() string {
	switch i {
	case Greeting:
		return "greeting"
	case Gratitude:
		return "gratitude"
	default:
		return "policy_question"
	}
}

var (
	greetingVocab = []string{
		"hi", "hello", "hey",
		"good morning", "good evening", "good afternoon",
	}
	gratitudeVocab = []string{
		"thanks", "thank you", "thank u", "thx", "tnx",
	}
)

// KeywordClassifier detects greetings and gratitude by substring matching
// against fixed vocabularies. Cheap and deterministic, with a known
// false-positive risk on longer questions that happen to contain a token;
// the phrasing lists are kept short to limit that.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify normalizes the text (trim, case-fold) and checks greetings before
// gratitude; the first matching vocabulary wins.
func (c *KeywordClassifier) Classify(text string) Intent {
	q := strings.ToLower(strings.TrimSpace(text))
	for _, g := range greetingVocab {
		if strings.Contains(q, g) {
			return Greeting
		}
	}
	for _, g := range gratitudeVocab {
		if strings.Contains(q, g) {
			return Gratitude
		}
	}
	return PolicyQuestion
}
