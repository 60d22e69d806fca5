package intent

import "testing"

func TestClassify_Greetings(t *testing.T) {
	c := NewKeywordClassifier()

	for _, text := range []string{
		"hello",
		"Hey there",
		"  HI  ",
		"good morning",
		"Good Evening everyone",
	} {
		if got := c.Classify(text); got != Greeting {
			t.Errorf("Classify(%q) = %s, want greeting", text, got)
		}
	}
}

func TestClassify_Gratitude(t *testing.T) {
	c := NewKeywordClassifier()

	for _, text := range []string{
		"thanks a lot",
		"Thank you so much",
		"thx",
	} {
		if got := c.Classify(text); got != Gratitude {
			t.Errorf("Classify(%q) = %s, want gratitude", text, got)
		}
	}
}

func TestClassify_PolicyQuestions(t *testing.T) {
	c := NewKeywordClassifier()

	for _, text := range []string{
		"what is the leave policy",
		"How many sick days do I get?",
		"explain the travel reimbursement rules",
		"",
		"   ",
	} {
		if got := c.Classify(text); got != PolicyQuestion {
			t.Errorf("Classify(%q) = %s, want policy_question", text, got)
		}
	}
}

// Substring matching is a deliberate trade-off: questions containing a
// vocabulary token classify as small talk even when they are real questions.
func TestClassify_KnownFalsePositives(t *testing.T) {
	c := NewKeywordClassifier()

	if got := c.Classify("what does the policy say about hierarchy"); got != Greeting {
		t.Errorf("expected greeting false positive on embedded 'hi', got %s", got)
	}
	if got := c.Classify("does the policy cover thanksgiving leave"); got != Gratitude {
		t.Errorf("expected gratitude false positive on embedded 'thanks', got %s", got)
	}
}

// Greeting wins over gratitude when both vocabularies match.
func TestClassify_GreetingCheckedFirst(t *testing.T) {
	c := NewKeywordClassifier()

	if got := c.Classify("hi, thanks for earlier"); got != Greeting {
		t.Errorf("expected greeting to win, got %s", got)
	}
}
