package quiz

import (
	"errors"
	"testing"
)

var sampleQuestion = Question{
	Question:      "What makes a good opening line?",
	Options:       []string{"A personal question", "A comment on shared context", "A long story"},
	CorrectAnswer: "A comment on shared context",
}

func TestEvaluate_ValueEquality(t *testing.T) {
	cases := []struct {
		name     string
		selected string
		want     bool
	}{
		{"exact match", "A comment on shared context", true},
		{"wrong option", "A personal question", false},
		{"empty string", "", false},
		{"near match differs in case", "a comment on shared context", false},
		{"near match with trailing space", "A comment on shared context ", false},
		{"not an option at all", "42", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(sampleQuestion, tc.selected).Correct; got != tc.want {
				t.Fatalf("Evaluate(%q): expected correct=%v, got %v", tc.selected, tc.want, got)
			}
		})
	}
}

func TestView_LocksAfterFirstSelection(t *testing.T) {
	var v View

	result, err := v.Select(sampleQuestion, "A personal question")
	if err != nil {
		t.Fatalf("first Select returned error: %v", err)
	}
	if result.Correct {
		t.Fatalf("expected incorrect result")
	}
	if v.State() != AnsweredIncorrect {
		t.Fatalf("expected AnsweredIncorrect, got %v", v.State())
	}

	// Re-selecting is disallowed until the view resets, even with the
	// correct answer.
	if _, err := v.Select(sampleQuestion, sampleQuestion.CorrectAnswer); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
}

func TestView_ResetReenablesSelection(t *testing.T) {
	var v View

	if _, err := v.Select(sampleQuestion, sampleQuestion.CorrectAnswer); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if v.State() != AnsweredCorrect {
		t.Fatalf("expected AnsweredCorrect, got %v", v.State())
	}

	v.Reset()
	if v.State() != Unanswered || v.Selected() != "" {
		t.Fatalf("expected clean state after reset")
	}

	if _, err := v.Select(sampleQuestion, sampleQuestion.CorrectAnswer); err != nil {
		t.Fatalf("Select after reset returned error: %v", err)
	}
}
