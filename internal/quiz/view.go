package quiz

import "errors"

// ErrAlreadyAnswered indicates a selection was attempted on a locked view.
var ErrAlreadyAnswered = errors.New("question already answered on this view")

// AnswerState is the per-question view state.
type AnswerState int

const (
	// Unanswered means no option has been selected on this view yet.
	Unanswered AnswerState = iota
	// AnsweredCorrect means the first selection matched the correct answer.
	AnsweredCorrect
	// AnsweredIncorrect means the first selection did not match.
	AnsweredIncorrect
)

// View is the small per-question state machine: it transitions out of
// Unanswered exactly once, locking further selections until Reset. A reset
// models navigating away from the page, which re-enables selection — the
// price is that a correct answer on a revisited page can award points again.
type View struct {
	state    AnswerState
	selected string
}

// Select records the first selection and returns its result. Subsequent
// selections fail with ErrAlreadyAnswered until Reset is called.
func (v *View) Select(q Question, option string) (Result, error) {
	if v.state != Unanswered {
		return Result{}, ErrAlreadyAnswered
	}

	result := Evaluate(q, option)
	v.selected = option
	if result.Correct {
		v.state = AnsweredCorrect
	} else {
		v.state = AnsweredIncorrect
	}
	return result, nil
}

// Reset returns the view to Unanswered, as happens on navigation away.
func (v *View) Reset() {
	v.state = Unanswered
	v.selected = ""
}

// State reports the current answer state.
func (v *View) State() AnswerState {
	return v.state
}

// Selected returns the locked-in option, or "" while unanswered.
func (v *View) Selected() string {
	return v.selected
}
