package quiz

// RewardPoints is the fixed award for a correct first selection.
const RewardPoints = 10

// Question models an embedded multiple-choice question with exactly one
// designated correct option. Correctness is value equality against the
// stored answer, not index equality.
type Question struct {
	Question      string   `json:"question" firestore:"question"`
	Options       []string `json:"options" firestore:"options"`
	CorrectAnswer string   `json:"correctAnswer" firestore:"correctAnswer"`
}

// Result is the outcome of evaluating a selection.
type Result struct {
	Correct bool `json:"correct"`
}

// Evaluate compares the selected option against the question's designated
// correct value. Pure: no side effects, no state.
func Evaluate(q Question, selected string) Result {
	return Result{Correct: selected == q.CorrectAnswer}
}
