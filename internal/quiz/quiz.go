// Package quiz defines multiple choice quizzes, how they are decoded and
// checked, and how a set of answers is graded.
package quiz

// OptionCount is the number of options every question offers.
const OptionCount = 4

// CreditsPerCorrect is the reward for each correctly answered question.
const CreditsPerCorrect = 10

// Quiz is a titled list of questions, either generated from a document or
// loaded from a JSON file.
type Quiz struct {
	Title     string     `json:"title"`
	Version   string     `json:"version,omitempty"`
	Questions []Question `json:"questions"`
}

// Question is a single multiple choice item.
type Question struct {
	ID                 int      `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Answers maps a question ID to the chosen option index.
type Answers map[int]int

// Result is a graded attempt.
type Result struct {
	Score   int
	Total   int
	Answers Answers
}

// Credits is the reward earned by r.
func (r Result) Credits() int {
	return r.Score * CreditsPerCorrect
}

// Question returns the question with the given ID.
func (q *Quiz) Question(id int) (Question, bool) {
	for _, qu := range q.Questions {
		if qu.ID == id {
			return qu, true
		}
	}
	return Question{}, false
}

// AllAnswered reports whether every question has an answer.
func (q *Quiz) AllAnswered(a Answers) bool {
	for _, qu := range q.Questions {
		if _, ok := a[qu.ID]; !ok {
			return false
		}
	}
	return true
}

// Grade counts the answers that match the correct option. Unanswered
// questions count as wrong.
func Grade(q *Quiz, a Answers) Result {
	res := Result{Total: len(q.Questions), Answers: make(Answers, len(a))}
	for id, choice := range a {
		res.Answers[id] = choice
	}
	for _, qu := range q.Questions {
		if choice, ok := a[qu.ID]; ok && choice == qu.CorrectAnswerIndex {
			res.Score++
		}
	}
	return res
}
