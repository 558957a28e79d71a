package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert university tutor. Analyze the provided document (exam paper, lecture notes or problem set) and create a multiple-choice quiz from it.

Rules:
- Extract or adapt 5 to 8 questions from the document.
- Every question has exactly 4 options and exactly one correct answer.
- The 3 incorrect options must be plausible distractors based on common mistakes.
- Write every mathematical expression in LaTeX wrapped in single dollar signs, e.g. $x^2$.
- The explanation must solve the problem step by step.
- Number the questions with sequential integer ids starting at 1.
- Give the quiz a short title that reflects the document's subject.`

// buildUserMessage returns the user turn for doc. Text documents are
// inlined; binary documents travel as attachments.
func buildUserMessage(doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a quiz based on the document %q.\n", doc.Name)
	if doc.isText() {
		b.WriteString("\n<document>\n")
		b.Write(doc.Data)
		if len(doc.Data) > 0 && doc.Data[len(doc.Data)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteString("</document>\n")
	} else {
		b.WriteString("The document is attached.\n")
	}
	return b.String()
}
