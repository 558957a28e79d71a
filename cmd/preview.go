package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/unitutor/internal/quiz"
)

var quizPreviewCmd = &cobra.Command{
	Use:   "preview <document>",
	Short: "Generate a quiz and answer it in the terminal (no database)",
	Long: `Generate a quiz from a document and interactively answer it on stdin.

This is a stateless tool: no database, no credits, no events.
Useful for judging question quality before sharing a quiz file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := previewLogger(cmd)
		defer logger.Sync()

		q, err := generateQuiz(cmd.Context(), args[0], nil, logger)
		if err != nil {
			return err
		}
		res := playQuiz(q, os.Stdin, os.Stdout)
		fmt.Printf("── Summary: %d/%d correct, %d credits ──\n", res.Score, res.Total, res.Credits())
		return nil
	},
}

// playQuiz asks every question on out, reads answers (1-4 or a-d) from in
// and grades the attempt. Unanswered questions count as wrong.
func playQuiz(q *quiz.Quiz, in io.Reader, out io.Writer) quiz.Result {
	scanner := bufio.NewScanner(in)
	answers := make(quiz.Answers, len(q.Questions))

	fmt.Fprintf(out, "%s\n\n", q.Title)
	for i, question := range q.Questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(q.Questions))
		fmt.Fprintln(out, question.Text)
		for j, opt := range question.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+j, opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		choice, ok := parseChoice(scanner.Text(), len(question.Options))
		if !ok {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}
		answers[question.ID] = choice

		if choice == question.CorrectAnswerIndex {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %c) %s\n",
				'A'+question.CorrectAnswerIndex, question.Options[question.CorrectAnswerIndex])
		}
		if question.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", question.Explanation)
		}
		fmt.Fprintln(out)
	}

	return quiz.Grade(q, answers)
}

// parseChoice accepts 1-n or a letter.
func parseChoice(s string, n int) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i - 1, i >= 1 && i <= n
	}
	if len(s) == 1 && s[0] >= 'a' && int(s[0]-'a') < n {
		return int(s[0] - 'a'), true
	}
	return 0, false
}
