package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/formatter"
	"github.com/impactboard/admin-cli/pkg/output"
)

// QnAService moderates questions and answers.
type QnAService struct {
	qna *api.QnAService
	now func() time.Time
}

// NewQnAService creates a new Q&A service
func NewQnAService(svc *api.Services) *QnAService {
	return &QnAService{qna: svc.QnA, now: time.Now}
}

// ListQuestions displays a page of questions
func (s *QnAService) ListQuestions(ctx context.Context, p api.ListParams) error {
	res := s.qna.ListQuestions(ctx, p)
	if err := api.AsError(res, "Failed to list questions"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No questions found.")
	}

	now := s.now()
	rows := make([][]string, 0, len(res.Data))
	for _, q := range res.Data {
		rows = append(rows, []string{
			q.Key(),
			formatter.Truncate(q.Title, 48),
			formatter.Truncate(q.Author.DisplayName(), 24),
			fmt.Sprint(q.NumAnswers()),
			formatter.RelativeTime(q.CreatedAt.Time, now),
		})
	}
	if err := output.PrintList(res.Data, []string{"ID", "QUESTION", "AUTHOR", "ANSWERS", "ASKED"}, rows); err != nil {
		return err
	}
	printPagination(res.Pagination, len(res.Data))
	return nil
}

// ViewQuestion displays a question with its answers
func (s *QnAService) ViewQuestion(ctx context.Context, id string) error {
	res := s.qna.GetQuestion(ctx, id)
	if err := api.AsError(res, "Failed to fetch question"); err != nil {
		return err
	}
	q := res.Data
	now := s.now()
	return output.Render(q, func(w io.Writer) {
		formatter.Bold.Fprintln(w, q.Title)
		formatter.Faint.Fprintf(w, "%s · %s · %s\n", q.Key(), q.Author.DisplayName(), formatter.RelativeTime(q.CreatedAt.Time, now))
		if q.Content != "" {
			fmt.Fprintf(w, "\n%s\n", q.Content)
		}
		fmt.Fprintf(w, "\n%s\n", formatter.Count(q.NumAnswers(), "answer"))
		for _, a := range q.Answers {
			formatter.Info.Fprintf(w, "  %s", a.Author.DisplayName())
			formatter.Faint.Fprintf(w, "  %s  %s\n", formatter.RelativeTime(a.CreatedAt.Time, now), a.Key())
			fmt.Fprintf(w, "    %s\n", a.Content)
		}
	})
}

// Answer posts an answer as the signed-in admin
func (s *QnAService) Answer(ctx context.Context, questionID, content string) error {
	if content == "" {
		return fmt.Errorf("answer content cannot be empty")
	}
	res := s.qna.AnswerQuestion(ctx, questionID, content)
	if err := api.AsError(res, "Failed to post answer"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Answer posted: %s", res.Data.Key())
	return nil
}

// DeleteQuestion removes a question and its answers
func (s *QnAService) DeleteQuestion(ctx context.Context, id string) error {
	if err := api.AsError(s.qna.DeleteQuestion(ctx, id), "Failed to delete question"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Question deleted: %s", id)
	return nil
}

// DeleteAnswer removes one answer
func (s *QnAService) DeleteAnswer(ctx context.Context, questionID, answerID string) error {
	if err := api.AsError(s.qna.DeleteAnswer(ctx, questionID, answerID), "Failed to delete answer"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Answer deleted: %s", answerID)
	return nil
}
