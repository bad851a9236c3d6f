package api

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// QnAService wraps /api/qna/questions.
type QnAService struct {
	c *resty.Client
}

func NewQnAService(c *resty.Client) *QnAService {
	return &QnAService{c: c}
}

// ListQuestions lists questions with optional filters
func (s *QnAService) ListQuestions(ctx context.Context, p ListParams) Result[[]Question] {
	return callList[Question](ctx, s.c, "qna", "list_questions", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get("/api/qna/questions")
	})
}

// GetQuestion retrieves one question with its answers
func (s *QnAService) GetQuestion(ctx context.Context, id string) Result[Question] {
	return call(ctx, s.c, "qna", "get_question", Question{}, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Get("/api/qna/questions/{id}")
	})
}

// AnswerQuestion posts an answer as the signed-in admin
func (s *QnAService) AnswerQuestion(ctx context.Context, id, content string) Result[Answer] {
	return call(ctx, s.c, "qna", "answer_question", Answer{}, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).
			SetBody(map[string]string{"content": content}).
			Post("/api/qna/questions/{id}/answers")
	})
}

// DeleteQuestion removes a question and its answers
func (s *QnAService) DeleteQuestion(ctx context.Context, id string) Result[any] {
	return call[any](ctx, s.c, "qna", "delete_question", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Delete("/api/qna/questions/{id}")
	})
}

// DeleteAnswer removes one answer from a question
func (s *QnAService) DeleteAnswer(ctx context.Context, questionID, answerID string) Result[any] {
	return call[any](ctx, s.c, "qna", "delete_answer", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParams(map[string]string{"id": questionID, "aid": answerID}).
			Delete("/api/qna/questions/{id}/answers/{aid}")
	})
}
