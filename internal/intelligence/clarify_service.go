package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/llm"
)

const maxQuestionRunes = 300

// ClarifyService phrases a follow-up question for missing scheduling details.
// Errors are returned to the caller, which owns the fallback.
type ClarifyService interface {
	Generate(ctx context.Context, missing []domain.MissingField, text string) (string, error)
}

type clarifyService struct {
	client llm.LLMClient
}

// NewClarifyService creates a ClarifyService backed by an LLM client.
func NewClarifyService(client llm.LLMClient) ClarifyService {
	return &clarifyService{client: client}
}

type clarifyOutput struct {
	Question string `json:"question"`
}

func (s *clarifyService) Generate(ctx context.Context, missing []domain.MissingField, text string) (string, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskClarify,
		SystemPrompt: clarifySystemPrompt,
		UserPrompt:   buildClarifyUserPrompt(missing, text),
	})
	if err != nil {
		return "", fmt.Errorf("generating clarifying question: %w", err)
	}

	out, err := llm.ExtractJSON[clarifyOutput](resp.Text, validateQuestion)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Question), nil
}

func validateQuestion(out clarifyOutput) error {
	q := strings.TrimSpace(out.Question)
	if q == "" {
		return errors.New("question is empty")
	}
	if utf8.RuneCountInString(q) > maxQuestionRunes {
		return fmt.Errorf("question longer than %d characters", maxQuestionRunes)
	}
	return nil
}
