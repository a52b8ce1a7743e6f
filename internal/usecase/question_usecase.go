package usecase

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestionBank []byte

const questionBankSize = 5

// nginx convention for a client that went away mid-request
const statusClientClosedRequest = 499

const generateQuestionsMessage = "Questions generated successfully. Note: These are sample questions. Connect a question generation service for tailored questions."

type questionBank struct {
	Questions []domain.InterviewQuestion `yaml:"questions"`
}

type questionUsecase struct {
	questions []domain.InterviewQuestion
	delay     time.Duration
}

// NewQuestionUsecase builds the mock generator from the embedded bank.
func NewQuestionUsecase(delay time.Duration) (domain.QuestionUsecase, error) {
	return NewQuestionUsecaseFromYAML(defaultQuestionBank, delay)
}

// NewQuestionUsecaseFromYAML is NewQuestionUsecase with an explicit bank.
func NewQuestionUsecaseFromYAML(data []byte, delay time.Duration) (domain.QuestionUsecase, error) {
	var bank questionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if err := validateBank(bank.Questions); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}
	return &questionUsecase{questions: bank.Questions, delay: delay}, nil
}

func validateBank(questions []domain.InterviewQuestion) error {
	if len(questions) != questionBankSize {
		return fmt.Errorf("expected %d questions, got %d", questionBankSize, len(questions))
	}
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.ID == "" || strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d is missing id or text", i+1)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if !q.Category.Valid() {
			return fmt.Errorf("question %s has unknown category %q", q.ID, q.Category)
		}
		if !q.Difficulty.Valid() {
			return fmt.Errorf("question %s has unknown difficulty %q", q.ID, q.Difficulty)
		}
	}
	return nil
}

// Generate ignores the description and CV content on purpose: the output is
// scaffolding until a real generator is wired in.
func (u *questionUsecase) Generate(ctx context.Context, req *domain.GenerateQuestionsRequest) (*domain.GenerateQuestionsResponse, error) {
	if req == nil || req.JobDescription == "" {
		return nil, apperror.BadRequest("Job description is required")
	}

	if u.delay > 0 {
		timer := time.NewTimer(u.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, apperror.New(statusClientClosedRequest, "Request cancelled", ctx.Err())
		}
	}

	logger.Log.Debug("Generated canned questions",
		"job_description_length", len(req.JobDescription),
		"has_cv_content", req.CVContent != "")

	return &domain.GenerateQuestionsResponse{
		Questions: append([]domain.InterviewQuestion(nil), u.questions...),
		Message:   generateQuestionsMessage,
	}, nil
}
