package dto

import (
	"time"

	"github.com/noah-isme/lld-lab-api/internal/models"
	"github.com/noah-isme/lld-lab-api/pkg/evaluator"
)

// EvaluationResponse represents one class's evaluation to API consumers.
// Feedback serialises as [level, message] pairs.
type EvaluationResponse struct {
	ClassName      string                   `json:"class_name"`
	Kind           string                   `json:"kind"`
	OverallScore   float64                  `json:"overall_score"`
	Feedback       []evaluator.FeedbackItem `json:"feedback"`
	Suggestions    []string                 `json:"suggestions"`
	DesignPatterns []string                 `json:"design_patterns"`
	UpdatedAt      time.Time                `json:"updated_at,omitempty"`
}

// NewEvaluationResponse builds a response DTO from a fresh evaluator result.
func NewEvaluationResponse(className, kind string, result evaluator.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ClassName:      className,
		Kind:           kind,
		OverallScore:   result.OverallScore,
		Feedback:       result.Feedback,
		Suggestions:    result.Suggestions,
		DesignPatterns: result.DesignPatterns,
	}
}

// NewStoredEvaluationResponse builds a response DTO from a persisted row.
func NewStoredEvaluationResponse(className string, evaluation models.Evaluation) EvaluationResponse {
	response := NewEvaluationResponse(className, evaluation.Kind, evaluation.Result())
	response.UpdatedAt = evaluation.UpdatedAt
	return response
}
