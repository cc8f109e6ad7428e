package dto

import (
	"time"

	"github.com/noah-isme/lld-lab-api/internal/models"
)

// ProblemRequest is the payload for creating or updating a design problem.
type ProblemRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Requirements string `json:"requirements" validate:"required,min=1"`
}

// ProblemResponse represents a design problem to API consumers.
type ProblemResponse struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	Requirements string                `json:"requirements"`
	Classes      []ClassDesignResponse `json:"classes,omitempty"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewProblemResponse builds a response DTO from a model.
func NewProblemResponse(problem models.Problem) ProblemResponse {
	response := ProblemResponse{
		ID:           problem.ID,
		Name:         problem.Name,
		Requirements: problem.Requirements,
		UpdatedAt:    problem.UpdatedAt,
	}

	if len(problem.Classes) > 0 {
		classes := make([]ClassDesignResponse, 0, len(problem.Classes))
		for _, class := range problem.Classes {
			classes = append(classes, NewClassDesignResponse(class))
		}
		response.Classes = classes
	}

	return response
}
