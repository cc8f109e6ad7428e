package dto

import (
	"time"

	"github.com/noah-isme/lld-lab-api/internal/models"
)

// ClassDesignRequest is the payload for creating or updating a class design.
// The list fields accept free-text entries; blank entries are dropped by the
// service before persistence.
type ClassDesignRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=255"`
	Responsibilities []string `json:"responsibilities" validate:"dive,max=500"`
	Attributes       []string `json:"attributes" validate:"dive,max=500"`
	Methods          []string `json:"methods" validate:"dive,max=500"`
	Relationships    []string `json:"relationships" validate:"dive,max=500"`
}

// ClassCodeRequest is the payload for attaching implementation code.
type ClassCodeRequest struct {
	Code string `json:"code" validate:"required,min=1"`
}

// ClassDesignResponse represents a class design to API consumers.
type ClassDesignResponse struct {
	ID               uint      `json:"id"`
	ProblemID        uint      `json:"problem_id"`
	Name             string    `json:"name"`
	Responsibilities []string  `json:"responsibilities"`
	Attributes       []string  `json:"attributes"`
	Methods          []string  `json:"methods"`
	Relationships    []string  `json:"relationships"`
	Code             string    `json:"code,omitempty"`
	HasCode          bool      `json:"has_code"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewClassDesignResponse builds a response DTO from a model.
func NewClassDesignResponse(design models.ClassDesign) ClassDesignResponse {
	return ClassDesignResponse{
		ID:               design.ID,
		ProblemID:        design.ProblemID,
		Name:             design.Name,
		Responsibilities: design.ResponsibilityList(),
		Attributes:       design.AttributeList(),
		Methods:          design.MethodList(),
		Relationships:    design.RelationshipList(),
		Code:             design.Code,
		HasCode:          design.HasImplementation(),
		UpdatedAt:        design.UpdatedAt,
	}
}
