package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/lld-lab-api/pkg/evaluator"
)

// Evaluation kinds. A design evaluation scores the structural sketch; an
// implementation evaluation scores the written code.
const (
	EvaluationKindDesign         = "design"
	EvaluationKindImplementation = "implementation"
)

// Evaluation persists the latest assessment for one class and kind. A fresh
// evaluation overwrites the previous row for the same class/kind pair.
type Evaluation struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ClassDesignID  uint           `gorm:"not null;uniqueIndex:idx_class_kind" json:"class_design_id"`
	Kind           string         `gorm:"size:32;not null;uniqueIndex:idx_class_kind" json:"kind"`
	OverallScore   float64        `gorm:"not null" json:"overall_score"`
	Feedback       datatypes.JSON `gorm:"not null" json:"feedback"`
	Suggestions    datatypes.JSON `gorm:"not null" json:"suggestions"`
	DesignPatterns datatypes.JSON `gorm:"not null" json:"design_patterns"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewEvaluation builds a persistable row from an evaluator result.
func NewEvaluation(classDesignID uint, kind string, result evaluator.Evaluation) Evaluation {
	feedback, err := json.Marshal(result.Feedback)
	if err != nil {
		feedback = []byte("[]")
	}

	return Evaluation{
		ClassDesignID:  classDesignID,
		Kind:           kind,
		OverallScore:   result.OverallScore,
		Feedback:       datatypes.JSON(feedback),
		Suggestions:    StringList(result.Suggestions),
		DesignPatterns: StringList(result.DesignPatterns),
	}
}

// Result decodes the stored row back into the evaluator's result form.
func (e Evaluation) Result() evaluator.Evaluation {
	var feedback []evaluator.FeedbackItem
	if err := json.Unmarshal(e.Feedback, &feedback); err != nil {
		feedback = []evaluator.FeedbackItem{}
	}

	return evaluator.Evaluation{
		OverallScore:   e.OverallScore,
		Feedback:       feedback,
		Suggestions:    decodeStringList(e.Suggestions),
		DesignPatterns: decodeStringList(e.DesignPatterns),
	}
}
