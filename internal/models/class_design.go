package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/lld-lab-api/pkg/evaluator"
)

// ClassDesign persists one class sketched by the user for a problem. The
// list-shaped fields are stored as JSON arrays; Code holds the optional
// implementation source the user writes during the coding stage.
//
// A class name is unique within its problem.
type ClassDesign struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ProblemID        uint           `gorm:"not null;uniqueIndex:idx_problem_class" json:"problem_id"`
	Name             string         `gorm:"size:255;not null;uniqueIndex:idx_problem_class" json:"name"`
	Responsibilities datatypes.JSON `gorm:"not null" json:"responsibilities"`
	Attributes       datatypes.JSON `gorm:"not null" json:"attributes"`
	Methods          datatypes.JSON `gorm:"not null" json:"methods"`
	Relationships    datatypes.JSON `gorm:"not null" json:"relationships"`
	Code             string         `gorm:"type:text" json:"code"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Evaluations      []Evaluation   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"evaluations,omitempty"`
}

// StringList encodes a slice of strings into a JSON column value. A nil
// slice encodes as an empty array so the column stays non-null.
func StringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

func decodeStringList(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return []string{}
	}
	return values
}

// ResponsibilityList returns the decoded responsibilities.
func (c ClassDesign) ResponsibilityList() []string { return decodeStringList(c.Responsibilities) }

// AttributeList returns the decoded attributes.
func (c ClassDesign) AttributeList() []string { return decodeStringList(c.Attributes) }

// MethodList returns the decoded methods.
func (c ClassDesign) MethodList() []string { return decodeStringList(c.Methods) }

// RelationshipList returns the decoded relationships.
func (c ClassDesign) RelationshipList() []string { return decodeStringList(c.Relationships) }

// HasImplementation reports whether the user has written any code yet.
func (c ClassDesign) HasImplementation() bool {
	return c.Code != ""
}

// ToEvaluatorDesign converts the stored row into the evaluator's input form.
func (c ClassDesign) ToEvaluatorDesign() evaluator.ClassDesign {
	return evaluator.ClassDesign{
		Name:             c.Name,
		Responsibilities: c.ResponsibilityList(),
		Attributes:       c.AttributeList(),
		Methods:          c.MethodList(),
		Relationships:    c.RelationshipList(),
		Code:             c.Code,
	}
}
