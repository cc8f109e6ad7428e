package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ClassDesign is the structured description of one class as sketched by the
// user: what it is responsible for, what it holds, what it does, and how it
// relates to other classes. Code carries the optional implementation source
// once the user reaches the coding stage; empty means not yet implemented.
type ClassDesign struct {
	Name             string   `json:"name"`
	Responsibilities []string `json:"responsibilities"`
	Attributes       []string `json:"attributes"`
	Methods          []string `json:"methods"`
	Relationships    []string `json:"relationships"`
	Code             string   `json:"code,omitempty"`
}

// Level categorises a feedback entry.
type Level string

// Feedback levels.
const (
	LevelGood    Level = "good"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// NormalizeLevel folds case and the aliases the remote judge has been seen
// using (success, recommendation, critical) onto the canonical levels.
// Anything unrecognised becomes info.
func NormalizeLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "good", "success":
		return LevelGood
	case "warning", "recommendation":
		return LevelWarning
	case "error", "critical":
		return LevelError
	case "info":
		return LevelInfo
	default:
		return LevelInfo
	}
}

// FeedbackItem is one categorised feedback message.
//
// On the wire it is a two-element array ["level", "message"]; the remote
// judge sometimes returns {"level": ..., "message": ...} objects instead, so
// unmarshalling accepts both and normalises the level. Every component past
// this boundary only ever sees the normalised form.
type FeedbackItem struct {
	Level   Level
	Message string
}

// MarshalJSON encodes the item as a ["level","message"] pair.
func (f FeedbackItem) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(f.Level), f.Message})
}

// UnmarshalJSON decodes either the pair form or the object form.
func (f *FeedbackItem) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("feedback pair must have 2 elements, got %d", len(pair))
		}
		f.Level = NormalizeLevel(pair[0])
		f.Message = pair[1]
		return nil
	}

	var obj struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("feedback item is neither a pair nor an object: %w", err)
	}
	f.Level = NormalizeLevel(obj.Level)
	f.Message = obj.Message
	return nil
}

// Evaluation is the quality assessment produced for one class design or
// implementation. OverallScore lives in [0, 10].
type Evaluation struct {
	OverallScore   float64        `json:"overall_score"`
	Feedback       []FeedbackItem `json:"feedback"`
	Suggestions    []string       `json:"suggestions"`
	DesignPatterns []string       `json:"design_patterns"`
}

// Judge obtains evaluations from an external judgment source. Implementations
// perform a single attempt per call; the orchestrator owns all fallback
// behaviour, so a Judge error is never fatal to callers of the Evaluator.
type Judge interface {
	// JudgeDesign evaluates one class design, optionally scoped by the
	// problem requirements.
	JudgeDesign(ctx context.Context, design ClassDesign, requirements string) (Evaluation, error)

	// JudgeDesigns evaluates several class designs in a single exchange and
	// returns one evaluation per class name. An error means the whole batch
	// is unusable.
	JudgeDesigns(ctx context.Context, designs map[string]ClassDesign, requirements string) (map[string]Evaluation, error)

	// JudgeImplementations evaluates full class source code, keyed by class
	// name, and additionally reports applicable design patterns.
	JudgeImplementations(ctx context.Context, codeByName map[string]string, requirements string) (map[string]Evaluation, error)
}
