package evaluator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Evaluator is the public entry point for design evaluation. It delegates to
// the remote judge and owns the decision of when not to trust its output:
// remote failures and degenerate responses are absorbed into heuristic or
// stub results, so the Evaluate methods never fail for well-formed input.
type Evaluator struct {
	judge  Judge
	logger zerolog.Logger
}

// New constructs an evaluator around the given judge.
func New(judge Judge, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		judge:  judge,
		logger: logger.With().Str("component", "evaluator").Logger(),
	}
}

// EvaluateDesign evaluates one class design. When the remote judgment fails,
// or slips through with a zero score and placeholder-only feedback, the
// heuristic scorer takes over.
func (e *Evaluator) EvaluateDesign(ctx context.Context, design ClassDesign, requirements string) Evaluation {
	evaluation, err := e.judge.JudgeDesign(ctx, design, requirements)
	if err != nil {
		e.logger.Warn().Err(err).Str("class", design.Name).Msg("remote judgment failed, using heuristic scoring")
		return HeuristicEvaluate(design)
	}

	// The judge rejects placeholder feedback already, but a schema-valid
	// response can still be semantically empty. Final backstop.
	if evaluation.OverallScore == 0 && allPlaceholder(evaluation.Feedback) {
		e.logger.Warn().Str("class", design.Name).Msg("remote judgment degenerate, using heuristic scoring")
		return HeuristicEvaluate(design)
	}

	return evaluation
}

// EvaluateDesigns evaluates a batch of class designs in one remote exchange.
// A failed batch falls back to evaluating every design independently, so one
// defective response never blanks out the others; the result always carries
// one evaluation per input name.
func (e *Evaluator) EvaluateDesigns(ctx context.Context, designs map[string]ClassDesign, requirements string) map[string]Evaluation {
	if len(designs) == 0 {
		return map[string]Evaluation{}
	}

	evaluations, err := e.judge.JudgeDesigns(ctx, designs, requirements)
	if err == nil {
		return evaluations
	}

	e.logger.Warn().Err(err).Int("classes", len(designs)).Msg("batch judgment failed, evaluating per class")

	evaluations = make(map[string]Evaluation, len(designs))
	for name, design := range designs {
		evaluations[name] = e.EvaluateDesign(ctx, design, requirements)
	}
	return evaluations
}

// EvaluateImplementations evaluates full class source code, keyed by class
// name. There is no heuristic that can meaningfully judge code quality, so a
// failed batch yields an explicit error stub per class instead of a silent
// downgrade; callers distinguish the outcome by the error-level feedback.
func (e *Evaluator) EvaluateImplementations(ctx context.Context, codeByName map[string]string, requirements string) map[string]Evaluation {
	if len(codeByName) == 0 {
		return map[string]Evaluation{}
	}

	evaluations, err := e.judge.JudgeImplementations(ctx, codeByName, requirements)
	if err == nil {
		return evaluations
	}

	e.logger.Warn().Err(err).Int("classes", len(codeByName)).Msg("implementation judgment failed, returning error stubs")

	evaluations = make(map[string]Evaluation, len(codeByName))
	for name := range codeByName {
		evaluations[name] = Evaluation{
			OverallScore:   0,
			Feedback:       []FeedbackItem{{LevelError, fmt.Sprintf("Failed to evaluate due to: %v", err)}},
			Suggestions:    []string{},
			DesignPatterns: []string{},
		}
	}
	return evaluations
}
