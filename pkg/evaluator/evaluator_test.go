package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubJudge struct {
	design      Evaluation
	designErr   error
	batch       map[string]Evaluation
	batchErr    error
	implBatch   map[string]Evaluation
	implErr     error
	designCalls int
	batchCalls  int
	implCalls   int
}

func (s *stubJudge) JudgeDesign(ctx context.Context, design ClassDesign, requirements string) (Evaluation, error) {
	s.designCalls++
	if s.designErr != nil {
		return Evaluation{}, s.designErr
	}
	return s.design, nil
}

func (s *stubJudge) JudgeDesigns(ctx context.Context, designs map[string]ClassDesign, requirements string) (map[string]Evaluation, error) {
	s.batchCalls++
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	return s.batch, nil
}

func (s *stubJudge) JudgeImplementations(ctx context.Context, codeByName map[string]string, requirements string) (map[string]Evaluation, error) {
	s.implCalls++
	if s.implErr != nil {
		return nil, s.implErr
	}
	return s.implBatch, nil
}

var loggerDesign = ClassDesign{
	Name:             "Logger",
	Responsibilities: []string{"Log messages"},
}

func TestEvaluateDesignTrustsValidRemoteResult(t *testing.T) {
	remote := Evaluation{
		OverallScore:   8.5,
		Feedback:       []FeedbackItem{{LevelGood, "Looks solid overall"}},
		Suggestions:    []string{"Maybe add docstrings for public methods"},
		DesignPatterns: []string{"Factory"},
	}
	judge := &stubJudge{design: remote}
	e := New(judge, zerolog.Nop())

	result := e.EvaluateDesign(context.Background(), loggerDesign, "")
	require.Equal(t, remote, result)
	require.Equal(t, 1, judge.designCalls)
}

func TestEvaluateDesignFallsBackOnJudgeError(t *testing.T) {
	judge := &stubJudge{designErr: errors.New("service unreachable")}
	e := New(judge, zerolog.Nop())

	result := e.EvaluateDesign(context.Background(), loggerDesign, "requirements text")
	require.Equal(t, HeuristicEvaluate(loggerDesign), result)
}

func TestEvaluateDesignDetectsDegenerateOutput(t *testing.T) {
	degenerate := Evaluation{
		OverallScore: 0,
		Feedback:     []FeedbackItem{{LevelInfo, "message"}},
	}
	judge := &stubJudge{design: degenerate}
	e := New(judge, zerolog.Nop())

	result := e.EvaluateDesign(context.Background(), loggerDesign, "")
	require.NotEqual(t, degenerate, result)
	require.Equal(t, HeuristicEvaluate(loggerDesign), result)
}

func TestEvaluateDesignKeepsZeroScoreWithRealFeedback(t *testing.T) {
	harsh := Evaluation{
		OverallScore: 0,
		Feedback:     []FeedbackItem{{LevelError, "This design has no coherent responsibility"}},
	}
	judge := &stubJudge{design: harsh}
	e := New(judge, zerolog.Nop())

	result := e.EvaluateDesign(context.Background(), loggerDesign, "")
	require.Equal(t, harsh, result)
}

func TestEvaluateDesignsUsesBatchResult(t *testing.T) {
	batch := map[string]Evaluation{
		"Logger": {OverallScore: 7, Feedback: []FeedbackItem{{LevelGood, "ok"}}},
		"Cart":   {OverallScore: 9, Feedback: []FeedbackItem{{LevelGood, "great"}}},
	}
	judge := &stubJudge{batch: batch}
	e := New(judge, zerolog.Nop())

	designs := map[string]ClassDesign{
		"Logger": loggerDesign,
		"Cart":   {Name: "Cart", Responsibilities: []string{"Hold items"}},
	}

	result := e.EvaluateDesigns(context.Background(), designs, "")
	require.Equal(t, batch, result)
	require.Equal(t, 0, judge.designCalls)
}

func TestEvaluateDesignsFallsBackPerClass(t *testing.T) {
	judge := &stubJudge{
		batchErr:  errors.New("malformed batch json"),
		designErr: errors.New("service unreachable"),
	}
	e := New(judge, zerolog.Nop())

	designs := map[string]ClassDesign{
		"Logger": loggerDesign,
		"Cart":   {Name: "Cart", Responsibilities: []string{"Hold items"}, Methods: []string{"add_item"}},
	}

	result := e.EvaluateDesigns(context.Background(), designs, "")
	require.Len(t, result, 2)
	require.Equal(t, HeuristicEvaluate(designs["Logger"]), result["Logger"])
	require.Equal(t, HeuristicEvaluate(designs["Cart"]), result["Cart"])
	require.Equal(t, 2, judge.designCalls)
}

func TestEvaluateDesignsEmptyInputSkipsJudge(t *testing.T) {
	judge := &stubJudge{}
	e := New(judge, zerolog.Nop())

	result := e.EvaluateDesigns(context.Background(), nil, "")
	require.Empty(t, result)
	require.Equal(t, 0, judge.batchCalls)
}

func TestEvaluateImplementationsReturnsErrorStubs(t *testing.T) {
	judge := &stubJudge{implErr: errors.New("rate limited")}
	e := New(judge, zerolog.Nop())

	code := map[string]string{
		"Logger": "class Logger: pass",
		"Cart":   "class Cart: pass",
	}

	result := e.EvaluateImplementations(context.Background(), code, "")
	require.Len(t, result, 2)
	for name := range code {
		stub := result[name]
		require.Zero(t, stub.OverallScore)
		require.Len(t, stub.Feedback, 1)
		require.Equal(t, LevelError, stub.Feedback[0].Level)
		require.Contains(t, stub.Feedback[0].Message, "Failed to evaluate due to: rate limited")
		require.Empty(t, stub.Suggestions)
		require.Empty(t, stub.DesignPatterns)
	}
}

func TestEvaluateImplementationsPassesThroughSuccess(t *testing.T) {
	batch := map[string]Evaluation{
		"Logger": {
			OverallScore:   8,
			Feedback:       []FeedbackItem{{LevelGood, "clean"}},
			DesignPatterns: []string{"Singleton Pattern - single shared logger instance"},
		},
	}
	judge := &stubJudge{implBatch: batch}
	e := New(judge, zerolog.Nop())

	result := e.EvaluateImplementations(context.Background(), map[string]string{"Logger": "class Logger: pass"}, "")
	require.Equal(t, batch, result)
}
