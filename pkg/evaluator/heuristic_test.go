package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreSingleResponsibilityBanding(t *testing.T) {
	cases := []struct {
		name             string
		responsibilities []string
		wantScore        int
		wantLevel        Level
	}{
		{"single", []string{"Log messages"}, 10, LevelGood},
		{"two", []string{"Log messages", "Rotate files"}, 7, LevelWarning},
		{"three", []string{"a", "b", "c"}, 7, LevelWarning},
		{"four", []string{"a", "b", "c", "d"}, 3, LevelError},
		{"none", nil, 7, LevelWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, feedback := scoreSingleResponsibility(ClassDesign{Name: "X", Responsibilities: tc.responsibilities})
			require.Equal(t, tc.wantScore, score)
			require.Len(t, feedback, 1)
			require.Equal(t, tc.wantLevel, feedback[0].Level)
		})
	}
}

func TestScoreEncapsulationSumsIndependentChecks(t *testing.T) {
	design := ClassDesign{
		Name:       "Account",
		Attributes: []string{"_balance", "_owner"},
		Methods:    []string{"get_balance", "set_balance"},
	}

	score, feedback := scoreEncapsulation(design)
	require.Equal(t, 13, score)
	require.Len(t, feedback, 2)
	require.Equal(t, LevelGood, feedback[0].Level)
	require.Equal(t, LevelGood, feedback[1].Level)
}

func TestScoreEncapsulationWithoutSignals(t *testing.T) {
	score, feedback := scoreEncapsulation(ClassDesign{
		Name:       "Logger",
		Attributes: []string{"output"},
		Methods:    []string{"write"},
	})
	require.Equal(t, 2, score)
	require.Len(t, feedback, 1)
	require.Equal(t, LevelWarning, feedback[0].Level)
}

func TestScoreEncapsulationPrivateAttributeOnly(t *testing.T) {
	score, _ := scoreEncapsulation(ClassDesign{
		Name:       "Vault",
		Attributes: []string{"privateKey"},
		Methods:    []string{"open"},
	})
	require.Equal(t, 5, score)
}

func TestScoreAbstractionVerbRatio(t *testing.T) {
	wellNamed := ClassDesign{
		Name:    "CartService",
		Methods: []string{"add_item", "remove_item", "update_item", "get_total"},
	}
	score, feedback := scoreAbstraction(wellNamed)
	require.Equal(t, 8, score)
	require.Equal(t, LevelGood, feedback[0].Level)

	vague := ClassDesign{
		Name:    "Thing",
		Methods: []string{"doStuff", "process", "handle", "run", "go"},
	}
	score, feedback = scoreAbstraction(vague)
	require.Equal(t, 5, score)
	require.Equal(t, LevelWarning, feedback[0].Level)
}

func TestScoreAbstractionZeroMethodsPassesTrivially(t *testing.T) {
	score, feedback := scoreAbstraction(ClassDesign{Name: "Logger"})
	require.Equal(t, 8, score)
	require.Equal(t, LevelGood, feedback[0].Level)
}

func TestHeuristicEvaluateLoggerScenario(t *testing.T) {
	design := ClassDesign{
		Name:             "Logger",
		Responsibilities: []string{"Log messages"},
	}

	evaluation := HeuristicEvaluate(design)

	// 10 (SRP) + 2 (no encapsulation signals) + 8 (vacuous abstraction) = 20.
	require.InDelta(t, 6.7, evaluation.OverallScore, 0.001)
	require.Len(t, evaluation.Feedback, 3)
	require.Equal(t, LevelGood, evaluation.Feedback[0].Level)
	require.Equal(t, LevelWarning, evaluation.Feedback[1].Level)
	require.Equal(t, LevelGood, evaluation.Feedback[2].Level)
}

func TestHeuristicEvaluateScoreStaysInRange(t *testing.T) {
	best := ClassDesign{
		Name:             "Account",
		Responsibilities: []string{"Track balance"},
		Attributes:       []string{"_balance"},
		Methods:          []string{"get_balance", "set_balance"},
	}

	evaluation := HeuristicEvaluate(best)
	require.LessOrEqual(t, evaluation.OverallScore, 10.0)
	require.GreaterOrEqual(t, evaluation.OverallScore, 0.0)
}

func TestHeuristicEvaluateIsIdempotent(t *testing.T) {
	design := ClassDesign{
		Name:             "OrderService",
		Responsibilities: []string{"Manage orders", "Notify shipping"},
		Attributes:       []string{"_orders"},
		Methods:          []string{"create_order", "get_order", "validate_order"},
		Relationships:    []string{"Has-a Order"},
	}

	first := HeuristicEvaluate(design)
	second := HeuristicEvaluate(design)
	require.Equal(t, first, second)
}

func TestGenerateSuggestionsIndependentChecks(t *testing.T) {
	attrs := make([]string, 12)
	for i := range attrs {
		attrs[i] = "field"
	}
	design := ClassDesign{
		Name:       "Order",
		Attributes: attrs,
		Methods:    []string{"get_total", "add_item", "remove_item", "update_item", "create_invoice"},
	}

	suggestions := GenerateSuggestions(design)
	require.Len(t, suggestions, 2)
	require.Contains(t, suggestions[0], "grouping related attributes")
	require.Contains(t, suggestions[1], "validation methods")
}

func TestGenerateSuggestionsAllClear(t *testing.T) {
	suggestions := GenerateSuggestions(ClassDesign{
		Name:       "Order",
		Attributes: []string{"_items"},
		Methods:    []string{"validate_items"},
	})
	require.Empty(t, suggestions)
}

func TestIdentifyPatternsBuilderByNameOnly(t *testing.T) {
	patterns := IdentifyPatterns(ClassDesign{
		Name:          "OrderBuilder",
		Methods:       []string{"with_item", "build"},
		Relationships: []string{"Has-a Order"},
	})
	require.Equal(t, []string{"Builder Pattern"}, patterns)
}

func TestIdentifyPatternsCoOccur(t *testing.T) {
	patterns := IdentifyPatterns(ClassDesign{
		Name:          "VehicleFactoryBuilder",
		Methods:       []string{"create_vehicle"},
		Relationships: []string{"Observer of Inventory"},
	})
	require.Equal(t, []string{"Factory Pattern", "Observer Pattern", "Builder Pattern"}, patterns)
}

func TestIdentifyPatternsNone(t *testing.T) {
	require.Empty(t, IdentifyPatterns(ClassDesign{Name: "Logger", Methods: []string{"write"}}))
}
