package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	judgeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lldlab",
		Subsystem: "judge",
		Name:      "request_duration_seconds",
		Help:      "Duration of remote judgment requests",
	}, []string{"model", "operation"})

	judgeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lldlab",
		Subsystem: "judge",
		Name:      "request_failures_total",
		Help:      "Number of remote judgment failures",
	}, []string{"model", "operation"})
)

// placeholderMessage is the literal text the service has been observed
// echoing back from an unfilled response template. Feedback consisting only
// of this text is treated as a failed call.
const placeholderMessage = "message"

const designBatchDelimiter = "\n\n---\n\n"

// OpenAIConfig defines configuration options for the OpenAI-backed judge.
// APIKey is mandatory; everything else has a usable default. BaseURL
// overrides the API endpoint, which tests use to point at a local server.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	BaseURL     string
	Logger      zerolog.Logger
}

// OpenAIJudge implements Judge against the OpenAI chat completion API.
// Configuration is fixed at construction and read-only afterwards; each call
// is a single blocking round trip with no retries.
type OpenAIJudge struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIJudge builds a judge from the provided configuration. A missing
// API key is a configuration error; callers must treat it as fatal.
func NewOpenAIJudge(cfg OpenAIConfig) (*OpenAIJudge, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIJudge{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/noah-isme/lld-lab-api/pkg/evaluator"),
		logger: logger,
	}, nil
}

// JudgeDesign evaluates a single class design remotely.
func (j *OpenAIJudge) JudgeDesign(ctx context.Context, design ClassDesign, requirements string) (Evaluation, error) {
	systemMsg := "You are an expert software design reviewer. " +
		"Evaluate the given class design for adherence to SOLID principles, " +
		"encapsulation, abstraction, and overall object-oriented quality. " +
		"Provide actionable feedback. Respond ONLY with valid JSON matching the schema: " +
		"{ \"overall_score\": float 0-10, \"feedback\": [[level, message], ...], " +
		"\"suggestions\": [...], \"design_patterns\": [...] } without code-block markdown."
	systemMsg = appendRequirements(systemMsg, requirements)

	content, err := j.complete(ctx, "judge_design", systemMsg, describeDesign(design))
	if err != nil {
		return Evaluation{}, err
	}

	var evaluation Evaluation
	if err := json.Unmarshal([]byte(content), &evaluation); err != nil {
		j.countFailure("judge_design")
		return Evaluation{}, fmt.Errorf("parse evaluation json: %w", err)
	}

	if len(evaluation.Feedback) == 0 || allPlaceholder(evaluation.Feedback) {
		j.countFailure("judge_design")
		return Evaluation{}, fmt.Errorf("judge returned placeholder feedback")
	}

	return evaluation, nil
}

// JudgeDesigns evaluates several class designs in one exchange. Every input
// name must be present in the response or the whole batch fails.
func (j *OpenAIJudge) JudgeDesigns(ctx context.Context, designs map[string]ClassDesign, requirements string) (map[string]Evaluation, error) {
	if len(designs) == 0 {
		return map[string]Evaluation{}, nil
	}

	systemMsg := "You are an expert software design reviewer. " +
		"Evaluate each of the following class designs for adherence to SOLID principles, " +
		"clarity of responsibilities, coupling/cohesion and overall design quality. " +
		"Respond ONLY with valid JSON mapping class names to their evaluation. " +
		"Each value must include 'overall_score', 'feedback', 'suggestions'. " +
		"The field 'feedback' is a list of [level, message] pairs and " +
		"'suggestions' is a list of strings. " +
		"Do not include any markdown code fences or extra keys in the response."
	systemMsg = appendRequirements(systemMsg, requirements)

	parts := make([]string, 0, len(designs))
	for _, name := range sortedKeys(designs) {
		parts = append(parts, describeDesign(designs[name]))
	}

	content, err := j.complete(ctx, "judge_designs", systemMsg, strings.Join(parts, designBatchDelimiter))
	if err != nil {
		return nil, err
	}

	return j.parseBatch(content, "judge_designs", keysOf(designs))
}

// JudgeImplementations evaluates full class source code in one exchange and
// additionally asks for applicable design patterns per class.
func (j *OpenAIJudge) JudgeImplementations(ctx context.Context, codeByName map[string]string, requirements string) (map[string]Evaluation, error) {
	if len(codeByName) == 0 {
		return map[string]Evaluation{}, nil
	}

	systemMsg := "You are an expert software engineer and code reviewer. " +
		"Evaluate each of the following class implementations for code quality, " +
		"adherence to SOLID principles, readability, and also suggest the best " +
		"design patterns for the class. Respond ONLY with valid JSON mapping class " +
		"names to their evaluation. Each value must include 'overall_score', " +
		"'feedback', 'suggestions', 'design_patterns'. The field 'feedback' is a " +
		"list of [level, message] pairs; 'suggestions' and 'design_patterns' are " +
		"lists of strings, each design pattern accompanied by an explanation. " +
		"Do not include any markdown code fences in the response."
	systemMsg = appendRequirements(systemMsg, requirements)

	names := make([]string, 0, len(codeByName))
	for name := range codeByName {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("Class Name: %s\nCode:\n```\n%s\n```", name, codeByName[name]))
	}

	content, err := j.complete(ctx, "judge_implementations", systemMsg, strings.Join(parts, designBatchDelimiter))
	if err != nil {
		return nil, err
	}

	return j.parseBatch(content, "judge_implementations", names)
}

func (j *OpenAIJudge) complete(parent context.Context, operation, systemMsg, userMsg string) (string, error) {
	ctx, span := j.tracer.Start(parent, "openai."+operation, trace.WithAttributes(
		attribute.String("model", j.cfg.Model),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, j.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       j.cfg.Model,
		MaxTokens:   j.cfg.MaxTokens,
		Temperature: j.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	judgeDuration.WithLabelValues(j.cfg.Model, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		j.countFailure(operation)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai %s: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		j.countFailure(operation)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (j *OpenAIJudge) parseBatch(content, operation string, names []string) (map[string]Evaluation, error) {
	var evaluations map[string]Evaluation
	if err := json.Unmarshal([]byte(content), &evaluations); err != nil {
		j.countFailure(operation)
		return nil, fmt.Errorf("parse batch evaluation json: %w", err)
	}

	for _, name := range names {
		if _, ok := evaluations[name]; !ok {
			j.countFailure(operation)
			return nil, fmt.Errorf("missing evaluation for class %q in response", name)
		}
	}

	return evaluations, nil
}

func (j *OpenAIJudge) countFailure(operation string) {
	judgeFailures.WithLabelValues(j.cfg.Model, operation).Inc()
}

func describeDesign(design ClassDesign) string {
	return fmt.Sprintf(
		"Class Name: %s\nResponsibilities: %s\nAttributes: %s\nMethods: %s\nRelationships: %s",
		design.Name,
		strings.Join(design.Responsibilities, ", "),
		strings.Join(design.Attributes, ", "),
		strings.Join(design.Methods, ", "),
		strings.Join(design.Relationships, ", "),
	)
}

func appendRequirements(systemMsg, requirements string) string {
	if strings.TrimSpace(requirements) == "" {
		return systemMsg
	}
	return systemMsg + "\n\nProblem Requirements:\n" + strings.TrimSpace(requirements)
}

func allPlaceholder(feedback []FeedbackItem) bool {
	for _, item := range feedback {
		if strings.ToLower(strings.TrimSpace(item.Message)) != placeholderMessage {
			return false
		}
	}
	return len(feedback) > 0
}

func sortedKeys(designs map[string]ClassDesign) []string {
	names := keysOf(designs)
	sort.Strings(names)
	return names
}

func keysOf(designs map[string]ClassDesign) []string {
	names := make([]string, 0, len(designs))
	for name := range designs {
		names = append(names, name)
	}
	return names
}
