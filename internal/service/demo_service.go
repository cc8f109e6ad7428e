package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/pkg/sandbox"
)

// DemoService runs user implementation code for the demo stage. Execution
// always happens inside the sandbox executor with network disabled and
// memory/CPU/time limits; nothing is persisted.
type DemoService interface {
	Run(ctx context.Context, payload dto.DemoRequest) (dto.DemoResponse, error)
}

// ErrUnsupportedLanguage indicates the requested language is not allowed.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrSandboxUnavailable indicates the sandbox executor is not configured.
var ErrSandboxUnavailable = errors.New("sandbox unavailable")

// DemoConfig describes demo execution knobs.
type DemoConfig struct {
	Timeout       time.Duration
	MemoryLimitMB int
	CPUShares     int
	WorkspaceRoot string
}

type languageConfig struct {
	Image    string
	FileName string
	Command  []string
}

type demoService struct {
	executor  sandbox.Executor
	validator *validator.Validate
	logger    zerolog.Logger
	config    DemoConfig
	languages map[string]languageConfig
}

// NewDemoService constructs a new demo service.
func NewDemoService(executor sandbox.Executor, validate *validator.Validate, logger zerolog.Logger, cfg DemoConfig) DemoService {
	if cfg.WorkspaceRoot == "" {
		cfg.WorkspaceRoot = os.TempDir()
	}

	return &demoService{
		executor:  executor,
		validator: validate,
		logger:    logger.With().Str("component", "demo_service").Logger(),
		config:    cfg,
		languages: map[string]languageConfig{
			"python": {
				Image:    "python:3.11-alpine",
				FileName: "main.py",
				Command:  []string{"python", "main.py"},
			},
			"javascript": {
				Image:    "node:20-alpine",
				FileName: "main.js",
				Command:  []string{"node", "main.js"},
			},
			"go": {
				Image:    "golang:1.22-alpine",
				FileName: "main.go",
				Command:  []string{"sh", "-c", "go run main.go"},
			},
		},
	}
}

func (s *demoService) Run(ctx context.Context, payload dto.DemoRequest) (dto.DemoResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DemoResponse{}, err
	}
	if s.executor == nil {
		return dto.DemoResponse{}, ErrSandboxUnavailable
	}

	language := strings.ToLower(strings.TrimSpace(payload.Language))
	langCfg, ok := s.languages[language]
	if !ok {
		return dto.DemoResponse{}, ErrUnsupportedLanguage
	}

	workspace, err := os.MkdirTemp(s.config.WorkspaceRoot, "demo-")
	if err != nil {
		return dto.DemoResponse{}, fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	filePath := filepath.Join(workspace, langCfg.FileName)
	if err := os.WriteFile(filePath, []byte(payload.Source), 0600); err != nil {
		return dto.DemoResponse{}, fmt.Errorf("write source: %w", err)
	}

	result, runErr := s.executor.Run(ctx, sandbox.RunRequest{
		Image:         langCfg.Image,
		Cmd:           langCfg.Command,
		Timeout:       s.config.Timeout,
		Workspace:     workspace,
		MemoryLimitMB: int64(s.config.MemoryLimitMB),
		CPUShares:     int64(s.config.CPUShares),
	})

	response := dto.DemoResponse{
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		ExitCode:   result.ExitCode,
		DurationMs: result.Duration.Milliseconds(),
		TimedOut:   result.TimedOut,
	}

	if runErr != nil && !result.TimedOut {
		s.logger.Error().Err(runErr).Str("language", language).Msg("demo run failed")
		if response.Stderr == "" {
			response.Stderr = runErr.Error()
		}
	}

	return response, nil
}
