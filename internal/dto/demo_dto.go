package dto

// DemoRequest asks for a sandboxed run of the user's implementation code so
// they can watch their classes interact. The source is executed inside an
// isolated container, never in-process.
type DemoRequest struct {
	Language string `json:"language" validate:"required"`
	Source   string `json:"source" validate:"required,min=1"`
}

// DemoResponse summarises the outcome of a sandboxed demo run.
type DemoResponse struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ExitCode   int    `json:"exit_code"`
	DurationMs int64  `json:"duration_ms"`
	TimedOut   bool   `json:"timed_out"`
}
