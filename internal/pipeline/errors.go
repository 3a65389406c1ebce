package pipeline

import (
	"errors"
	"fmt"

	"article-podcaster/internal/extract"
	"article-podcaster/internal/storage"
	"article-podcaster/internal/summarize"
	"article-podcaster/internal/tts"
)

// Step names one independently failable stage of the pipeline.
type Step string

const (
	StepExtract    Step = "extract"
	StepSummarize  Step = "summarize"
	StepSynthesize Step = "synthesize"
	StepStore      Step = "store"
)

// StepError wraps a step's underlying failure so callers can tell a fetch
// problem from a synthesis problem without string matching.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pipeline step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Categorize maps an error to its taxonomy tag. Unknown errors yield "".
func Categorize(err error) string {
	var (
		fetchErr       *extract.FetchError
		contentErr     *extract.InsufficientContentError
		inputErr       *summarize.InvalidInputError
		outputErr      *summarize.InsufficientOutputError
		confErr        *tts.ConfigurationError
		emptyInErr     *tts.EmptyInputError
		emptyOutErr    *tts.EmptyOutputError
		synthErr       *tts.SynthesisError
		unavailableErr *storage.UnavailableError
	)
	switch {
	case errors.As(err, &fetchErr):
		return "fetch_error"
	case errors.As(err, &contentErr):
		return "insufficient_content"
	case errors.As(err, &inputErr):
		return "invalid_input"
	case errors.As(err, &outputErr):
		return "insufficient_output"
	case errors.As(err, &confErr):
		return "configuration_error"
	case errors.As(err, &emptyInErr):
		return "empty_input"
	case errors.As(err, &emptyOutErr):
		return "empty_output"
	case errors.As(err, &synthErr):
		return "synthesis_error"
	case errors.As(err, &unavailableErr):
		return "storage_unavailable"
	}
	return ""
}
