package cli

import (
	"errors"

	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/orchestrator"
)

// Error codes reported in {"type":"error"} events and text errors
const (
	CodeNoProject         = "NO_PROJECT"
	CodeSimulatorNotFound = "SIMULATOR_NOT_FOUND"
	CodeToolFailed        = "TOOL_FAILED"
	CodeListFailed        = "LIST_FAILED"
	CodeInvalidFlags      = "INVALID_FLAGS"
	CodeNotInteractive    = "NOT_INTERACTIVE"
	CodeSelectionCanceled = "SELECTION_CANCELED"
	CodeNoSimulators      = "NO_SIMULATORS"
	CodeRunFailed         = "RUN_FAILED"
	CodeConfigInvalid     = "CONFIG_INVALID"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	h := ""
	if len(hint) > 0 {
		h = hint[0]
	}
	if globals != nil {
		_ = globals.emitter().Error(code, message, h)
	}
	return &CLIError{Code: code, Message: message, Hint: h}
}

// outputError reports err under the code classifyError assigns it
func outputError(globals *Globals, err error) error {
	ce := classifyError(err)
	return outputErrorCommon(globals, ce.Code, ce.Message, ce.Hint)
}

// classifyError maps run failures to error codes and hints
func classifyError(err error) *CLIError {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce
	}

	out := &CLIError{Code: CodeRunFailed, Message: err.Error()}

	var cfgErr *domain.ConfigurationError
	var selErr *domain.SelectionError
	var step *orchestrator.StepError
	var tool *domain.ExternalToolFailure
	switch {
	case errors.As(err, &cfgErr):
		out.Code = CodeNoProject
		out.Hint = hintForProject()
	case errors.As(err, &selErr):
		out.Code = CodeSimulatorNotFound
		out.Hint = hintForSelection(selErr)
	case errors.Is(err, errPickCanceled):
		out.Code = CodeSelectionCanceled
	case errors.As(err, &step) && step.Step == orchestrator.StepList:
		out.Code = CodeListFailed
		out.Hint = hintForTooling(err)
	case errors.As(err, &tool):
		out.Code = CodeToolFailed
		out.Hint = hintForTooling(err)
	}
	if out.Hint == "" && out.Code != CodeSelectionCanceled {
		out.Hint = "Run `runios doctor` for diagnostics"
	}
	return out
}
