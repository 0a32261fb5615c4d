package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/idesignres/iisim/pkg/compiler"
	"github.com/idesignres/iisim/pkg/expression"
	"github.com/idesignres/iisim/pkg/industry"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/models/rendering"
	"github.com/idesignres/iisim/pkg/observability"
	"github.com/idesignres/iisim/pkg/validation"
	"github.com/sirupsen/logrus"
)

// Compiler compiles and writes one industry
type Compiler interface {
	CompileDir(ctx context.Context, dir string) (*compiler.Result, error)
	Write(result *compiler.Result) (string, error)
	WriteTo(result *compiler.Result, dir string) (string, error)
}

// permanentErrors cannot be fixed by retrying the same documents
var permanentErrors = []error{
	models.ErrInvalidDocument,
	models.ErrUnknownDocumentType,
	models.ErrRangeViolation,
	models.ErrInvalidRange,
	models.ErrMissingOutcome,
	validation.ErrSchemaValidation,
	expression.ErrParse,
	expression.ErrUnboundReference,
	expression.ErrDivisionByZero,
	industry.ErrUnitMismatch,
	industry.ErrCyclicDependency,
	industry.ErrDuplicateProcess,
	industry.ErrDuplicateName,
	industry.ErrGoldenMismatch,
	industry.ErrOutcomeOutOfRange,
	rendering.ErrTemplate,
	compiler.ErrNoIndustry,
	compiler.ErrMultipleIndustries,
}

// TaskHandler handles task execution
type TaskHandler struct {
	compiler Compiler
	log      logrus.FieldLogger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(log logrus.FieldLogger, c Compiler) *TaskHandler {
	return &TaskHandler{
		compiler: c,
		log:      log.WithField("component", "task-handler"),
	}
}

// HandleCompile handles compile tasks. Failures caused by the documents themselves are
// not retried.
func (h *TaskHandler) HandleCompile(ctx context.Context, t *asynq.Task) error {
	var payload CompilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		observability.RecordError("task-handler", "unmarshal_error")
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	if payload.IndustryDir == "" {
		observability.RecordError("task-handler", "invalid_payload")
		return fmt.Errorf("%w: %w", ErrMissingIndustryDir, asynq.SkipRetry)
	}

	log := h.log.WithFields(logrus.Fields{
		"industry": payload.Industry(),
		"trigger":  payload.Trigger,
	})
	log.WithField("queued_for", time.Since(payload.EnqueuedAt)).Info("Starting compile task")

	result, err := h.compiler.CompileDir(ctx, payload.IndustryDir)
	if err != nil {
		log.WithError(err).Error("Compilation failed")

		if isPermanent(err) {
			observability.RecordError("task-handler", "compile_error")
			return fmt.Errorf("compile error: %w: %w", err, asynq.SkipRetry)
		}

		observability.RecordError("task-handler", "transient_error")
		return fmt.Errorf("compile error: %w", err)
	}

	var path string
	if payload.OutputDir != "" {
		path, err = h.compiler.WriteTo(result, payload.OutputDir)
	} else {
		path, err = h.compiler.Write(result)
	}
	if err != nil {
		observability.RecordError("task-handler", "write_error")
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	log.WithFields(logrus.Fields{
		"path":   path,
		"cached": result.Cached,
		"run_id": result.RunID,
	}).Info("Task completed successfully")

	return nil
}

// Routes returns the task handler routes for Asynq
func (h *TaskHandler) Routes() map[string]asynq.HandlerFunc {
	return map[string]asynq.HandlerFunc{
		TypeIndustryCompile: h.HandleCompile,
	}
}

func isPermanent(err error) bool {
	for _, target := range permanentErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
