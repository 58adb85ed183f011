package commands

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// DefaultTimeout bounds a command execution unless overridden.
const DefaultTimeout = 30 * time.Second

// Outcome classifies a finished execution for observers.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeFailed       Outcome = "failed"
	OutcomeRejected     Outcome = "rejected"
	OutcomeContextError Outcome = "context_error"
)

// Observer is notified after every execution, successful or not.
type Observer func(ctx context.Context, command string, outcome Outcome, elapsed time.Duration, err error)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a command function with message validation, a deadline,
// structured logging and go-errors categorisation.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	observer  Observer
	now       func() time.Time
}

// NewHandler creates a handler satisfying go-command's Commander interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute validates msg, then runs the wrapped function under the handler
// deadline. Returned errors always carry a go-errors category.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	started := h.now()
	name := command.GetMessageType(msg)

	if err := command.ValidateMessage(msg); err != nil {
		h.observe(ctx, name, OutcomeRejected, started, err)
		return wrapValidationError(err)
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		h.observe(ctx, name, OutcomeContextError, started, err)
		return wrapContextError(err)
	}

	fields := map[string]any{"command": name}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	if err := h.exec(ctx, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			logger.Error("command.execute.context_error", "error", err)
			h.observe(ctx, name, OutcomeContextError, started, err)
			return wrapContextError(ctxErr)
		}
		logger.Error("command.execute.failed", "error", err)
		h.observe(ctx, name, OutcomeFailed, started, err)
		return wrapExecuteError(err)
	}

	logger.Info("command.execute.success", "duration_ms", h.now().Sub(started).Milliseconds())
	h.observe(ctx, name, OutcomeSuccess, started, nil)
	return nil
}

func (h *Handler[T]) observe(ctx context.Context, name string, outcome Outcome, started time.Time, err error) {
	if h.observer != nil {
		h.observer(ctx, name, outcome, h.now().Sub(started), err)
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}

// WithTimeout overrides the execution timeout; zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			logger = logging.NoOp()
		}
		h.logger = logger
	}
}

// WithOperation sets the operation name logged with every entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithObserver registers a callback run after each execution.
func WithObserver[T command.Message](observer Observer) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.observer = observer
	}
}

// Registry accepts command handlers, for example a go-command dispatcher
// adapter or a recorder in tests.
type Registry interface {
	RegisterCommand(handler any) error
}

// RecordingRegistry keeps registered handlers in order.
type RecordingRegistry struct {
	Handlers []any
}

func (r *RecordingRegistry) RegisterCommand(handler any) error {
	r.Handlers = append(r.Handlers, handler)
	return nil
}
