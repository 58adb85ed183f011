package commands

import (
	"errors"
	"time"

	"github.com/goliatone/go-cms-bootstrap/internal/commands"
	carouselcmd "github.com/goliatone/go-cms-bootstrap/internal/commands/carousel"
	paragraphscmd "github.com/goliatone/go-cms-bootstrap/internal/commands/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/di"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or queues.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
	// Observer is notified after every handler execution.
	Observer commands.Observer
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe tears down every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// ErrCommandsDisabled is returned when the container was built without the
// command layer.
var ErrCommandsDisabled = errors.New("commands: command layer disabled in configuration")

// RegisterContainerCommands builds the carousel and paragraphs handlers for
// the services wired in container and registers them with the optional
// registry and dispatcher.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}
	cfg := container.Config
	if !cfg.Commands.Enabled {
		return &RegistrationResult{}, ErrCommandsDisabled
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	timeout := cfg.Commands.Timeout

	// Carousel commands.
	if service := container.CarouselService(); service != nil {
		gates := carouselcmd.FeatureGates{
			CarouselEnabled: func() bool { return cfg.Features.Carousel },
		}
		logger := commands.CommandLogger(provider, "carousel")
		register(carouselcmd.NewSaveSettingsHandler(service, logger, gates, handlerOptions[carouselcmd.SaveSettingsCommand](timeout, opts.Observer)...))
		register(carouselcmd.NewCreateItemHandler(service, logger, gates, handlerOptions[carouselcmd.CreateItemCommand](timeout, opts.Observer)...))
		register(carouselcmd.NewDeleteItemHandler(service, logger, gates, handlerOptions[carouselcmd.DeleteItemCommand](timeout, opts.Observer)...))
	}

	// Paragraph commands.
	if service := container.ParagraphService(); service != nil {
		logger := commands.CommandLogger(provider, "paragraphs")
		register(paragraphscmd.NewAddHandler(service, logger, handlerOptions[paragraphscmd.AddCommand](timeout, opts.Observer)...))
		register(paragraphscmd.NewDuplicateHandler(service, logger, handlerOptions[paragraphscmd.DuplicateCommand](timeout, opts.Observer)...))
		register(paragraphscmd.NewDeleteHandler(service, logger, handlerOptions[paragraphscmd.DeleteCommand](timeout, opts.Observer)...))
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; enable the carousel or paragraph tabs feature")
	}

	return result, errs
}

func handlerOptions[T command.Message](timeout time.Duration, observer commands.Observer) []commands.HandlerOption[T] {
	opts := []commands.HandlerOption[T]{}
	if timeout > 0 {
		opts = append(opts, commands.WithTimeout[T](timeout))
	}
	if observer != nil {
		opts = append(opts, commands.WithObserver[T](observer))
	}
	return opts
}
