package commands

import (
	"fmt"

	"github.com/goliatone/go-cms-bootstrap/internal/commands"
	carouselcmd "github.com/goliatone/go-cms-bootstrap/internal/commands/carousel"
	paragraphscmd "github.com/goliatone/go-cms-bootstrap/internal/commands/paragraphs"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// GoCommandDispatcher subscribes bootstrap handlers to the go-command
// dispatcher so messages sent with dispatcher.Dispatch reach them.
type GoCommandDispatcher struct {
	options []runner.Option
}

var _ CommandDispatcher = (*GoCommandDispatcher)(nil)

// NewGoCommandDispatcher returns a dispatcher adapter applying opts, such as
// runner.WithMaxRetries, to every subscription.
func NewGoCommandDispatcher(opts ...runner.Option) *GoCommandDispatcher {
	return &GoCommandDispatcher{options: opts}
}

// RegisterCommand subscribes handler. Only the bootstrap handler types are
// accepted since the dispatcher is keyed by message type.
func (d *GoCommandDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *commands.Handler[carouselcmd.SaveSettingsCommand]:
		return subscribe(h, d.options), nil
	case *commands.Handler[carouselcmd.CreateItemCommand]:
		return subscribe(h, d.options), nil
	case *commands.Handler[carouselcmd.DeleteItemCommand]:
		return subscribe(h, d.options), nil
	case *commands.Handler[paragraphscmd.AddCommand]:
		return subscribe(h, d.options), nil
	case *commands.Handler[paragraphscmd.DuplicateCommand]:
		return subscribe(h, d.options), nil
	case *commands.Handler[paragraphscmd.DeleteCommand]:
		return subscribe(h, d.options), nil
	default:
		return nil, fmt.Errorf("commands: unsupported handler type %T", handler)
	}
}

func subscribe[T command.Message](handler *commands.Handler[T], opts []runner.Option) CommandSubscription {
	return dispatcher.SubscribeCommand(handler, opts...)
}
