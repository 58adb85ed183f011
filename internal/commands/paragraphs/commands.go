package paragraphscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-bootstrap/internal/commands"
	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	addMessageType       = "paragraphs.add"
	duplicateMessageType = "paragraphs.duplicate"
	deleteMessageType    = "paragraphs.delete"
)

// AddCommand appends a paragraph to a host field.
type AddCommand struct {
	ParagraphType string         `json:"paragraph_type"`
	EntityType    string         `json:"entity_type"`
	EntityID      string         `json:"entity_id"`
	EntityField   string         `json:"entity_field"`
	Content       map[string]any `json:"content,omitempty"`
	OwnerID       string         `json:"owner_id,omitempty"`
	ActorID       string         `json:"actor_id,omitempty"`
}

func (AddCommand) Type() string { return addMessageType }

func (m AddCommand) Validate() error {
	errs := validation.Errors{}
	required := map[string]string{
		"paragraph_type": m.ParagraphType,
		"entity_type":    m.EntityType,
		"entity_id":      m.EntityID,
		"entity_field":   m.EntityField,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = validation.NewError("paragraphs.add."+field+"_required", field+" is required")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DuplicateCommand clones a paragraph to the end of its field.
type DuplicateCommand struct {
	ID      uuid.UUID `json:"id"`
	ActorID string    `json:"actor_id,omitempty"`
}

func (DuplicateCommand) Type() string { return duplicateMessageType }

func (m DuplicateCommand) Validate() error { return requireID("paragraphs.duplicate", m.ID) }

// DeleteCommand removes a paragraph.
type DeleteCommand struct {
	ID      uuid.UUID `json:"id"`
	ActorID string    `json:"actor_id,omitempty"`
}

func (DeleteCommand) Type() string { return deleteMessageType }

func (m DeleteCommand) Validate() error { return requireID("paragraphs.delete", m.ID) }

func requireID(prefix string, id uuid.UUID) error {
	if id == uuid.Nil {
		return validation.Errors{"id": validation.NewError(prefix+".id_required", "id is required")}
	}
	return nil
}

// NewAddHandler wires AddCommand to service.
func NewAddHandler(service paragraphs.Service, logger interfaces.Logger, opts ...commands.HandlerOption[AddCommand]) *commands.Handler[AddCommand] {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg AddCommand) error {
		created, err := service.Add(ctx, paragraphs.AddInput{
			Field: paragraphs.FieldRef{
				EntityType: msg.EntityType,
				EntityID:   msg.EntityID,
				Field:      msg.EntityField,
			},
			Type:    msg.ParagraphType,
			Content: msg.Content,
			OwnerID: msg.OwnerID,
			ActorID: msg.ActorID,
		})
		if err != nil {
			return err
		}
		logger.Info("paragraphs.command.added", "paragraph_id", created.ID.String(), "delta", created.Delta)
		return nil
	}
	base := []commands.HandlerOption[AddCommand]{
		commands.WithLogger[AddCommand](logger),
		commands.WithOperation[AddCommand]("paragraphs.add"),
	}
	return commands.NewHandler(exec, append(base, opts...)...)
}

// NewDuplicateHandler wires DuplicateCommand to service.
func NewDuplicateHandler(service paragraphs.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DuplicateCommand]) *commands.Handler[DuplicateCommand] {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg DuplicateCommand) error {
		created, err := service.Duplicate(ctx, paragraphs.DuplicateRequest{ID: msg.ID, ActorID: msg.ActorID})
		if err != nil {
			return err
		}
		logger.Info("paragraphs.command.duplicated", "paragraph_id", created.ID.String(), "source_id", msg.ID.String())
		return nil
	}
	base := []commands.HandlerOption[DuplicateCommand]{
		commands.WithLogger[DuplicateCommand](logger),
		commands.WithOperation[DuplicateCommand]("paragraphs.duplicate"),
	}
	return commands.NewHandler(exec, append(base, opts...)...)
}

// NewDeleteHandler wires DeleteCommand to service.
func NewDeleteHandler(service paragraphs.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteCommand]) *commands.Handler[DeleteCommand] {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg DeleteCommand) error {
		return service.Delete(ctx, paragraphs.DeleteRequest{ID: msg.ID, ActorID: msg.ActorID})
	}
	base := []commands.HandlerOption[DeleteCommand]{
		commands.WithLogger[DeleteCommand](logger),
		commands.WithOperation[DeleteCommand]("paragraphs.delete"),
	}
	return commands.NewHandler(exec, append(base, opts...)...)
}

// Register adds every paragraphs handler to registry.
func Register(registry commands.Registry, service paragraphs.Service, logger interfaces.Logger) error {
	for _, handler := range []any{
		NewAddHandler(service, logger),
		NewDuplicateHandler(service, logger),
		NewDeleteHandler(service, logger),
	} {
		if err := registry.RegisterCommand(handler); err != nil {
			return err
		}
	}
	return nil
}
