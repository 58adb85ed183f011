package carouselcmd

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/commands"
	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

const (
	saveSettingsMessageType = "carousel.settings.save"
	createItemMessageType   = "carousel.item.create"
	deleteItemMessageType   = "carousel.item.delete"
)

var ErrCarouselModuleDisabled = errors.New("carousel command: module disabled")

// FeatureGates exposes the runtime toggles carousel handlers consult.
type FeatureGates struct {
	CarouselEnabled func() bool
}

func (g FeatureGates) carouselEnabled() bool {
	return g.CarouselEnabled == nil || g.CarouselEnabled()
}

// SaveSettingsCommand stores the carousel block settings.
type SaveSettingsCommand struct {
	Settings carousel.Settings `json:"settings"`
	ActorID  string            `json:"actor_id,omitempty"`
}

func (SaveSettingsCommand) Type() string { return saveSettingsMessageType }

func (m SaveSettingsCommand) Validate() error {
	return validation.ValidateStruct(&m.Settings,
		validation.Field(&m.Settings.Interval, validation.Min(0)),
	)
}

// CreateItemCommand adds a slide.
type CreateItemCommand struct {
	ImageID      string          `json:"image_id"`
	ImageAlt     string          `json:"image_alt,omitempty"`
	ImageTitle   string          `json:"image_title,omitempty"`
	ImageLink    string          `json:"image_link,omitempty"`
	CaptionTitle string          `json:"caption_title,omitempty"`
	CaptionText  string          `json:"caption_text,omitempty"`
	Weight       int             `json:"weight"`
	Status       carousel.Status `json:"status"`
	ActorID      string          `json:"actor_id,omitempty"`
}

func (CreateItemCommand) Type() string { return createItemMessageType }

func (m CreateItemCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.ImageID) == "" {
		errs["image_id"] = validation.NewError("carousel.item.create.image_required", "image_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteItemCommand removes a slide.
type DeleteItemCommand struct {
	ID      uuid.UUID `json:"id"`
	ActorID string    `json:"actor_id,omitempty"`
}

func (DeleteItemCommand) Type() string { return deleteItemMessageType }

func (m DeleteItemCommand) Validate() error {
	if m.ID == uuid.Nil {
		return validation.Errors{"id": validation.NewError("carousel.item.delete.id_required", "id is required")}
	}
	return nil
}

// NewSaveSettingsHandler wires SaveSettingsCommand to service.
func NewSaveSettingsHandler(service carousel.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SaveSettingsCommand]) *commands.Handler[SaveSettingsCommand] {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg SaveSettingsCommand) error {
		if !gates.carouselEnabled() {
			return ErrCarouselModuleDisabled
		}
		stored, err := service.SaveSettings(ctx, carousel.SaveSettingsInput{Settings: msg.Settings, ActorID: msg.ActorID})
		if err != nil {
			return err
		}
		logger.Info("carousel.command.settings.saved", "image_style", stored.ImageStyle)
		return nil
	}
	return commands.NewHandler(exec, withDefaults(logger, "carousel.settings.save", opts)...)
}

// NewCreateItemHandler wires CreateItemCommand to service.
func NewCreateItemHandler(service carousel.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CreateItemCommand]) *commands.Handler[CreateItemCommand] {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg CreateItemCommand) error {
		if !gates.carouselEnabled() {
			return ErrCarouselModuleDisabled
		}
		item, err := service.CreateItem(ctx, carousel.CreateItemInput{
			ImageID:      msg.ImageID,
			ImageAlt:     msg.ImageAlt,
			ImageTitle:   msg.ImageTitle,
			ImageLink:    msg.ImageLink,
			CaptionTitle: msg.CaptionTitle,
			CaptionText:  msg.CaptionText,
			Weight:       msg.Weight,
			Status:       msg.Status,
			ActorID:      msg.ActorID,
		})
		if err != nil {
			return err
		}
		logger.Info("carousel.command.item.created", "item_id", item.ID.String())
		return nil
	}
	return commands.NewHandler(exec, withDefaults(logger, "carousel.item.create", opts)...)
}

// NewDeleteItemHandler wires DeleteItemCommand to service.
func NewDeleteItemHandler(service carousel.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DeleteItemCommand]) *commands.Handler[DeleteItemCommand] {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg DeleteItemCommand) error {
		if !gates.carouselEnabled() {
			return ErrCarouselModuleDisabled
		}
		if err := service.DeleteItem(ctx, carousel.DeleteItemRequest{ID: msg.ID, ActorID: msg.ActorID}); err != nil {
			return err
		}
		logger.Info("carousel.command.item.deleted", "item_id", msg.ID.String())
		return nil
	}
	return commands.NewHandler(exec, withDefaults(logger, "carousel.item.delete", opts)...)
}

// Register adds every carousel handler to registry.
func Register(registry commands.Registry, service carousel.Service, logger interfaces.Logger, gates FeatureGates) error {
	handlers := []any{
		NewSaveSettingsHandler(service, logger, gates),
		NewCreateItemHandler(service, logger, gates),
		NewDeleteItemHandler(service, logger, gates),
	}
	for _, handler := range handlers {
		if err := registry.RegisterCommand(handler); err != nil {
			return err
		}
	}
	return nil
}

func withDefaults[T command.Message](logger interfaces.Logger, operation string, opts []commands.HandlerOption[T]) []commands.HandlerOption[T] {
	return append([]commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
	}, opts...)
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
