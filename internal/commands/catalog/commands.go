package catalogcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/catalog"
	"github.com/nawras-digital/sitecms/internal/commands"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

const (
	toggleEntityMessageType = "sitecms.catalog.toggle"
	deleteEntityMessageType = "sitecms.catalog.delete"
)

// ToggleEntityCommand flips one entity's public visibility.
type ToggleEntityCommand struct {
	EntityID uuid.UUID `json:"entity_id"`
}

// Type implements command.Message.
func (ToggleEntityCommand) Type() string { return toggleEntityMessageType }

// Validate ensures the message carries the required fields.
func (m ToggleEntityCommand) Validate() error {
	if m.EntityID == uuid.Nil {
		return validation.Errors{
			"entity_id": validation.NewError("sitecms.catalog.toggle.entity_id_required", "entity_id is required"),
		}
	}
	return nil
}

// ToggleEntityHandler flips visibility through the bound entity manager.
type ToggleEntityHandler struct {
	inner *commands.Handler[ToggleEntityCommand]
}

// NewToggleEntityHandler constructs a handler bound to one entity collection.
// The operation name distinguishes the collections in logs.
func NewToggleEntityHandler[T catalog.Record](manager catalog.Manager[T], operation string, logger interfaces.Logger, opts ...commands.HandlerOption[ToggleEntityCommand]) *ToggleEntityHandler {
	exec := func(ctx context.Context, msg ToggleEntityCommand) error {
		_, err := manager.ToggleVisibility(ctx, msg.EntityID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ToggleEntityCommand]{
		commands.WithLogger[ToggleEntityCommand](logger),
		commands.WithOperation[ToggleEntityCommand](operation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ToggleEntityHandler{
		inner: commands.NewHandler[ToggleEntityCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ToggleEntityCommand].Execute.
func (h *ToggleEntityHandler) Execute(ctx context.Context, msg ToggleEntityCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteEntityCommand removes one entity permanently.
type DeleteEntityCommand struct {
	EntityID uuid.UUID `json:"entity_id"`
}

// Type implements command.Message.
func (DeleteEntityCommand) Type() string { return deleteEntityMessageType }

// Validate ensures the message carries the required fields.
func (m DeleteEntityCommand) Validate() error {
	if m.EntityID == uuid.Nil {
		return validation.Errors{
			"entity_id": validation.NewError("sitecms.catalog.delete.entity_id_required", "entity_id is required"),
		}
	}
	return nil
}

// DeleteEntityHandler deletes entities through the bound entity manager.
type DeleteEntityHandler struct {
	inner *commands.Handler[DeleteEntityCommand]
}

// NewDeleteEntityHandler constructs a handler bound to one entity collection.
func NewDeleteEntityHandler[T catalog.Record](manager catalog.Manager[T], operation string, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteEntityCommand]) *DeleteEntityHandler {
	exec := func(ctx context.Context, msg DeleteEntityCommand) error {
		return manager.Delete(ctx, msg.EntityID)
	}

	handlerOpts := []commands.HandlerOption[DeleteEntityCommand]{
		commands.WithLogger[DeleteEntityCommand](logger),
		commands.WithOperation[DeleteEntityCommand](operation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteEntityHandler{
		inner: commands.NewHandler[DeleteEntityCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteEntityCommand].Execute.
func (h *DeleteEntityHandler) Execute(ctx context.Context, msg DeleteEntityCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Commands bundles the command handlers for one entity collection.
type Commands struct {
	Toggle *ToggleEntityHandler
	Delete *DeleteEntityHandler
}

// NewCommands wires the toggle and delete handlers against one manager. The
// prefix names the collection in log output, e.g. "services".
func NewCommands[T catalog.Record](manager catalog.Manager[T], prefix string, logger interfaces.Logger) *Commands {
	return &Commands{
		Toggle: NewToggleEntityHandler(manager, prefix+".toggle", logger),
		Delete: NewDeleteEntityHandler(manager, prefix+".delete", logger),
	}
}
