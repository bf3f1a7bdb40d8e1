package contactcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/commands"
	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

const deleteContactMessageType = "sitecms.contacts.delete"

// DeleteContactCommand removes one inquiry from the inbox.
type DeleteContactCommand struct {
	ContactID uuid.UUID `json:"contact_id"`
}

// Type implements command.Message.
func (DeleteContactCommand) Type() string { return deleteContactMessageType }

// Validate ensures the message carries the required fields.
func (m DeleteContactCommand) Validate() error {
	if m.ContactID == uuid.Nil {
		return validation.Errors{
			"contact_id": validation.NewError("sitecms.contacts.delete.contact_id_required", "contact_id is required"),
		}
	}
	return nil
}

// DeleteContactHandler deletes inquiries via the contact service.
type DeleteContactHandler struct {
	inner *commands.Handler[DeleteContactCommand]
}

// NewDeleteContactHandler constructs a handler wired to the contact service.
func NewDeleteContactHandler(service contacts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteContactCommand]) *DeleteContactHandler {
	exec := func(ctx context.Context, msg DeleteContactCommand) error {
		return service.Delete(ctx, msg.ContactID)
	}

	handlerOpts := []commands.HandlerOption[DeleteContactCommand]{
		commands.WithLogger[DeleteContactCommand](logger),
		commands.WithOperation[DeleteContactCommand]("contacts.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteContactHandler{
		inner: commands.NewHandler[DeleteContactCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteContactCommand].Execute.
func (h *DeleteContactHandler) Execute(ctx context.Context, msg DeleteContactCommand) error {
	return h.inner.Execute(ctx, msg)
}
