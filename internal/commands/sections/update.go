package sectioncmd

import (
	"context"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/commands"
	"github.com/nawras-digital/sitecms/internal/domain"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

const (
	updateSectionMessageType  = "sitecms.sections.update"
	setVisibilityMessageType  = "sitecms.sections.set_visibility"
	reorderSectionMessageType = "sitecms.sections.reorder"
)

// UpdateSectionCommand replaces one section's content wholesale.
type UpdateSectionCommand struct {
	SectionID   uuid.UUID       `json:"section_id"`
	SectionType string          `json:"type"`
	Content     json.RawMessage `json:"content"`
}

// Type implements command.Message.
func (UpdateSectionCommand) Type() string { return updateSectionMessageType }

// Validate ensures the message carries the required fields before reaching
// handlers.
func (m UpdateSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.SectionID == uuid.Nil {
		errs["section_id"] = validation.NewError("sitecms.sections.update.section_id_required", "section_id is required")
	}
	if _, ok := domain.ParseSectionType(m.SectionType); !ok {
		errs["type"] = validation.NewError("sitecms.sections.update.type_unknown", "unknown section type")
	}
	if len(m.Content) == 0 {
		errs["content"] = validation.NewError("sitecms.sections.update.content_required", "content is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSectionHandler applies content updates via the section service.
type UpdateSectionHandler struct {
	inner *commands.Handler[UpdateSectionCommand]
}

// NewUpdateSectionHandler constructs a handler wired to the section service.
func NewUpdateSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateSectionCommand]) *UpdateSectionHandler {
	exec := func(ctx context.Context, msg UpdateSectionCommand) error {
		sectionType, _ := domain.ParseSectionType(msg.SectionType)
		content, err := sections.UnmarshalContent(sectionType, msg.Content)
		if err != nil {
			return err
		}
		_, err = service.UpdateSection(ctx, sections.UpdateSectionRequest{
			SectionID: msg.SectionID,
			Content:   content,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpdateSectionCommand]{
		commands.WithLogger[UpdateSectionCommand](logger),
		commands.WithOperation[UpdateSectionCommand]("sections.update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateSectionHandler{
		inner: commands.NewHandler[UpdateSectionCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateSectionCommand].Execute.
func (h *UpdateSectionHandler) Execute(ctx context.Context, msg UpdateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SetSectionVisibilityCommand shows or hides one section on the public site.
type SetSectionVisibilityCommand struct {
	SectionID uuid.UUID `json:"section_id"`
	Visible   bool      `json:"visible"`
}

// Type implements command.Message.
func (SetSectionVisibilityCommand) Type() string { return setVisibilityMessageType }

// Validate ensures the message carries the required fields.
func (m SetSectionVisibilityCommand) Validate() error {
	if m.SectionID == uuid.Nil {
		return validation.Errors{
			"section_id": validation.NewError("sitecms.sections.set_visibility.section_id_required", "section_id is required"),
		}
	}
	return nil
}

// SetSectionVisibilityHandler toggles section visibility via the section
// service.
type SetSectionVisibilityHandler struct {
	inner *commands.Handler[SetSectionVisibilityCommand]
}

// NewSetSectionVisibilityHandler constructs a handler wired to the section service.
func NewSetSectionVisibilityHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetSectionVisibilityCommand]) *SetSectionVisibilityHandler {
	exec := func(ctx context.Context, msg SetSectionVisibilityCommand) error {
		_, err := service.SetSectionVisibility(ctx, msg.SectionID, msg.Visible)
		return err
	}

	handlerOpts := []commands.HandlerOption[SetSectionVisibilityCommand]{
		commands.WithLogger[SetSectionVisibilityCommand](logger),
		commands.WithOperation[SetSectionVisibilityCommand]("sections.set_visibility"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetSectionVisibilityHandler{
		inner: commands.NewHandler[SetSectionVisibilityCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SetSectionVisibilityCommand].Execute.
func (h *SetSectionVisibilityHandler) Execute(ctx context.Context, msg SetSectionVisibilityCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReorderSectionCommand moves one section within its page's render sequence.
type ReorderSectionCommand struct {
	SectionID uuid.UUID `json:"section_id"`
	Position  int       `json:"position"`
}

// Type implements command.Message.
func (ReorderSectionCommand) Type() string { return reorderSectionMessageType }

// Validate ensures the message carries the required fields.
func (m ReorderSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.SectionID == uuid.Nil {
		errs["section_id"] = validation.NewError("sitecms.sections.reorder.section_id_required", "section_id is required")
	}
	if m.Position < 0 {
		errs["position"] = validation.NewError("sitecms.sections.reorder.position_invalid", "position must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderSectionHandler repositions sections via the section service.
type ReorderSectionHandler struct {
	inner *commands.Handler[ReorderSectionCommand]
}

// NewReorderSectionHandler constructs a handler wired to the section service.
func NewReorderSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderSectionCommand]) *ReorderSectionHandler {
	exec := func(ctx context.Context, msg ReorderSectionCommand) error {
		_, err := service.ReorderSection(ctx, msg.SectionID, msg.Position)
		return err
	}

	handlerOpts := []commands.HandlerOption[ReorderSectionCommand]{
		commands.WithLogger[ReorderSectionCommand](logger),
		commands.WithOperation[ReorderSectionCommand]("sections.reorder"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderSectionHandler{
		inner: commands.NewHandler[ReorderSectionCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReorderSectionCommand].Execute.
func (h *ReorderSectionHandler) Execute(ctx context.Context, msg ReorderSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}
