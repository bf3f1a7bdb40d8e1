package sectioncmd

import (
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// Commands bundles the section command handlers for dispatcher registration.
type Commands struct {
	Update        *UpdateSectionHandler
	SetVisibility *SetSectionVisibilityHandler
	Reorder       *ReorderSectionHandler
}

// NewCommands wires every section command handler against one service.
func NewCommands(service sections.Service, logger interfaces.Logger) *Commands {
	return &Commands{
		Update:        NewUpdateSectionHandler(service, logger),
		SetVisibility: NewSetSectionVisibilityHandler(service, logger),
		Reorder:       NewReorderSectionHandler(service, logger),
	}
}
