package catalogcmd

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/catalog"
)

func newServiceFixture(t *testing.T) (catalog.Manager[*catalog.Service], uuid.UUID) {
	t.Helper()
	manager := catalog.NewManager(
		catalog.NewMemoryRepository(func() *catalog.Service { return &catalog.Service{} }),
		func() *catalog.Service { return &catalog.Service{} },
	)
	record, err := manager.Create(context.Background(), catalog.CreateRequest{
		TitleAr: "خدمة",
		TitleEn: "Service",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return manager, record.ID
}

func TestToggleEntityCommand(t *testing.T) {
	manager, id := newServiceFixture(t)
	cmds := NewCommands(manager, "services", nil)

	if err := cmds.Toggle.Execute(context.Background(), ToggleEntityCommand{EntityID: id}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	record, err := manager.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if record.IsActive {
		t.Fatal("entity still active after toggle")
	}
}

func TestToggleEntityCommandValidation(t *testing.T) {
	manager, _ := newServiceFixture(t)
	cmds := NewCommands(manager, "services", nil)

	if err := cmds.Toggle.Execute(context.Background(), ToggleEntityCommand{}); err == nil {
		t.Fatal("expected validation error for missing entity id")
	}
}

func TestDeleteEntityCommand(t *testing.T) {
	manager, id := newServiceFixture(t)
	cmds := NewCommands(manager, "services", nil)

	if err := cmds.Delete.Execute(context.Background(), DeleteEntityCommand{EntityID: id}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if _, err := manager.Get(context.Background(), id); err == nil {
		t.Fatal("entity still readable after delete")
	}
}
