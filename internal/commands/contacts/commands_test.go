package contactcmd

import (
	"context"
	"testing"

	"github.com/nawras-digital/sitecms/internal/contacts"
)

func TestDeleteContactCommand(t *testing.T) {
	svc := contacts.NewService(contacts.NewMemoryRepository())
	record, err := svc.Submit(context.Background(), contacts.SubmitRequest{
		Name:    "Lina",
		Email:   "lina@example.com",
		Message: "Quote request",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	handler := NewDeleteContactHandler(svc, nil)
	if err := handler.Execute(context.Background(), DeleteContactCommand{ContactID: record.ID}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), record.ID); err == nil {
		t.Fatal("contact still readable after delete")
	}
}

func TestDeleteContactCommandValidation(t *testing.T) {
	svc := contacts.NewService(contacts.NewMemoryRepository())
	handler := NewDeleteContactHandler(svc, nil)

	if err := handler.Execute(context.Background(), DeleteContactCommand{}); err == nil {
		t.Fatal("expected validation error for missing contact id")
	}
}
