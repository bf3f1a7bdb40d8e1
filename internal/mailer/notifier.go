package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/nawras-digital/sitecms/internal/contacts"
)

// ContactNotifier emails new contact inquiries to the site inbox.
type ContactNotifier struct {
	sender Sender
	to     string
}

// NewContactNotifier creates a notifier delivering to the given address.
func NewContactNotifier(sender Sender, to string) *ContactNotifier {
	return &ContactNotifier{sender: sender, to: to}
}

// NotifyContact builds and sends the inquiry notification email.
func (n *ContactNotifier) NotifyContact(ctx context.Context, contact *contacts.Contact) error {
	if n.sender == nil || n.to == "" {
		return nil
	}

	subject := contact.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "New contact inquiry"
	}

	return n.sender.Send(ctx, Email{
		To:       n.to,
		Subject:  fmt.Sprintf("[Contact] %s", subject),
		TextBody: contactText(contact),
		HTMLBody: contactHTML(contact),
	})
}

func contactText(c *contacts.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	fmt.Fprintf(&b, "\n%s\n", c.Message)
	return b.String()
}

func contactHTML(c *contacts.Contact) string {
	var b strings.Builder
	b.WriteString("<h2>New contact inquiry</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(c.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(c.Email))
	if c.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(c.Phone))
	}
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(c.Message))
	return b.String()
}
