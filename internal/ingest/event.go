// Package ingest turns inbound claimant messages into normalized claim
// events. The engine itself is transport-agnostic; anything that can produce
// an Event can drive it.
package ingest

import (
	"strings"
	"time"
)

// Attachment is one inbound file reference. Content handling happens in the
// attach package; ingest only carries the name and bytes through.
type Attachment struct {
	Name    string
	Content []byte
}

// Event is one inbound claimant message, normalized to plain text.
type Event struct {
	// Sender is the claimant's contact address. It determines the claim
	// key and therefore which claim this event belongs to.
	Sender string

	// Subject is the message subject line, if the transport has one.
	Subject string

	// Body is the plain-text message content.
	Body string

	// Attachments are the files that arrived with the message.
	Attachments []Attachment

	// Received is when the event entered the system.
	Received time.Time
}

// NewEvent builds an event from raw transport fields, extracting visible
// text when the body is HTML.
func NewEvent(sender, subject, body string, received time.Time) Event {
	return Event{
		Sender:   strings.TrimSpace(sender),
		Subject:  strings.TrimSpace(subject),
		Body:     NormalizeBody(body),
		Received: received,
	}
}
