package attach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkoval/claimflow/internal/ingest"
	"github.com/mkoval/claimflow/internal/model"
	"github.com/mkoval/claimflow/internal/reasoning"
)

type stubService struct {
	resp *reasoning.Response
	err  error
	last reasoning.Request
}

func (s *stubService) Invoke(_ context.Context, req reasoning.Request) (*reasoning.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestDescribe_TextAttachment(t *testing.T) {
	svc := &stubService{resp: &reasoning.Response{
		Kind: model.ResponseStructured,
		Text: `{"details": "A repair invoice for 480 pounds from a glass fitter."}`,
	}}
	d := NewReasoningDescriber(svc)

	got, err := d.Describe(context.Background(), ingest.Attachment{
		Name:    "invoice.txt",
		Content: []byte("Invoice: windscreen replacement, 480 GBP"),
	})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if got.Name != "invoice.txt" {
		t.Errorf("name = %q", got.Name)
	}
	if !strings.Contains(got.DerivedDescription, "repair invoice") {
		t.Errorf("description = %q", got.DerivedDescription)
	}
	if !strings.Contains(svc.last.Context, "windscreen replacement") {
		t.Error("text content not inlined in prompt")
	}
}

func TestDescribe_BinaryAttachmentByName(t *testing.T) {
	svc := &stubService{resp: &reasoning.Response{
		Kind: model.ResponseStructured,
		Text: `{"details": "A photograph, likely of vehicle damage."}`,
	}}
	d := NewReasoningDescriber(svc)

	_, err := d.Describe(context.Background(), ingest.Attachment{
		Name:    "damage.jpg",
		Content: []byte{0xFF, 0xD8, 0x00, 0x10},
	})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if !strings.Contains(svc.last.Context, "Binary content") {
		t.Errorf("binary content not referenced by size: %q", svc.last.Context)
	}
}

func TestDescribe_PropagatesTimeout(t *testing.T) {
	svc := &stubService{err: reasoning.ErrTimeout}
	d := NewReasoningDescriber(svc)

	_, err := d.Describe(context.Background(), ingest.Attachment{Name: "photo.png"})
	if !errors.Is(err, reasoning.ErrTimeout) {
		t.Errorf("Describe = %v, want ErrTimeout", err)
	}
}
