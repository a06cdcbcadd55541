package domain

import (
	"errors"
	"testing"
)

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload(ContentPDFOnePager, `{"headline":"Grow","keyBenefits":["a"],"callToAction":"Call"}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	one, ok := p.(OnePager)
	if !ok || one.Headline != "Grow" {
		t.Fatalf("unexpected payload %#v", p)
	}

	if _, err := DecodePayload(ContentPDFOnePager, "plain text"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for non-json one-pager, got %v", err)
	}
	if _, err := DecodePayload(ContentPDFOnePager, `{"subheadline":"x"}`); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for missing headline, got %v", err)
	}

	text, err := DecodePayload(ContentTwitter, "hello")
	if err != nil {
		t.Fatalf("decode text failed: %v", err)
	}
	if s, _ := text.Encode(); s != "hello" || text.ContentType() != ContentTwitter {
		t.Fatalf("unexpected text payload %#v", text)
	}
}

func TestContentRequestValidate(t *testing.T) {
	ok := ContentRequest{ContentType: ContentBlog, ClientName: "Acme", Topic: "launch"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	bad := []ContentRequest{
		{ContentType: "podcast", ClientName: "Acme", Topic: "x"},
		{ContentType: ContentBlog, Topic: "x"},
		{ContentType: ContentBlog, ClientName: "Acme"},
	}
	for _, r := range bad {
		if err := r.Validate(); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected invalid argument for %+v, got %v", r, err)
		}
	}
}

func TestParseTemplate(t *testing.T) {
	tpl, err := ParseTemplate("")
	if err != nil || tpl != TemplateModernMinimal {
		t.Fatalf("expected default template, got %q %v", tpl, err)
	}
	if _, err := ParseTemplate("neon"); err == nil {
		t.Fatalf("expected unknown template to fail")
	}
}
