package gateway

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/agencyhub/agencyhub/client"
	"github.com/agencyhub/agencyhub/internal/domain"
)

type fakeAssets struct {
	asset client.Asset
	err   error
	urls  []string
}

func (f *fakeAssets) Fetch(ctx context.Context, url string) (client.Asset, error) {
	f.urls = append(f.urls, url)
	return f.asset, f.err
}

func pngLogo(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
		img.Set(x, 1, color.RGBA{B: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestParseHex(t *testing.T) {
	testCases := []struct {
		in   string
		want rgb
		ok   bool
	}{
		{"#2563eb", rgb{37, 99, 235}, true},
		{"fff", rgb{255, 255, 255}, true},
		{" #000000 ", rgb{0, 0, 0}, true},
		{"blue", rgb{}, false},
		{"#12345", rgb{}, false},
	}
	for _, tc := range testCases {
		got, ok := parseHex(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseHex(%q) = %v %v, want %v %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolvePalette(t *testing.T) {
	p := resolvePalette(domain.TemplateBoldImpact, []string{"#010203", "nope", "#040506"})
	if p.primary != (rgb{1, 2, 3}) || p.secondary != (rgb{4, 5, 6}) {
		t.Fatalf("unexpected palette %+v", p)
	}
	d := resolvePalette(domain.TemplateBoldImpact, nil)
	if d != defaultPalettes[domain.TemplateBoldImpact] {
		t.Fatalf("expected template defaults")
	}
}

func TestRenderAllTemplates(t *testing.T) {
	r := NewPDFRenderer(nil)
	full := domain.OnePager{
		Headline:     "Grow your café",
		Subheadline:  "Marketing that works",
		KeyBenefits:  []string{"More visits", "Better reviews"},
		Stats:        []domain.Stat{{Value: "3x", Label: "reach"}},
		CallToAction: "Book a call",
		ContactInfo:  domain.ContactInfo{Email: "hi@example.com"},
	}
	sparse := domain.OnePager{Headline: "Only a headline"}

	for _, tpl := range domain.PDFTemplates {
		for _, op := range []domain.OnePager{full, sparse} {
			op := op
			out, err := r.Render(context.Background(), domain.PDFDocument{
				Kind:       domain.DocumentOnePager,
				Template:   tpl,
				ClientName: "Acme",
				OnePager:   &op,
			})
			if err != nil {
				t.Fatalf("render %s failed: %v", tpl, err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Fatalf("render %s did not produce a pdf", tpl)
			}
		}
	}
}

func TestRenderProposal(t *testing.T) {
	meeting := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	out, err := NewPDFRenderer(nil).Render(context.Background(), domain.PDFDocument{
		Kind:       domain.DocumentProposal,
		Template:   domain.TemplateCorporateProfessional,
		ClientName: "Acme",
		Palette:    []string{"#1e3a8a"},
		Proposal: &domain.Proposal{
			ExecutiveSummary:   "A plan.",
			Scope:              []string{"SEO", "Social"},
			Timeline:           []domain.Milestone{{Phase: "Kickoff", Duration: "1 week"}},
			Pricing:            domain.Pricing{Items: []domain.PriceItem{{Item: "Retainer", Cost: "$2,000"}}, Total: "$2,000"},
			Deliverables:       []string{"Monthly report"},
			ScheduledMeetingAt: &meeting,
			GeneratedAt:        meeting,
		},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("not a pdf")
	}
}

func TestRenderLogo(t *testing.T) {
	doc := domain.PDFDocument{
		Kind:       domain.DocumentOnePager,
		Template:   domain.TemplateModernMinimal,
		ClientName: "Acme",
		LogoURL:    "https://cdn.example/logo.png",
		OnePager:   &domain.OnePager{Headline: "Grow"},
	}

	withLogo := &fakeAssets{asset: client.Asset{ContentType: "image/png", Body: pngLogo(t)}}
	out, err := NewPDFRenderer(withLogo).Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(withLogo.urls) != 1 || withLogo.urls[0] != doc.LogoURL {
		t.Fatalf("expected logo fetch, got %v", withLogo.urls)
	}

	broken := &fakeAssets{err: errors.New("unexpected status code: 404")}
	fallback, err := NewPDFRenderer(broken).Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("a missing logo must not fail the render: %v", err)
	}
	if !bytes.HasPrefix(fallback, []byte("%PDF-")) || len(out) <= len(fallback) {
		t.Fatalf("expected the logo to be embedded only when fetched")
	}
}
