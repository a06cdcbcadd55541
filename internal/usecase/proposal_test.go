package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agencyhub/agencyhub/internal/domain"
)

func TestProposalGenerate(t *testing.T) {
	meeting := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	client := newClient()
	client.DiscoveryData = map[string]string{"goals": "more leads"}
	client.Proposal = &domain.Proposal{ExecutiveSummary: "old", ScheduledMeetingAt: &meeting}
	repo := newMockClientRepo(client)
	llm := &mockLLM{response: `{"executiveSummary":"Plan","scope":["SEO"],"timeline":[],"pricing":{"items":[],"total":"$1"},"deliverables":["x"]}`}
	uc := NewProposalUsecase(repo, llm, &mockRenderer{})

	proposal, err := uc.Generate(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if proposal.ExecutiveSummary != "Plan" || proposal.Pricing.Total != "$1" {
		t.Fatalf("unexpected proposal %+v", proposal)
	}
	if proposal.ScheduledMeetingAt == nil || !proposal.ScheduledMeetingAt.Equal(meeting) {
		t.Fatalf("scheduled meeting must survive regeneration")
	}
	if !strings.Contains(llm.requests[0].Messages[0].Content, "more leads") {
		t.Fatalf("prompt must include discovery answers")
	}

	stored, _ := repo.Get(context.Background(), "client-1")
	if stored.Proposal == nil || stored.Proposal.ExecutiveSummary != "Plan" {
		t.Fatalf("proposal not stored")
	}
}

func TestProposalGenerateFallsBackToRawText(t *testing.T) {
	repo := newMockClientRepo(newClient())
	llm := &mockLLM{response: strings.Repeat("word ", 200)}
	uc := NewProposalUsecase(repo, llm, &mockRenderer{})

	proposal, err := uc.Generate(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("fallback must not fail: %v", err)
	}
	if n := len([]rune(proposal.ExecutiveSummary)); n > degradedSummaryLimit+3 || n == 0 {
		t.Fatalf("unexpected summary length %d", n)
	}
}

func TestProposalGeneratePDF(t *testing.T) {
	client := newClient()
	client.Proposal = &domain.Proposal{ExecutiveSummary: "Plan"}
	repo := newMockClientRepo(client)
	renderer := &mockRenderer{}
	uc := NewProposalUsecase(repo, &mockLLM{}, renderer)

	uri, err := uc.GeneratePDF(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("generate pdf failed: %v", err)
	}
	if !strings.HasPrefix(uri, "data:application/pdf;base64,") {
		t.Fatalf("unexpected data uri %q", uri)
	}
	if renderer.docs[0].Kind != domain.DocumentProposal || renderer.docs[0].ClientName != "Acme" {
		t.Fatalf("unexpected document %+v", renderer.docs[0])
	}
	stored, _ := repo.Get(context.Background(), "client-1")
	if stored.Proposal.PDFDataURI != uri {
		t.Fatalf("data uri not stored")
	}

	repo2 := newMockClientRepo(newClient())
	uc2 := NewProposalUsecase(repo2, &mockLLM{}, renderer)
	if _, err := uc2.GeneratePDF(context.Background(), "client-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found without proposal, got %v", err)
	}
}

func TestRenderValidates(t *testing.T) {
	uc := NewProposalUsecase(newMockClientRepo(), &mockLLM{}, &mockRenderer{})
	_, err := uc.Render(context.Background(), domain.PDFDocument{Kind: domain.DocumentOnePager, ClientName: "Acme"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	out, err := uc.Render(context.Background(), domain.PDFDocument{
		Kind:       domain.DocumentOnePager,
		ClientName: "Acme",
		OnePager:   &domain.OnePager{Headline: "Grow"},
	})
	if err != nil || len(out) == 0 {
		t.Fatalf("render failed: %v", err)
	}
}
