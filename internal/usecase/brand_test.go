package usecase

import (
	"context"
	"testing"

	"github.com/agencyhub/agencyhub/internal/domain"
)

func TestBrandAnalyze(t *testing.T) {
	client := newClient()
	client.LogoURL = "https://storage.example/bucket/logos/a.png"
	repo := newMockClientRepo(client)
	llm := &mockLLM{response: "Here you go:\n{\"colors\":[\"#111111\",\"#222222\",\"#333333\",\"#444444\",\"#555555\",\"#666666\"],\"style\":\"minimal\",\"personality\":\"calm\",\"tone\":\"warm\"}"}
	uc := NewBrandUsecase(repo, llm)

	profile, err := uc.Analyze(context.Background(), "client-1", "")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if len(profile.Colors) != 5 || profile.Style != "minimal" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if llm.requests[0].ImageURL != client.LogoURL {
		t.Fatalf("expected logo to be analyzed, got %q", llm.requests[0].ImageURL)
	}

	if _, err := uc.Analyze(context.Background(), "client-1", ""); err != domain.ErrBrandProfileSet {
		t.Fatalf("expected ErrBrandProfileSet, got %v", err)
	}
}
