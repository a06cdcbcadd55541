package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/agencyhub/agencyhub/internal/domain"
)

func newClient() domain.Client {
	return domain.Client{
		ID:              "client-1",
		Name:            "Jordan",
		Email:           "jordan@example.com",
		Company:         "Acme",
		OnboardingStage: domain.StageCreated,
		DiscoveryLinkID: "link-1",
	}
}

func TestSendDiscoveryOnlyChangesStage(t *testing.T) {
	repo := newMockClientRepo(newClient())
	mailer := &mockMailer{}
	uc := NewOnboardingUsecase(repo, &mockLLM{}, mailer, domain.Config{PublicBaseURL: "https://hub.example"})

	before, _ := repo.Get(context.Background(), "client-1")
	invite, err := uc.SendDiscovery(context.Background(), "client-1", false)
	if err != nil {
		t.Fatalf("send discovery failed: %v", err)
	}
	if invite.URL != "https://hub.example/discovery/link-1" {
		t.Fatalf("unexpected url %q", invite.URL)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("mail must not be sent unless requested")
	}

	after, _ := repo.Get(context.Background(), "client-1")
	if after.OnboardingStage != domain.StageDiscoverySent {
		t.Fatalf("unexpected stage %q", after.OnboardingStage)
	}
	after.OnboardingStage = before.OnboardingStage
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("fields other than stage changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestSendDiscoveryMailFailureKeepsStage(t *testing.T) {
	repo := newMockClientRepo(newClient())
	mailer := &mockMailer{err: errors.New("smtp down")}
	uc := NewOnboardingUsecase(repo, &mockLLM{}, mailer, domain.Config{})

	invite, err := uc.SendDiscovery(context.Background(), "client-1", true)
	if err != nil {
		t.Fatalf("send discovery failed: %v", err)
	}
	if invite.Mailed {
		t.Fatalf("mail failure must be reported")
	}
	if invite.Client.OnboardingStage != domain.StageDiscoverySent {
		t.Fatalf("stage must advance even when mail fails")
	}
}

func TestSetStage(t *testing.T) {
	client := newClient()
	client.OnboardingStage = domain.StageMeetingScheduled
	repo := newMockClientRepo(client)
	uc := NewOnboardingUsecase(repo, &mockLLM{}, nil, domain.Config{})
	ctx := context.Background()

	if _, err := uc.SetStage(ctx, "client-1", "discovery_sent"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected backwards move rejected, got %v", err)
	}
	if _, err := uc.SetStage(ctx, "client-1", "completed"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected unknown stage rejected, got %v", err)
	}
	// Prerequisites are never checked: no proposal exists yet.
	got, err := uc.SetStage(ctx, "client-1", "proposal_sent")
	if err != nil {
		t.Fatalf("forward move failed: %v", err)
	}
	if got.OnboardingStage != domain.StageProposalSent {
		t.Fatalf("unexpected stage %q", got.OnboardingStage)
	}
}

func TestDiscoveryFlow(t *testing.T) {
	repo := newMockClientRepo(newClient())
	llm := &mockLLM{response: "Thanks! What are your main marketing goals?"}
	uc := NewOnboardingUsecase(repo, llm, nil, domain.Config{})
	ctx := context.Background()

	history := []domain.ChatTurn{
		{Role: domain.ChatRoleAssistant, Content: DiscoveryQuestions[0]},
		{Role: domain.ChatRoleUser, Content: "We sell bikes"},
	}
	reply, err := uc.DiscoveryReply(ctx, "link-1", history)
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if reply.Role != domain.ChatRoleAssistant || reply.Content == "" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if len(llm.requests[0].Messages) != 2 {
		t.Fatalf("history must be relayed")
	}

	if _, err := uc.DiscoveryReply(ctx, "missing", history); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	done, err := uc.CompleteDiscovery(ctx, "link-1", DiscoveryResult{
		Data:    map[string]string{"business": "bikes"},
		History: append(history, reply),
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if done.OnboardingStage != domain.StageDiscoveryComplete || done.DiscoveryData["business"] != "bikes" {
		t.Fatalf("unexpected client %+v", done)
	}

	_, err = uc.CompleteDiscovery(ctx, "link-1", DiscoveryResult{Data: map[string]string{"x": "y"}})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected second completion rejected, got %v", err)
	}
}

func TestCompleteDiscoveryKeepsLaterStage(t *testing.T) {
	client := newClient()
	client.OnboardingStage = domain.StageMeetingScheduled
	repo := newMockClientRepo(client)
	uc := NewOnboardingUsecase(repo, &mockLLM{}, nil, domain.Config{})

	done, err := uc.CompleteDiscovery(context.Background(), "link-1", DiscoveryResult{
		Data: map[string]string{"goal": "leads"},
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if done.OnboardingStage != domain.StageMeetingScheduled {
		t.Fatalf("stage must not move back, got %q", done.OnboardingStage)
	}

	stored, _ := repo.Get(context.Background(), "client-1")
	if stored.DiscoveryData["goal"] != "leads" || stored.OnboardingStage != domain.StageMeetingScheduled {
		t.Fatalf("unexpected stored client %+v", stored)
	}
}
