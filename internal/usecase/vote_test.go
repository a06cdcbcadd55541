package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
)

func votingClient() domain.Client {
	return domain.Client{
		ID:      "client-1",
		Name:    "Jordan",
		Company: "Acme",
		MarketingContent: []domain.GeneratedContent{
			{ID: "c1", Type: domain.ContentLinkedIn, Content: "original", PublicVoteID: "abc12345", Votes: 3},
			{ID: "c2", Type: domain.ContentLinkedIn, Content: "variant", VariantOfID: "c1", VariantLabel: domain.LabelVariantB, PublicVoteID: "abc12345", Votes: 2},
			{ID: "c3", Type: domain.ContentBlog, Content: "unrelated"},
		},
	}
}

func TestRecordVote(t *testing.T) {
	repo := newMockClientRepo(votingClient())
	pub := &mockPublisher{}
	uc := NewVoteUsecase(repo, pub, nil, domain.Config{VoteDedup: domain.VoteDedupCookie})

	tally, err := uc.RecordVote(context.Background(), RecordVoteInput{
		PublicVoteID:      "abc12345",
		SelectedContentID: "c2",
	})
	if err != nil {
		t.Fatalf("record vote failed: %v", err)
	}
	if tally.OriginalVotes != 3 || tally.VariantVotes != 3 {
		t.Fatalf("unexpected tally %+v", tally)
	}

	stored, _ := repo.Get(context.Background(), "client-1")
	if stored.MarketingContent[1].Votes != 3 || stored.MarketingContent[0].Votes != 3 {
		t.Fatalf("unexpected stored votes %+v", stored.MarketingContent)
	}

	if len(pub.events) != 1 || pub.events[0].Channel != "vote:abc12345" || pub.events[0].Type != agencyhub.EventTypeVote {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestRecordVoteRejections(t *testing.T) {
	testCases := []struct {
		name  string
		input RecordVoteInput
		want  error
	}{
		{
			name:  "cookie present",
			input: RecordVoteInput{PublicVoteID: "abc12345", SelectedContentID: "c1", HasCookie: true},
			want:  domain.ErrForbidden,
		},
		{
			name:  "unknown session",
			input: RecordVoteInput{PublicVoteID: "zzzzzzzz", SelectedContentID: "c1"},
			want:  domain.ErrNotFound,
		},
		{
			name:  "content outside the pair",
			input: RecordVoteInput{PublicVoteID: "abc12345", SelectedContentID: "c3"},
			want:  domain.ErrInvalidArgument,
		},
		{
			name:  "missing fields",
			input: RecordVoteInput{PublicVoteID: "abc12345"},
			want:  domain.ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockClientRepo(votingClient())
			uc := NewVoteUsecase(repo, nil, nil, domain.Config{})
			_, err := uc.RecordVote(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			stored, _ := repo.Get(context.Background(), "client-1")
			if stored.MarketingContent[0].Votes != 3 || stored.MarketingContent[1].Votes != 2 {
				t.Fatalf("rejected vote must not change counters")
			}
		})
	}
}

func TestRecordVoteServerDedup(t *testing.T) {
	repo := newMockClientRepo(votingClient())
	registry := &mockRegistry{seen: map[string]bool{}}
	uc := NewVoteUsecase(repo, nil, registry, domain.Config{VoteDedup: domain.VoteDedupServer})

	input := RecordVoteInput{
		PublicVoteID:      "abc12345",
		SelectedContentID: "c1",
		Voter:             domain.Voter{IP: "203.0.113.7", UserAgent: "test"},
	}
	if _, err := uc.RecordVote(context.Background(), input); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	_, err := uc.RecordVote(context.Background(), input)
	if err != domain.ErrAlreadyVoted {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestOpenVoteLink(t *testing.T) {
	client := votingClient()
	for i := range client.MarketingContent {
		client.MarketingContent[i].PublicVoteID = ""
		client.MarketingContent[i].Votes = 0
	}
	repo := newMockClientRepo(client)
	uc := NewVoteUsecase(repo, nil, nil, domain.Config{PublicBaseURL: "https://hub.example"})
	uc.newVoteID = func() (string, error) { return "k3y9x2ab", nil }

	link, err := uc.OpenVoteLink(context.Background(), "client-1", "c1")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if link.PublicVoteID != "k3y9x2ab" || link.URL != "https://hub.example/vote/k3y9x2ab" {
		t.Fatalf("unexpected link %+v", link)
	}

	stored, _ := repo.Get(context.Background(), "client-1")
	if stored.MarketingContent[0].PublicVoteID != stored.MarketingContent[1].PublicVoteID {
		t.Fatalf("pair must share the vote id")
	}

	view, err := uc.GetSession(context.Background(), "k3y9x2ab")
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if view.Original.ID != "c1" || view.Variant.ID != "c2" || view.ClientName != "Acme" {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, err := uc.OpenVoteLink(context.Background(), "client-1", "c3"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for item without variant, got %v", err)
	}
}

func TestGetSessionRejectsMalformedID(t *testing.T) {
	uc := NewVoteUsecase(newMockClientRepo(), nil, nil, domain.Config{})
	if _, err := uc.GetSession(context.Background(), "NOT-AN-ID"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordVoteFailedWriteReleasesVoter(t *testing.T) {
	repo := newMockClientRepo(votingClient())
	repo.mutateErr = errors.New("connection reset")
	registry := &mockRegistry{seen: map[string]bool{}}
	uc := NewVoteUsecase(repo, nil, registry, domain.Config{VoteDedup: domain.VoteDedupServer})

	input := RecordVoteInput{
		PublicVoteID:      "abc12345",
		SelectedContentID: "c2",
		Voter:             domain.Voter{IP: "203.0.113.7", UserAgent: "test"},
	}
	if _, err := uc.RecordVote(context.Background(), input); err == nil {
		t.Fatalf("expected the write to fail")
	}
	if len(registry.seen) != 0 {
		t.Fatalf("failed vote must not keep the voter claimed: %v", registry.seen)
	}

	repo.mutateErr = nil
	tally, err := uc.RecordVote(context.Background(), input)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if tally.VariantVotes != 3 {
		t.Fatalf("unexpected tally %+v", tally)
	}
}
