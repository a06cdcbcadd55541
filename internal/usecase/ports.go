package usecase

import (
	"context"
	"io"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
)

// ClientRepository defines persistence for clients and their content lists.
type ClientRepository interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	Get(ctx context.Context, id string) (domain.Client, error)
	GetByDiscoveryLink(ctx context.Context, linkID string) (domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	// Mutate runs fn against a locked copy of the client and persists the
	// result atomically. Voting sessions are re-derived in the same write.
	Mutate(ctx context.Context, id string, fn func(*domain.Client) error) (domain.Client, error)
	Delete(ctx context.Context, id string) error
	FindVoteSession(ctx context.Context, publicVoteID string) (domain.VotingSession, error)
}

// UserRepository defines persistence for internal user records.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// CampaignRepository defines persistence for the per-user campaign path.
type CampaignRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error)
	Get(ctx context.Context, id string) (domain.Campaign, error)
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	Delete(ctx context.Context, id string) error
}

// CompletionGateway is the hosted text/vision completion service.
type CompletionGateway interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// IdentityProvider manages login identities.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, token string) (string, error)
}

// ObjectStorage stores public objects and addresses them by URL.
type ObjectStorage interface {
	Put(ctx context.Context, object, contentType string, body io.Reader) (string, error)
	DeleteURL(ctx context.Context, publicURL string) error
}

type Mailer interface {
	SendDiscoveryLink(ctx context.Context, to, name, link string) error
}

type PDFRenderer interface {
	Render(ctx context.Context, doc domain.PDFDocument) ([]byte, error)
}

// TallyPublisher fans tally updates out to live subscribers.
type TallyPublisher interface {
	Publish(ctx context.Context, channel string, event agencyhub.Event) error
}

// VoterRegistry records which voters already voted on a session.
type VoterRegistry interface {
	// Claim returns false if the voter was already registered.
	Claim(ctx context.Context, publicVoteID string, voter domain.Voter) (bool, error)
	// Release forgets a claim whose vote was never stored.
	Release(ctx context.Context, publicVoteID string, voter domain.Voter) error
}
