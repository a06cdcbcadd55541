package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/internal/domain"
)

type SignupInput struct {
	DiscoveryLinkID string `json:"discoveryLinkId"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	DisplayName     string `json:"displayName"`
}

type ClientProfileView struct {
	User   domain.User    `json:"user"`
	Client *domain.Client `json:"client,omitempty"`
}

type ClientAuthUsecase struct {
	clients  ClientRepository
	users    UserRepository
	identity IdentityProvider
}

func NewClientAuthUsecase(clients ClientRepository, users UserRepository, identity IdentityProvider) *ClientAuthUsecase {
	return &ClientAuthUsecase{
		clients:  clients,
		users:    users,
		identity: identity,
	}
}

// Signup creates the login of the client owning a discovery link. A client
// registers at most once.
func (uc *ClientAuthUsecase) Signup(ctx context.Context, input SignupInput) (ClientProfileView, error) {
	ctx, span := tracer.Start(ctx, "ClientAuth.Usecase.Signup")
	defer span.End()

	if input.DiscoveryLinkID == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return ClientProfileView{}, domain.InvalidArgumentError{Message: "discoveryLinkId, email and password are required"}
	}

	client, err := uc.clients.GetByDiscoveryLink(ctx, input.DiscoveryLinkID)
	if err != nil {
		return ClientProfileView{}, err
	}
	if client.HasAccount {
		return ClientProfileView{}, domain.ErrAlreadyHasAccount
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = client.DisplayName()
	}

	uid, err := uc.identity.CreateUser(ctx, input.Email, input.Password, displayName)
	if err != nil {
		span.RecordError(errors.Wrap(err, "failed to create auth user"))
		return ClientProfileView{}, errors.Wrap(err, "failed to create auth user")
	}

	updated, err := uc.clients.Mutate(ctx, client.ID, func(c *domain.Client) error {
		if c.HasAccount {
			return domain.ErrAlreadyHasAccount
		}
		c.HasAccount = true
		c.FirebaseAuthUID = uid
		return nil
	})
	if err != nil {
		uc.discardIdentity(ctx, uid)
		return ClientProfileView{}, err
	}

	now := time.Now()
	user, err := uc.users.Create(ctx, domain.User{
		ID:          uuid.NewString(),
		FirebaseUID: uid,
		Email:       input.Email,
		DisplayName: displayName,
		Role:        domain.RoleClient,
		ClientID:    client.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		span.RecordError(errors.Wrap(err, "failed to create user record"))
		uc.releaseClient(ctx, client.ID, uid)
		uc.discardIdentity(ctx, uid)
		return ClientProfileView{}, err
	}

	return ClientProfileView{User: user, Client: &updated}, nil
}

// releaseClient undoes the account flag set for uid so the signup can be retried.
func (uc *ClientAuthUsecase) releaseClient(ctx context.Context, clientID, uid string) {
	_, err := uc.clients.Mutate(ctx, clientID, func(c *domain.Client) error {
		if c.FirebaseAuthUID == uid {
			c.HasAccount = false
			c.FirebaseAuthUID = ""
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to release client account flag",
			slog.String("module", "clientauth"),
			slog.String("clientId", clientID),
			slog.String("error", err.Error()),
		)
	}
}

func (uc *ClientAuthUsecase) discardIdentity(ctx context.Context, uid string) {
	if err := uc.identity.DeleteUser(ctx, uid); err != nil {
		slog.WarnContext(ctx, "failed to discard auth user",
			slog.String("module", "clientauth"),
			slog.String("uid", uid),
			slog.String("error", err.Error()),
		)
	}
}

// Profile returns the user record of uid and, for client users, their client.
func (uc *ClientAuthUsecase) Profile(ctx context.Context, uid string) (ClientProfileView, error) {
	if uid == "" {
		return ClientProfileView{}, domain.InvalidArgumentError{Message: "uid is required"}
	}
	user, err := uc.users.GetByFirebaseUID(ctx, uid)
	if err != nil {
		return ClientProfileView{}, err
	}

	view := ClientProfileView{User: user}
	if user.ClientID != "" {
		client, err := uc.clients.Get(ctx, user.ClientID)
		if err != nil {
			return ClientProfileView{}, err
		}
		view.Client = &client
	}
	return view, nil
}
