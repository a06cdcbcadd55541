package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/agencyhub/agencyhub/internal/domain"
)

var tracer = otel.Tracer("usecase")

type ClientUsecase struct {
	repo     ClientRepository
	identity IdentityProvider
	storage  ObjectStorage
}

func NewClientUsecase(repo ClientRepository, identity IdentityProvider, storage ObjectStorage) *ClientUsecase {
	return &ClientUsecase{
		repo:     repo,
		identity: identity,
		storage:  storage,
	}
}

func validateProfile(p domain.ClientProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.InvalidArgumentError{Message: "name is required"}
	}
	if strings.TrimSpace(p.Email) == "" {
		return domain.InvalidArgumentError{Message: "email is required"}
	}
	return nil
}

func (uc *ClientUsecase) Create(ctx context.Context, profile domain.ClientProfile) (domain.Client, error) {
	if err := validateProfile(profile); err != nil {
		return domain.Client{}, err
	}

	now := time.Now()
	client := domain.Client{
		ID:               uuid.NewString(),
		OnboardingStage:  domain.StageCreated,
		DiscoveryLinkID:  uuid.NewString(),
		MarketingContent: []domain.GeneratedContent{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	client.ApplyProfile(profile)

	return uc.repo.Create(ctx, client)
}

func (uc *ClientUsecase) List(ctx context.Context) ([]domain.Client, error) {
	return uc.repo.List(ctx)
}

func (uc *ClientUsecase) Get(ctx context.Context, id string) (domain.Client, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *ClientUsecase) GetByDiscoveryLink(ctx context.Context, linkID string) (domain.Client, error) {
	return uc.repo.GetByDiscoveryLink(ctx, linkID)
}

// Update replaces the operator-editable profile; pipeline state is untouched.
func (uc *ClientUsecase) Update(ctx context.Context, id string, profile domain.ClientProfile) (domain.Client, error) {
	if err := validateProfile(profile); err != nil {
		return domain.Client{}, err
	}
	return uc.repo.Mutate(ctx, id, func(c *domain.Client) error {
		c.ApplyProfile(profile)
		return nil
	})
}

// Delete removes the client, then its login identity and logo. Cleanup
// failures are logged and do not fail the call.
func (uc *ClientUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Client.Usecase.Delete")
	defer span.End()

	client, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	err = uc.repo.Delete(ctx, id)
	if err != nil {
		span.RecordError(errors.Wrap(err, "failed to delete client"))
		return err
	}

	if client.FirebaseAuthUID != "" && uc.identity != nil {
		err = uc.identity.DeleteUser(ctx, client.FirebaseAuthUID)
		if err != nil {
			span.RecordError(err)
			slog.WarnContext(ctx, "failed to delete auth user",
				slog.String("module", "client"),
				slog.String("clientId", id),
				slog.String("error", err.Error()),
			)
		}
	}

	if client.LogoURL != "" && uc.storage != nil {
		err = uc.storage.DeleteURL(ctx, client.LogoURL)
		if err != nil {
			span.RecordError(err)
			slog.WarnContext(ctx, "failed to delete logo",
				slog.String("module", "client"),
				slog.String("clientId", id),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
