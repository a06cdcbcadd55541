package service

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/agencyhub/agencyhub/internal/domain"
)

var tracer = otel.Tracer("auth")

type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (string, error)
}

type UserLookup interface {
	GetByFirebaseUID(ctx context.Context, uid string) (domain.User, error)
}

type AuthService struct {
	verifier TokenVerifier
	users    UserLookup
}

func NewAuthService(
	verifier TokenVerifier,
	users UserLookup,
) *AuthService {
	return &AuthService{
		verifier: verifier,
		users:    users,
	}
}

type AuthResult struct {
	UID  string
	User *domain.User
}

// AuthToken verifies an ID token. A valid token without a user record is
// still authenticated but carries no role.
func (s *AuthService) AuthToken(ctx context.Context, token string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.AuthToken")
	defer span.End()

	uid, err := s.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		span.RecordError(errors.Wrap(err, "id token verification failed"))
		return nil, err
	}

	result := &AuthResult{UID: uid}
	user, err := s.users.GetByFirebaseUID(ctx, uid)
	if err == nil {
		result.User = &user
		return result, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return result, nil
	}
	span.RecordError(err)
	return nil, err
}
