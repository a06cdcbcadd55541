package gateway

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// IdentityGateway manages login identities in Firebase Authentication.
type IdentityGateway struct {
	client *auth.Client
}

func NewIdentityGateway(ctx context.Context, projectID, credentialsFile string) (*IdentityGateway, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize firebase")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize firebase auth")
	}
	return &IdentityGateway{client: client}, nil
}

func (g *IdentityGateway) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	ctx, span := tracer.Start(ctx, "Identity.Gateway.CreateUser")
	defer span.End()

	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	record, err := g.client.CreateUser(ctx, params)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return record.UID, nil
}

// DeleteUser treats an already missing user as deleted.
func (g *IdentityGateway) DeleteUser(ctx context.Context, uid string) error {
	ctx, span := tracer.Start(ctx, "Identity.Gateway.DeleteUser")
	defer span.End()

	err := g.client.DeleteUser(ctx, uid)
	if err != nil && !auth.IsUserNotFound(err) {
		span.RecordError(err)
		return err
	}
	return nil
}

func (g *IdentityGateway) VerifyIDToken(ctx context.Context, token string) (string, error) {
	ctx, span := tracer.Start(ctx, "Identity.Gateway.VerifyIDToken")
	defer span.End()

	verified, err := g.client.VerifyIDToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return verified.UID, nil
}
