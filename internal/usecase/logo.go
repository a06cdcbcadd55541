package usecase

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/internal/domain"
)

const MaxLogoSize = 5 << 20

type LogoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	// ClientID, when set, attaches the uploaded logo to that client.
	ClientID string
}

type LogoUsecase struct {
	storage ObjectStorage
	repo    ClientRepository
}

func NewLogoUsecase(storage ObjectStorage, repo ClientRepository) *LogoUsecase {
	return &LogoUsecase{storage: storage, repo: repo}
}

func logoObjectName(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return "logos/" + uuid.NewString() + ext
}

// Upload stores an image and returns its public URL.
func (uc *LogoUsecase) Upload(ctx context.Context, upload LogoUpload) (string, error) {
	ctx, span := tracer.Start(ctx, "Logo.Usecase.Upload")
	defer span.End()

	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", domain.InvalidArgumentError{Message: "file must be an image"}
	}
	if upload.Size <= 0 {
		return "", domain.InvalidArgumentError{Message: "file is empty"}
	}
	if upload.Size > MaxLogoSize {
		return "", domain.InvalidArgumentError{Message: "file must be 5MB or smaller"}
	}

	url, err := uc.storage.Put(ctx, logoObjectName(upload.Filename, mediaType), mediaType, io.LimitReader(upload.Body, MaxLogoSize))
	if err != nil {
		span.RecordError(errors.Wrap(err, "failed to store logo"))
		return "", errors.Wrap(err, "failed to store logo")
	}

	if upload.ClientID == "" {
		return url, nil
	}

	var previous string
	_, err = uc.repo.Mutate(ctx, upload.ClientID, func(c *domain.Client) error {
		previous = c.LogoURL
		c.LogoURL = url
		return nil
	})
	if err != nil {
		return "", err
	}

	if previous != "" && previous != url {
		if err := uc.storage.DeleteURL(ctx, previous); err != nil {
			slog.WarnContext(ctx, "failed to delete replaced logo",
				slog.String("module", "logo"),
				slog.String("url", previous),
				slog.String("error", err.Error()),
			)
		}
	}
	return url, nil
}
