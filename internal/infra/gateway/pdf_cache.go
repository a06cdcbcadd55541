package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/zeebo/xxh3"

	"github.com/agencyhub/agencyhub/internal/domain"
)

// memcached refuses items above 1MB.
const maxCachedPDF = 1000 * 1024

type renderer interface {
	Render(ctx context.Context, doc domain.PDFDocument) ([]byte, error)
}

// CachedPDFRenderer memoizes rendered documents in memcached, keyed by a hash
// of the whole document.
type CachedPDFRenderer struct {
	next renderer
	mc   *memcache.Client
	ttl  time.Duration
}

func NewCachedPDFRenderer(next renderer, mc *memcache.Client, ttl time.Duration) *CachedPDFRenderer {
	return &CachedPDFRenderer{next: next, mc: mc, ttl: ttl}
}

func pdfCacheKey(doc domain.PDFDocument) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return "pdf:" + strconv.FormatUint(xxh3.Hash(b), 16), nil
}

func (r *CachedPDFRenderer) Render(ctx context.Context, doc domain.PDFDocument) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "PDF.Gateway.CachedRender")
	defer span.End()

	key, err := pdfCacheKey(doc)
	if err != nil {
		return r.next.Render(ctx, doc)
	}

	item, err := r.mc.Get(key)
	if err == nil {
		return item.Value, nil
	}
	if err != memcache.ErrCacheMiss {
		slog.WarnContext(ctx, "pdf cache read failed",
			slog.String("module", "pdf"),
			slog.String("error", err.Error()),
		)
	}

	pdf, err := r.next.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	if len(pdf) <= maxCachedPDF {
		err = r.mc.Set(&memcache.Item{
			Key:        key,
			Value:      pdf,
			Expiration: int32(r.ttl.Seconds()),
		})
		if err != nil {
			slog.WarnContext(ctx, "pdf cache write failed",
				slog.String("module", "pdf"),
				slog.String("error", err.Error()),
			)
		}
	}
	return pdf, nil
}
