// Package gateway adapts external services to the usecase ports.
package gateway

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("gateway")
