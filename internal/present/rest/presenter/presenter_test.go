package presenter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/internal/domain"
)

func TestError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid", domain.InvalidArgumentError{Message: "topic is required"}, http.StatusBadRequest, "topic is required"},
		{"already voted", domain.ErrAlreadyVoted, http.StatusForbidden, "already voted"},
		{"not found wrapped", errors.Wrap(domain.NotFoundError{Resource: "client"}, "load"), http.StatusNotFound, "client not found"},
		{"conflict", domain.ErrAlreadyHasAccount, http.StatusConflict, domain.ErrAlreadyHasAccount.Error()},
		{"internal", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := Error(c, tc.err); err != nil {
				t.Fatalf("presenter returned error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q got %q", tc.msg, body.Error)
			}
		})
	}
}
