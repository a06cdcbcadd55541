package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/present/rest/presenter"
	"github.com/agencyhub/agencyhub/internal/usecase"
)

type voteLinkRequest struct {
	ClientID  string `json:"clientId"`
	ContentID string `json:"contentId"`
}

func (h *Handler) handleGenerateVoteLink(c echo.Context) error {
	var req voteLinkRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ClientID == "" || req.ContentID == "" {
		return presenter.BadRequestMessage(c, "clientId and contentId are required")
	}

	link, err := h.vote.OpenVoteLink(c.Request().Context(), req.ClientID, req.ContentID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, link)
}

type promoteRequest struct {
	ClientID         string `json:"clientId"`
	VariantContentID string `json:"variantContentId"`
}

func (h *Handler) handlePromoteVariant(c echo.Context) error {
	var req promoteRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ClientID == "" || req.VariantContentID == "" {
		return presenter.BadRequestMessage(c, "clientId and variantContentId are required")
	}

	result, err := h.content.PromoteVariant(c.Request().Context(), req.ClientID, req.VariantContentID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

func hasVoteCookie(c echo.Context, publicVoteID string) bool {
	_, err := c.Cookie(agencyhub.VoteCookieName(publicVoteID))
	return err == nil
}

type recordVoteRequest struct {
	PublicVoteID      string `json:"publicVoteId"`
	SelectedContentID string `json:"selectedContentId"`
}

func (h *Handler) handleRecordVote(c echo.Context) error {
	var req recordVoteRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	tally, err := h.vote.RecordVote(c.Request().Context(), usecase.RecordVoteInput{
		PublicVoteID:      req.PublicVoteID,
		SelectedContentID: req.SelectedContentID,
		HasCookie:         req.PublicVoteID != "" && hasVoteCookie(c, req.PublicVoteID),
		Voter: domain.Voter{
			IP:        c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		},
	})
	if err != nil {
		return presenter.Error(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     agencyhub.VoteCookieName(req.PublicVoteID),
		Value:    "1",
		Path:     "/",
		MaxAge:   int(agencyhub.VoteCookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   strings.HasPrefix(h.config.PublicBaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	return presenter.OK(c, tally)
}

func (h *Handler) handleGetVoteSession(c echo.Context) error {
	id := c.QueryParam("publicVoteId")
	if id == "" {
		return presenter.BadRequestMessage(c, "publicVoteId parameter is required")
	}

	view, err := h.vote.GetSession(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	view.HasVoted = hasVoteCookie(c, id)
	return presenter.OK(c, view)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleVoteLive streams the tally of one voting session: a snapshot first,
// then every published vote or reset.
func (h *Handler) handleVoteLive(c echo.Context) error {
	id := c.Param("publicVoteId")

	if h.signal == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "live updates are disabled"})
	}

	view, err := h.vote.GetSession(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	channel := agencyhub.VoteChannel(id)
	events, err := h.signal.Subscribe(ctx, channel)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.ErrorContext(
			ctx, "Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	err = ws.WriteJSON(agencyhub.Event{
		Channel:   channel,
		Type:      agencyhub.EventTypeSnapshot,
		Tally:     view.Tally,
		Timestamp: time.Now(),
	})
	if err != nil {
		return nil
	}

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			// clients only send heartbeats; anything read is discarded
			_, _, err := ws.ReadMessage()
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.DebugContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
