package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/present/rest/middleware"
	"github.com/agencyhub/agencyhub/internal/present/rest/presenter"
	"github.com/agencyhub/agencyhub/internal/usecase"
)

// Subscriber streams realtime events of one channel.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan agencyhub.Event, error)
}

type Handler struct {
	config     domain.Config
	auth       *middleware.AuthMiddleware
	client     *usecase.ClientUsecase
	onboarding *usecase.OnboardingUsecase
	content    *usecase.ContentUsecase
	vote       *usecase.VoteUsecase
	proposal   *usecase.ProposalUsecase
	brand      *usecase.BrandUsecase
	logo       *usecase.LogoUsecase
	user       *usecase.UserUsecase
	campaign   *usecase.CampaignUsecase
	clientAuth *usecase.ClientAuthUsecase
	signal     Subscriber
}

func NewHandler(
	config domain.Config,
	auth *middleware.AuthMiddleware,
	client *usecase.ClientUsecase,
	onboarding *usecase.OnboardingUsecase,
	content *usecase.ContentUsecase,
	vote *usecase.VoteUsecase,
	proposal *usecase.ProposalUsecase,
	brand *usecase.BrandUsecase,
	logo *usecase.LogoUsecase,
	user *usecase.UserUsecase,
	campaign *usecase.CampaignUsecase,
	clientAuth *usecase.ClientAuthUsecase,
	signal Subscriber,
) *Handler {
	return &Handler{
		config:     config,
		auth:       auth,
		client:     client,
		onboarding: onboarding,
		content:    content,
		vote:       vote,
		proposal:   proposal,
		brand:      brand,
		logo:       logo,
		user:       user,
		campaign:   campaign,
		clientAuth: clientAuth,
		signal:     signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	team := h.auth.RequireTeamMember

	e.GET("/healthz", h.handleHealthz)

	// public
	e.GET("/api/clients/:id", h.handleGetClient)
	e.POST("/api/discovery-chat", h.handleDiscoveryChat)
	e.POST("/api/discovery/complete", h.handleCompleteDiscovery)
	e.POST("/api/record-vote", h.handleRecordVote)
	e.GET("/api/record-vote", h.handleGetVoteSession)
	e.GET("/api/vote-sessions/:publicVoteId/live", h.handleVoteLive)
	e.POST("/api/client-auth/signup", h.handleClientSignup)
	e.GET("/api/client-auth/profile", h.handleClientProfile)

	// operator
	e.POST("/api/clients", h.handleCreateClient, team)
	e.GET("/api/clients", h.handleListClients, team)
	e.PUT("/api/clients", h.handleUpdateClient, team)
	e.DELETE("/api/clients", h.handleDeleteClient, team)
	e.POST("/api/clients/:id/stage", h.handleSetStage, team)
	e.POST("/api/clients/:id/send-discovery", h.handleSendDiscovery, team)
	e.POST("/api/clients/:id/content", h.handleAddContent, team)
	e.PUT("/api/clients/:id/content/:contentId", h.handleEditContent, team)
	e.DELETE("/api/clients/:id/content/:contentId", h.handleRemoveContent, team)

	e.POST("/api/generate-content", h.handleGenerateContent, team)
	e.POST("/api/generate-variant", h.handleGenerateVariant, team)
	e.POST("/api/refine-content", h.handleRefineContent, team)
	e.POST("/api/generate-proposal", h.handleGenerateProposal, team)
	e.POST("/api/generate-report", h.handleGenerateReport, team)
	e.POST("/api/generate-proposal-pdf", h.handleGenerateProposalPDF, team)
	e.POST("/api/render-pdf", h.handleRenderPDF, team)
	e.POST("/api/analyze-brand", h.handleAnalyzeBrand, team)

	e.POST("/api/generate-vote-link", h.handleGenerateVoteLink, team)
	e.POST("/api/promote-variant", h.handlePromoteVariant, team)

	e.POST("/api/upload-logo", h.handleUploadLogo, team)

	e.GET("/api/users", h.handleGetUsers, team)
	e.POST("/api/users", h.handleCreateUser, team)
	e.PUT("/api/users", h.handleUpdateUser, team)
	e.DELETE("/api/users", h.handleDeleteUser, team)

	e.GET("/api/campaigns", h.handleListCampaigns, team)
	e.POST("/api/campaigns", h.handleCreateCampaign, team)
	e.PUT("/api/campaigns", h.handleUpdateCampaign, team)
	e.DELETE("/api/campaigns", h.handleDeleteCampaign, team)
}

func (h *Handler) handleHealthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// operator reports whether the request may use operator-only behavior on a
// public route.
func (h *Handler) operator(c echo.Context) bool {
	return !h.config.RequireAuth || middleware.IsTeamMember(c.Request().Context())
}

func (h *Handler) handleCreateClient(c echo.Context) error {
	ctx := c.Request().Context()

	var profile domain.ClientProfile
	err := c.Bind(&profile)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	client, err := h.client.Create(ctx, profile)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, client)
}

func (h *Handler) handleListClients(c echo.Context) error {
	clients, err := h.client.List(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, clients)
}

type updateClientRequest struct {
	ID string `json:"id"`
	domain.ClientProfile
}

func (h *Handler) handleUpdateClient(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateClientRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ID == "" {
		return presenter.BadRequestMessage(c, "id is required")
	}

	client, err := h.client.Update(ctx, req.ID, req.ClientProfile)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, client)
}

func (h *Handler) handleDeleteClient(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return presenter.BadRequestMessage(c, "id parameter is required")
	}

	err := h.client.Delete(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// handleGetClient resolves a client by id, or by discovery link id when
// byLinkId is true. Only the link lookup is open to the public.
func (h *Handler) handleGetClient(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	byLink := false
	if s := c.QueryParam("byLinkId"); s != "" {
		parsed, err := strconv.ParseBool(s)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid byLinkId parameter")
		}
		byLink = parsed
	}

	if byLink {
		client, err := h.client.GetByDiscoveryLink(ctx, id)
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.OK(c, client)
	}

	if !h.operator(c) {
		return presenter.Forbidden(c, "team members only")
	}
	client, err := h.client.Get(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, client)
}

type stageRequest struct {
	Stage string `json:"stage"`
}

func (h *Handler) handleSetStage(c echo.Context) error {
	var req stageRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	client, err := h.onboarding.SetStage(c.Request().Context(), c.Param("id"), req.Stage)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, client)
}

type sendDiscoveryRequest struct {
	SendEmail bool `json:"sendEmail"`
}

func (h *Handler) handleSendDiscovery(c echo.Context) error {
	var req sendDiscoveryRequest
	if c.Request().ContentLength != 0 {
		err := c.Bind(&req)
		if err != nil {
			return presenter.BadRequest(c, err)
		}
	}

	invite, err := h.onboarding.SendDiscovery(c.Request().Context(), c.Param("id"), req.SendEmail)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, invite)
}

func (h *Handler) handleAddContent(c echo.Context) error {
	var input usecase.ContentInput
	err := c.Bind(&input)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	item, err := h.content.AddContent(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, item)
}

func (h *Handler) handleEditContent(c echo.Context) error {
	var input usecase.EditInput
	err := c.Bind(&input)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	item, err := h.content.EditContent(c.Request().Context(), c.Param("id"), c.Param("contentId"), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, item)
}

func (h *Handler) handleRemoveContent(c echo.Context) error {
	err := h.content.RemoveContent(c.Request().Context(), c.Param("id"), c.Param("contentId"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}
