package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/present/rest/presenter"
	"github.com/agencyhub/agencyhub/internal/usecase"
)

func (h *Handler) handleGenerateContent(c echo.Context) error {
	var req domain.ContentRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	output, err := h.content.Generate(c.Request().Context(), req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, output)
}

type generateVariantRequest struct {
	ClientID  string `json:"clientId"`
	ContentID string `json:"contentId"`
	// Confirm acknowledges that regenerating discards the current tallies.
	Confirm bool `json:"confirm"`
}

func (h *Handler) handleGenerateVariant(c echo.Context) error {
	var req generateVariantRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ClientID == "" || req.ContentID == "" {
		return presenter.BadRequestMessage(c, "clientId and contentId are required")
	}

	result, err := h.content.GenerateVariant(c.Request().Context(), req.ClientID, req.ContentID, req.Confirm)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleRefineContent(c echo.Context) error {
	var input usecase.RefineInput
	err := c.Bind(&input)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	output, err := h.content.Refine(c.Request().Context(), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, output)
}

type clientRequest struct {
	ClientID string `json:"clientId"`
}

func (h *Handler) handleGenerateProposal(c echo.Context) error {
	var req clientRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ClientID == "" {
		return presenter.BadRequestMessage(c, "clientId is required")
	}

	proposal, err := h.proposal.Generate(c.Request().Context(), req.ClientID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"proposal": proposal})
}

type reportRequest struct {
	ClientID string `json:"clientId"`
	Focus    string `json:"focus"`
}

func (h *Handler) handleGenerateReport(c echo.Context) error {
	var req reportRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ClientID == "" {
		return presenter.BadRequestMessage(c, "clientId is required")
	}

	report, err := h.content.Report(c.Request().Context(), req.ClientID, req.Focus)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"report": report})
}

func (h *Handler) handleGenerateProposalPDF(c echo.Context) error {
	var req clientRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ClientID == "" {
		return presenter.BadRequestMessage(c, "clientId is required")
	}

	pdf, err := h.proposal.GeneratePDF(c.Request().Context(), req.ClientID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"pdf": pdf})
}

func (h *Handler) handleRenderPDF(c echo.Context) error {
	var doc domain.PDFDocument
	err := c.Bind(&doc)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if doc.Kind == "" {
		doc.Kind = domain.DocumentOnePager
	}

	pdf, err := h.proposal.Render(c.Request().Context(), doc)
	if err != nil {
		return presenter.Error(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="document.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

type analyzeBrandRequest struct {
	ClientID string `json:"clientId"`
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) handleAnalyzeBrand(c echo.Context) error {
	var req analyzeBrandRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ClientID == "" {
		return presenter.BadRequestMessage(c, "clientId is required")
	}

	profile, err := h.brand.Analyze(c.Request().Context(), req.ClientID, req.ImageURL)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"brandProfile": profile})
}

type discoveryChatRequest struct {
	DiscoveryLinkID string            `json:"discoveryLinkId"`
	Messages        []domain.ChatTurn `json:"messages"`
}

func (h *Handler) handleDiscoveryChat(c echo.Context) error {
	var req discoveryChatRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.DiscoveryLinkID == "" {
		return presenter.BadRequestMessage(c, "discoveryLinkId is required")
	}

	reply, err := h.onboarding.DiscoveryReply(c.Request().Context(), req.DiscoveryLinkID, req.Messages)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"message": reply})
}

type completeDiscoveryRequest struct {
	DiscoveryLinkID string `json:"discoveryLinkId"`
	usecase.DiscoveryResult
}

func (h *Handler) handleCompleteDiscovery(c echo.Context) error {
	var req completeDiscoveryRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.DiscoveryLinkID == "" {
		return presenter.BadRequestMessage(c, "discoveryLinkId is required")
	}

	client, err := h.onboarding.CompleteDiscovery(c.Request().Context(), req.DiscoveryLinkID, req.DiscoveryResult)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok", "onboardingStage": client.OnboardingStage})
}
