package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/present/rest/middleware"
	"github.com/agencyhub/agencyhub/internal/present/rest/presenter"
	"github.com/agencyhub/agencyhub/internal/usecase"
)

func (h *Handler) handleUploadLogo(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return presenter.BadRequestMessage(c, "file is required")
	}
	src, err := file.Open()
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	defer src.Close()

	url, err := h.logo.Upload(c.Request().Context(), usecase.LogoUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Size:        file.Size,
		Body:        src,
		ClientID:    c.FormValue("clientId"),
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"url": url})
}

func (h *Handler) handleClientSignup(c echo.Context) error {
	var input usecase.SignupInput
	err := c.Bind(&input)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	view, err := h.clientAuth.Signup(c.Request().Context(), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, view)
}

func (h *Handler) handleClientProfile(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.QueryParam("uid")

	if h.config.RequireAuth && middleware.RequesterUID(ctx) != uid && !middleware.IsTeamMember(ctx) {
		return presenter.Forbidden(c, "profile belongs to another user")
	}

	view, err := h.clientAuth.Profile(ctx, uid)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, view)
}

func (h *Handler) handleGetUsers(c echo.Context) error {
	ctx := c.Request().Context()

	uid := c.QueryParam("uid")
	if uid != "" {
		user, err := h.user.GetByFirebaseUID(ctx, uid)
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.OK(c, user)
	}

	users, err := h.user.List(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, users)
}

func (h *Handler) handleCreateUser(c echo.Context) error {
	var user domain.User
	err := c.Bind(&user)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	created, err := h.user.Create(c.Request().Context(), user)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleUpdateUser(c echo.Context) error {
	var user domain.User
	err := c.Bind(&user)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	updated, err := h.user.Update(c.Request().Context(), user)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleDeleteUser(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return presenter.BadRequestMessage(c, "id parameter is required")
	}

	err := h.user.Delete(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListCampaigns(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return presenter.BadRequestMessage(c, "userId parameter is required")
	}

	campaigns, err := h.campaign.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, campaigns)
}

func (h *Handler) handleCreateCampaign(c echo.Context) error {
	var campaign domain.Campaign
	err := c.Bind(&campaign)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	created, err := h.campaign.Create(c.Request().Context(), campaign)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleUpdateCampaign(c echo.Context) error {
	var campaign domain.Campaign
	err := c.Bind(&campaign)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	updated, err := h.campaign.Update(c.Request().Context(), campaign)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleDeleteCampaign(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return presenter.BadRequestMessage(c, "id parameter is required")
	}

	err := h.campaign.Delete(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}
