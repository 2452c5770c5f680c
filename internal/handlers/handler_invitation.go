package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/teamdesk/team_desk_app/internal/apperrors"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
	"github.com/teamdesk/team_desk_app/internal/dto"
	"github.com/teamdesk/team_desk_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// invitationHandler handles HTTP requests related to project invitations.
type invitationHandler struct {
	invitationService portssvc.InvitationSvcFacade
}

// newInvitationHandler creates a new invitationHandler.
func newInvitationHandler(is portssvc.InvitationSvcFacade) *invitationHandler {
	return &invitationHandler{
		invitationService: is,
	}
}

// registerProjectInvitationRoutes registers invitation routes nested under a
// specific project.
func registerProjectInvitationRoutes(rg *gin.RouterGroup, invitationService portssvc.InvitationSvcFacade) {
	h := newInvitationHandler(invitationService)

	invitations := rg.Group("/invitations")
	{
		invitations.POST("", h.createInvitation)
		invitations.GET("", h.listProjectInvitations)
	}
}

// registerInvitationRoutes registers routes addressed by invitation ID.
func registerInvitationRoutes(rg *gin.RouterGroup, invitationService portssvc.InvitationSvcFacade) {
	h := newInvitationHandler(invitationService)

	invitationSpecific := rg.Group("/invitations/:invitation_id")
	{
		invitationSpecific.POST("/accept", h.acceptInvitation)
		invitationSpecific.POST("/revoke", h.revokeInvitation)
	}
}

// createInvitation godoc
// @Summary Invite someone to a project
// @Description Creates a pending invitation of an email to a project. A prior pending invitation for the same email is superseded.
// @Tags invitations
// @Accept  json
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Param   invitation body dto.CreateInvitationRequest true "Invitee email"
// @Success 201 {object} dto.InvitationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not project creator or workspace OWNER)"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to create invitation"
// @Security BearerAuth
// @Router /projects/{project_id}/invitations [post]
func (h *invitationHandler) createInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvitation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inviterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Inviter user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("inviter_user_id", inviterUserID), slog.String("project_id", projectID))
	logger.Info("Received request to invite user to project")

	invitation, err := h.invitationService.Invite(c.Request.Context(), inviterUserID, projectID, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to create invitation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		}
		return
	}

	logger.Info("Invitation created successfully", slog.String("invitation_id", invitation.InvitationID))
	c.JSON(http.StatusCreated, dto.ToInvitationResponse(invitation))
}

// listProjectInvitations godoc
// @Summary List a project's invitations
// @Description Retrieves all invitations for a project, newest first. Allowed for the project's creator or a workspace OWNER.
// @Tags invitations
// @Produce  json
// @Param   project_id path string true "Project ID"
// @Success 200 {object} dto.ListInvitationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to list invitations"
// @Security BearerAuth
// @Router /projects/{project_id}/invitations [get]
func (h *invitationHandler) listProjectInvitations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("project_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invitations, err := h.invitationService.ListProjectInvitations(c.Request.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list project invitations", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invitations"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvitationsResponse(invitations))
}

// acceptInvitation godoc
// @Summary Accept an invitation
// @Description Accepts a pending invitation addressed to the authenticated user's email. On success the user becomes a MEMBER of the project's workspace.
// @Tags invitations
// @Produce  json
// @Param   invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.InvitationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (invitation addressed to a different email)"
// @Failure 404 {object} map[string]string "Invitation not found"
// @Failure 409 {object} map[string]string "Invitation is no longer pending"
// @Failure 500 {object} map[string]string "Failed to accept invitation"
// @Security BearerAuth
// @Router /invitations/{invitation_id}/accept [post]
func (h *invitationHandler) acceptInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invitationID := c.Param("invitation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("invitation_id", invitationID))

	invitation, err := h.invitationService.Accept(c.Request.Context(), userID, invitationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Invitation is no longer pending"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to accept invitation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invitation"})
		}
		return
	}

	logger.Info("Invitation accepted successfully")
	c.JSON(http.StatusOK, dto.ToInvitationResponse(invitation))
}

// revokeInvitation godoc
// @Summary Revoke an invitation
// @Description Withdraws a pending invitation. A no-op if the invitation is already accepted or revoked.
// @Tags invitations
// @Produce  json
// @Param   invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.InvitationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Invitation not found"
// @Failure 500 {object} map[string]string "Failed to revoke invitation"
// @Security BearerAuth
// @Router /invitations/{invitation_id}/revoke [post]
func (h *invitationHandler) revokeInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invitationID := c.Param("invitation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invitation, err := h.invitationService.Revoke(c.Request.Context(), userID, invitationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to revoke invitation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke invitation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationResponse(invitation))
}
