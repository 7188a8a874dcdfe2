package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/service"
	"github.com/rs/zerolog/log"
)

type ShareTokenController struct {
	sharingService service.SharingService
}

func NewShareTokenController(ss service.SharingService) *ShareTokenController {
	return &ShareTokenController{sharingService: ss}
}

// Create godoc
// @Summary Create a course share token
// @Tags Sharing
// @Accept json
// @Produce json
// @Param token body dto.ShareTokenCreateRequest true "Token parameters"
// @Success 201 {object} dto.ShareTokenResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /share-tokens [post]
func (c *ShareTokenController) Create(ctx *gin.Context) {
	var req dto.ShareTokenCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, err := c.sharingService.Create(req)
	if err != nil {
		log.Warn().Err(err).Uint("courseID", req.CourseID).Msg("Share token create failed")
		writeServiceError(ctx, err, "Failed to create share token")
		return
	}
	ctx.JSON(http.StatusCreated, token)
}

// Validate godoc
// @Summary Validate and consume a share token
// @Description A valid token has one use consumed atomically. Unknown, revoked, expired and exhausted tokens all come back as the same 404.
// @Tags Sharing
// @Accept json
// @Produce json
// @Param token body dto.ShareTokenValidateRequest true "Token string"
// @Success 200 {object} dto.ShareTokenResponse
// @Failure 404 {object} dto.ErrorResponse "Token not valid"
// @Router /share-tokens/validate [post]
func (c *ShareTokenController) Validate(ctx *gin.Context) {
	var req dto.ShareTokenValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, err := c.sharingService.ValidateAndConsume(req.Token)
	if err != nil {
		writeServiceError(ctx, err, "Failed to validate share token")
		return
	}
	if token == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Share token not valid"})
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// List godoc
// @Summary List share tokens created by a user
// @Tags Sharing
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.ShareTokenResponse
// @Router /users/{user_id}/share-tokens [get]
func (c *ShareTokenController) List(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "user_id")
	if !ok {
		return
	}

	tokens, err := c.sharingService.ListByCreator(userID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve share tokens")
		return
	}
	ctx.JSON(http.StatusOK, tokens)
}

// Revoke godoc
// @Summary Revoke a share token
// @Description Only the creator can revoke. Revoking an already inactive token is a no-op.
// @Tags Sharing
// @Param token_id path int true "Share token ID"
// @Param user_id query int true "Creator user ID"
// @Success 204 "Revoked"
// @Failure 404 {object} dto.ErrorResponse "Token not found for this creator"
// @Router /share-tokens/{token_id} [delete]
func (c *ShareTokenController) Revoke(ctx *gin.Context) {
	tokenID, ok := parseUintParam(ctx, "token_id")
	if !ok {
		return
	}
	userID, ok := parseUintQuery(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.sharingService.Revoke(tokenID, userID); err != nil {
		writeServiceError(ctx, err, "Failed to revoke share token")
		return
	}
	ctx.Status(http.StatusNoContent)
}
