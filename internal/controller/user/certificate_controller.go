package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/service"
)

type CertificateController struct {
	certificateService service.CertificateService
}

func NewCertificateController(cs service.CertificateService) *CertificateController {
	return &CertificateController{certificateService: cs}
}

// GetUserCertificates godoc
// @Summary List certificates earned by a user
// @Tags Certificates
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.CertificateResponse
// @Router /users/{user_id}/certificates [get]
func (c *CertificateController) GetUserCertificates(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "user_id")
	if !ok {
		return
	}

	certs, err := c.certificateService.GetUserCertificates(userID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve certificates")
		return
	}
	ctx.JSON(http.StatusOK, certs)
}

// VerifyByCode godoc
// @Summary Verify a certificate by its public code
// @Description Public endpoint. Unknown codes are a plain 404, no distinction between never-issued and revoked.
// @Tags Certificates
// @Produce json
// @Param code path string true "Certificate code"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /certificates/verify/{code} [get]
func (c *CertificateController) VerifyByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	cert, err := c.certificateService.VerifyByCode(code)
	if err != nil {
		writeServiceError(ctx, err, "Failed to verify certificate")
		return
	}
	if cert == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Certificate not found"})
		return
	}
	ctx.JSON(http.StatusOK, cert)
}
