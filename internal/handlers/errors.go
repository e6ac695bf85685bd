// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/krowne/catalog-backend/internal/services"
	"github.com/krowne/catalog-backend/internal/utils"
)

// respondServiceError is the single place service failures become transport
// status codes. Handlers contain no other error branching.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "Product not found")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "Invalid password")
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrPageNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrUpstream):
		utils.BadGatewayResponse(c, err.Error())
	case errors.Is(err, services.ErrExtractFailed):
		utils.BadGatewayResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
