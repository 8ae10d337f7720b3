package handler

import (
	"errors"
	"net/http"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/middleware"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// bindAndValidate binds the JSON body and runs the validator tags.
// Returns false and writes the error response if either step fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido"))
		return false
	}
	return validate(c, req)
}

// bindQuery binds query parameters and runs the validator tags.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos"))
		return false
	}
	return validate(c, req)
}

func validate(c *gin.Context, req interface{}) bool {
	if errs := validation.Struct(req); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(errs))
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service sentinels to status codes. Anything else is
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound))
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidSetting):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrDuplicateOption):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSheetsDisabled):
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCreateOrder):
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// audit logs an admin write together with the session that made it.
func audit(c *gin.Context, action, target string) {
	ev := log.Info().
		Str("action", action).
		Str("target", target).
		Str("request_id", c.GetString(middleware.RequestIDKey))
	if claims := middleware.GetClaims(c); claims != nil {
		ev = ev.Str("admin", claims.Subject)
		if claims.Email != "" {
			ev = ev.Str("admin_email", claims.Email)
		}
	}
	ev.Msg("admin write")
}
