package http

import (
	"log/slog"
	"net/http"

	apierrors "assetlib/internal/errors"
	"assetlib/internal/exporter"
	"assetlib/internal/infrastructure"
	"assetlib/internal/middleware"
	"assetlib/internal/preview"
	"assetlib/internal/services"
)

// Deps are the collaborators shared by every handler
type Deps struct {
	Logger       *slog.Logger
	ErrorHandler *apierrors.ErrorHandler
	Validation   *middleware.ValidationMiddleware
	Queries      *middleware.QueryParamValidator
	// Metrics may be nil
	Metrics *infrastructure.BusinessMetrics
}

// NewDeps builds the shared collaborators around logger and errorHandler
func NewDeps(logger *slog.Logger, errorHandler *apierrors.ErrorHandler, metrics *infrastructure.BusinessMetrics) Deps {
	return Deps{
		Logger:       logger,
		ErrorHandler: errorHandler,
		Validation:   middleware.NewValidationMiddleware(logger, errorHandler),
		Queries:      middleware.NewQueryParamValidator(logger, errorHandler),
		Metrics:      metrics,
	}
}

func (d Deps) named(component string) Deps {
	d.Logger = infrastructure.WithComponent(d.Logger, component)
	return d
}

// ErrorMappings maps the domain errors of the library to problem documents
func ErrorMappings() []apierrors.Mapping {
	notFound := func(target error) apierrors.Mapping {
		return apierrors.Mapping{Target: target, Status: http.StatusNotFound, Type: apierrors.TypeNotFound, Title: "Not Found"}
	}
	badRequest := func(target error) apierrors.Mapping {
		return apierrors.Mapping{Target: target, Status: http.StatusBadRequest, Type: apierrors.TypeValidation, Title: "Bad Request"}
	}

	return []apierrors.Mapping{
		notFound(services.ErrKPINotFound),
		notFound(services.ErrLayoutNotFound),
		notFound(services.ErrStoryboardNotFound),
		notFound(services.ErrAssetNotFound),
		notFound(preview.ErrLayoutNotFound),
		notFound(preview.ErrSessionNotFound),

		badRequest(services.ErrInvalidAssetType),
		badRequest(services.ErrInvalidTab),
		badRequest(services.ErrInvalidSection),
		badRequest(services.ErrInvalidInput),
		badRequest(preview.ErrInvalidSelection),
		badRequest(preview.ErrInvalidCloseReason),
		badRequest(exporter.ErrUnsupportedFormat),
	}
}
