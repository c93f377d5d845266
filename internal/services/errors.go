package services

import (
	"errors"
	"net/http"

	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/platform/apierr"
)

// AsAPIError maps the domain error taxonomy onto HTTP status codes and
// machine-readable codes. Infeasibility is deliberately distinct from both
// validation failure and generic failure: callers react differently.
func AsAPIError(err error) *apierr.Error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return apierr.WithDetails(http.StatusBadRequest, "validation_failed", vErr, vErr.Fields)
	}

	var iErr *domain.InfeasibleConstraintError
	if errors.As(err, &iErr) {
		return apierr.New(http.StatusUnprocessableEntity, "infeasible_constraints", iErr)
	}

	var uErr *domain.UnknownIngredientError
	if errors.As(err, &uErr) {
		return apierr.New(http.StatusInternalServerError, "internal_inconsistency", uErr)
	}

	var cErr *domain.CatalogLoadError
	if errors.As(err, &cErr) {
		return apierr.New(http.StatusServiceUnavailable, "catalog_unavailable", cErr)
	}

	return apierr.New(http.StatusInternalServerError, "plan_generation_failed", err)
}
