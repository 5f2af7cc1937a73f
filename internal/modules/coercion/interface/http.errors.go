package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/shared/auth"
	"safeCast/internal/shared/httputil"
	"safeCast/internal/shared/normalization"
)

// ErrorBody is the JSON error payload. Failure is set for coercion failures.
type ErrorBody struct {
	Error   string                  `json:"error"`
	Failure *domain.CoercionFailure `json:"failure,omitempty"`
}

// NewErrorMapper maps the errors the coercion endpoints can produce.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(domain.ErrCoercion, http.StatusUnprocessableEntity, "coercion failed").
		WithMapping(normalization.ErrUnknownTarget, http.StatusBadRequest, "unknown target").
		WithMapping(normalization.ErrEmptyPayload, http.StatusBadRequest, "empty payload").
		WithMapping(normalization.ErrMalformedPayload, http.StatusBadRequest, "malformed payload").
		WithMapping(usecase.ErrEmptyBatch, http.StatusBadRequest, "empty batch").
		WithMapping(usecase.ErrBatchTooLarge, http.StatusRequestEntityTooLarge, "batch too large").
		WithMapping(auth.ErrMissingToken, http.StatusUnauthorized, "missing token").
		WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token").
		WithMapping(auth.ErrMissingScope, http.StatusForbidden, "forbidden")
}

func errorBody(mapper *httputil.ErrorMapper, err error) (int, ErrorBody) {
	info := mapper.Map(err)
	body := ErrorBody{Error: info.Message}
	if failure, ok := domain.AsFailure(err); ok {
		body.Failure = failure
	}
	return info.Status, body
}

func respondError(c echo.Context, mapper *httputil.ErrorMapper, err error) error {
	status, body := errorBody(mapper, err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", slog.String("path", c.Path()), slog.Int("status", status), slog.Any("error", err))
	} else {
		slog.Debug("request rejected", slog.String("path", c.Path()), slog.Int("status", status), slog.Any("error", err))
	}
	return c.JSON(status, body)
}
