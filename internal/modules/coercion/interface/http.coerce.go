package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/modules/coercion/infrastructure"
	"safeCast/internal/shared/httputil"
	"safeCast/internal/shared/normalization"
)

const maxBodyBytes = 4 << 20

type valueRequest struct {
	Value json.RawMessage `json:"value"`
}

type batchResponse struct {
	Results []domain.Result `json:"results"`
}

// CoercionHandlers serves the HTTP coercion API.
type CoercionHandlers struct {
	coerceUC *usecase.CoerceUseCase
	hub      *infrastructure.Hub
	mapper   *httputil.ErrorMapper
}

func NewCoercionHandlers(coerceUC *usecase.CoerceUseCase, hub *infrastructure.Hub, mapper *httputil.ErrorMapper) *CoercionHandlers {
	if mapper == nil {
		mapper = NewErrorMapper()
	}
	return &CoercionHandlers{coerceUC: coerceUC, hub: hub, mapper: mapper}
}

// Health reports liveness, the accepted targets, the batch limit and the
// websocket subscriber count of each result topic.
func (h *CoercionHandlers) Health(c echo.Context) error {
	subscribers := make(map[string]int, len(defaultTopics))
	if h.hub != nil {
		for _, topic := range defaultTopics {
			subscribers[topic] = h.hub.Subscribers(topic)
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":        "ok",
		"targets":       domain.Targets(),
		"batchMaxItems": h.coerceUC.MaxItems(),
		"subscribers":   subscribers,
	})
}

// Coerce handles POST /v1/coerce/:target.
func (h *CoercionHandlers) Coerce(c echo.Context) error {
	return h.single(c, c.Param("target"))
}

// Classify handles POST /v1/classify.
func (h *CoercionHandlers) Classify(c echo.Context) error {
	return h.single(c, domain.TargetCollection.String())
}

// CoerceBatch handles POST /v1/coerce. Item failures are reported per item
// with a 200; only a rejected batch fails the request.
func (h *CoercionHandlers) CoerceBatch(c echo.Context) error {
	var batch domain.BatchCommand
	if err := decodeBody(c, &batch); err != nil {
		return respondError(c, h.mapper, err)
	}
	results, err := h.coerceUC.ExecuteBatch(c.Request().Context(), batch.Items)
	if err != nil {
		return respondError(c, h.mapper, err)
	}
	return c.JSON(http.StatusOK, batchResponse{Results: results})
}

func (h *CoercionHandlers) single(c echo.Context, target string) error {
	var req valueRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, h.mapper, err)
	}
	result, err := h.coerceUC.ExecuteCommand(c.Request().Context(), domain.CoerceCommand{
		RequestID: requestID(c),
		Target:    target,
		Value:     req.Value,
	})
	if err != nil {
		return respondError(c, h.mapper, err)
	}
	return c.JSON(http.StatusOK, result)
}

func decodeBody(c echo.Context, out any) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", normalization.ErrMalformedPayload, err)
	}
	if len(data) > maxBodyBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", normalization.ErrMalformedPayload, maxBodyBytes)
	}
	return normalization.DecodeJSONInto(data, out)
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
