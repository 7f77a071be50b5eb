package payment

import (
	"errors"
	"net/http"

	"paygate-be/internal/account"
	"paygate-be/internal/gateway"
	"paygate-be/internal/invoice"
	"paygate-be/internal/logger"
	"paygate-be/internal/metrics"
	"paygate-be/internal/utils"

	"go.uber.org/zap"
)

type Handler struct {
	svc   Service
	stats func() metrics.ResolutionSnapshot
}

// NewHandler serves the payment API. stats feeds GET /metrics and may be nil.
func NewHandler(svc Service, stats func() metrics.ResolutionSnapshot) *Handler {
	return &Handler{svc: svc, stats: stats}
}

// RegisterRoutes mounts the API on mux. guards wrap POST /payments only,
// innermost first.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, guards ...func(http.Handler) http.Handler) {
	var payments http.Handler = http.HandlerFunc(h.RequestPayment)
	for _, guard := range guards {
		payments = guard(payments)
	}

	mux.Handle("POST /payments", payments)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /metrics", h.Metrics)
}

func (h *Handler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	pr, err := h.svc.RequestPayment(r.Context(), req)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			logger.FromCtx(r.Context()).Error("payment request failed",
				zap.Int("status", code),
				zap.Error(err),
			)
		}
		utils.WriteJSONError(w, err.Error(), code)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, pr)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	var snap metrics.ResolutionSnapshot
	if h.stats != nil {
		snap = h.stats()
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, gateway.ErrInvalidArgument),
		errors.Is(err, invoice.ErrInvalidTrackingNumber),
		errors.Is(err, invoice.ErrInvalidAmount),
		errors.Is(err, invoice.ErrInvalidCallbackURL),
		errors.Is(err, invoice.ErrGatewayNotSelected):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrGatewayNotFound),
		errors.Is(err, gateway.ErrAccountNotFound),
		errors.Is(err, account.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrAmbiguousGateway):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
