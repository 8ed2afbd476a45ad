package adaptor

import (
	"context"
	"net/http"
	"time"

	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// HealthChecker reports whether the backing store answers.
type HealthChecker func(ctx context.Context) error

type HealthHandler struct {
	check HealthChecker
	log   *zap.Logger
}

func NewHealthHandler(check HealthChecker, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		check: check,
		log:   log.With(zap.String("handler", "health")),
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.check(ctx); err != nil {
			h.log.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	utils.ResponseSuccess(w, healthResponse{Status: "ok"})
}
