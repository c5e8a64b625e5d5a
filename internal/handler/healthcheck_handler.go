package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger : зависимость, доступность которой проверяет healthcheck
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Healthcheck godoc
// @Summary Проверка работоспособности
// @Tags Healthcheck
// @Produce json
// @Success 200 {object} requestresponse.APIResponse
// @Failure 503 {object} requestresponse.ErrorResponse "База данных недоступна"
// @Router /api/v1/healthcheck [get]
func Healthcheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			sendErrorResponse(w, http.StatusServiceUnavailable, "database is unavailable")
			return
		}
		writeJSON(w, http.StatusOK, struct{}{}, "OK")
	}
}
