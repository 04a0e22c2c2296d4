package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/vfg2006/petshop-admin-api/pkg/log"
)

// HealthCheck testa uma dependência externa (postgres, redis)
type HealthCheck func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthcheckHandler responde 503 se qualquer dependência falhar
func HealthcheckHandler(checks map[string]HealthCheck) http.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response := healthResponse{
			Status: "ok",
			Time:   time.Now().Format(time.RFC3339),
			Checks: make(map[string]string, len(checks)),
		}
		status := http.StatusOK

		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).WithField("dependency", name).Warn("Healthcheck com falha")
				response.Checks[name] = "down"
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			response.Checks[name] = "up"
		}

		writeJSON(w, status, response)
	})
}
