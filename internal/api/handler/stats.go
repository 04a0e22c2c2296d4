package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/statistics"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
)

const streamHeartbeat = 25 * time.Second

// GetStats devolve o último snapshot; sem snapshot ainda, calcula na hora
func GetStats(service statistics.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if stats, ok := service.Snapshot(); ok {
			writeJSON(w, http.StatusOK, stats)
			return
		}

		stats, err := service.Refresh(r.Context())
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

func RefreshStats(service statistics.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Refresh(r.Context())
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

func GetSalesStats(service statistics.SalesStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Refresh(r.Context())
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

// StreamStats publica cada novo snapshot como evento SSE "stats"
func StreamStats(service statistics.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Streaming não suportado", nil)
			return
		}

		updates, unsubscribe := service.Subscribe()
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		logger := log.ForComponent(r.Context(), "stats")
		logger.Info("stats: cliente conectado ao stream")

		if stats, ok := service.Snapshot(); ok {
			if err := writeStatsEvent(w, *stats); err != nil {
				return
			}
		}
		flusher.Flush()

		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				logger.Info("stats: cliente desconectado do stream")
				return
			case stats, ok := <-updates:
				if !ok {
					return
				}
				if err := writeStatsEvent(w, stats); err != nil {
					logger.WithError(err).Warn("stats: falha ao enviar evento")
					return
				}
				flusher.Flush()
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeStatsEvent(w http.ResponseWriter, stats domain.DashboardStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: stats\ndata: %s\n\n", payload)
	return err
}
