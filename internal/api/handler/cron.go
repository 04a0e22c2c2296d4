package handler

import (
	"net/http"

	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
)

// CronJob é o agendador exposto para execução manual e consulta de status
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RunStatsCron dispara o recálculo de estatísticas fora do agendamento
func RunStatsCron(job CronJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de estatísticas não disponível", nil)
			return
		}

		started := job.TriggerManualSync()

		message := "Recálculo iniciado"
		status := http.StatusAccepted
		if !started {
			message = "Recálculo já em andamento"
			status = http.StatusConflict
		}

		writeJSON(w, status, map[string]any{
			"message": message,
			"type":    "stats",
		})
	}
}

func GetCronStatus(job CronJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if job != nil {
			status["stats"] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
