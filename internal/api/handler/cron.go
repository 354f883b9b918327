package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/utils"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeLowStock = "low-stock"
)

// CronJob é um job em segundo plano que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os jobs que podem ser executados manualmente
type CronJobServices struct {
	LowStockAlert CronJob
}

func (s CronJobServices) byType(cronType string) (CronJob, bool) {
	switch cronType {
	case CronJobTypeLowStock:
		return s.LowStockAlert, s.LowStockAlert != nil
	default:
		return nil, false
	}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		job, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeLowStock, nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Cron job disparada manualmente")
		job.TriggerManualSync()

		utils.WriteJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.LowStockAlert != nil {
			status[CronJobTypeLowStock] = services.LowStockAlert.GetStatus()
		}

		utils.WriteJSON(w, http.StatusOK, status)
	}
}
