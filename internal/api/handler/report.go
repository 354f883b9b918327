package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/reporting"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/utils"
)

const topProductsPath = "top-products"

func DashboardStats(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.DashboardStats(r.Context(), domain.Context(r.URL.Query().Get("context")))
		if err != nil {
			writeError(w, r, err, "Erro ao carregar o painel")
			return
		}

		utils.WriteJSON(w, http.StatusOK, stats)
	}
}

// SalesReport atende /api/reports/:context/:period/:date
func SalesReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		date, err := utils.ParseDate(params.ByName("date"))
		if err != nil || date == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use AAAA-MM-DD", nil)
			return
		}

		report, err := service.SalesReport(
			r.Context(),
			domain.Context(params.ByName("context")),
			domain.ReportPeriod(params.ByName("period")),
			*date,
		)
		if err != nil {
			writeError(w, r, err, "Erro ao gerar relatório")
			return
		}

		utils.WriteJSON(w, http.StatusOK, report)
	}
}

// ReportsByContext atende /api/reports/:context. O httprouter não aceita um
// segmento fixo ao lado de um parâmetro, então top-products chega por aqui.
func ReportsByContext(service reporting.Reporter) http.HandlerFunc {
	topProducts := TopProducts(service)
	return func(w http.ResponseWriter, r *http.Request) {
		if httprouter.ParamsFromContext(r.Context()).ByName("context") != topProductsPath {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Relatório não encontrado", nil)
			return
		}
		topProducts(w, r)
	}
}

func TopProducts(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		from, to, err := utils.ParseDateRange(query.Get("from"), query.Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		limit, ok := queryLimit(w, r, defaultTopProductsLimit)
		if !ok {
			return
		}

		products, err := service.TopProducts(r.Context(), domain.TopProductsFilter{
			Context:     domain.Context(query.Get("context")),
			ReportRange: domain.ReportRange{From: from, To: to},
			Limit:       limit,
		})
		if err != nil {
			writeError(w, r, err, "Erro ao buscar produtos mais vendidos")
			return
		}

		utils.WriteJSON(w, http.StatusOK, products)
	}
}
