package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/middleware"
	"github.com/laroza/pos-api/pkg/utils"
)

// Limites das listagens
const (
	defaultListLimit        = 50
	maxListLimit            = 200
	defaultActivityLimit    = 20
	defaultTopProductsLimit = 10
)

// writeError responde com o código do erro do caso de uso. Erros 5xx são
// registrados com a causa, que nunca vai para o cliente.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var coded apiErrors.Coded
	code := apiErrors.ErrInternalServer
	if errors.As(err, &coded) {
		code = coded.ErrorCode()
	}

	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		log.ForContext(r.Context()).WithError(err).Error(fallback)
	}

	apiErrors.WriteFromError(w, err, fallback)
}

// actorFrom monta o ator da sessão. Só é chamado em rotas protegidas pelo AuthMiddleware.
func actorFrom(r *http.Request) (domain.Actor, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return domain.Actor{}, false
	}
	return claims.Actor(), true
}

// withActor garante a sessão antes de chamar o handler
func withActor(next func(w http.ResponseWriter, r *http.Request, actor domain.Actor)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Sessão não encontrada", nil)
			return
		}
		next(w, r, actor)
	}
}

// pathID lê o parâmetro :id da rota, respondendo VAL_003 quando inválido
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(httprouter.ParamsFromContext(r.Context()).ByName("id"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return 0, false
	}
	return id, true
}

// queryLimit lê ?limit= com o padrão informado, respondendo VAL_001 quando inválido
func queryLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	limit, err := utils.ParseLimit(r.URL.Query().Get("limit"), def, maxListLimit)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return 0, false
	}
	return limit, true
}

// decodeBody lê o JSON do corpo, respondendo VAL_001 quando malformado
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.DecodeJSON(r.Body, v); err != nil {
		log.ForContext(r.Context()).WithError(err).Debug("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
		return false
	}
	return true
}
