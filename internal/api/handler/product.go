package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/cataloging"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/utils"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Folga para os campos de texto de um multipart além da imagem
const multipartFieldsSlack = 1 << 20

// ListProducts lista produtos com busca por código, marca ou modelo
func ListProducts(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		channel := domain.Context(query.Get("context"))
		if !channel.IsValidFilter() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Contexto inválido", nil)
			return
		}

		limit, ok := queryLimit(w, r, defaultListLimit)
		if !ok {
			return
		}

		products, err := service.ListProducts(r.Context(), domain.ProductFilter{
			Search: strings.TrimSpace(query.Get("search")),
			Limit:  limit,
		})
		if err != nil {
			writeError(w, r, err, "Erro ao listar produtos")
			return
		}

		views := make([]domain.ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, domain.NewProductView(p, channel))
		}
		utils.WriteJSON(w, http.StatusOK, views)
	}
}

func GetProduct(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		product, err := service.GetProduct(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "Erro ao buscar produto")
			return
		}

		channel := domain.Context(r.URL.Query().Get("context"))
		utils.WriteJSON(w, http.StatusOK, domain.NewProductView(product, channel))
	}
}

// CreateProduct aceita JSON ou multipart com o arquivo em "image"
func CreateProduct(service cataloging.Cataloger, maxUploadBytes int64) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		input, image, cleanup, ok := readProductRequest(w, r, maxUploadBytes)
		if !ok {
			return
		}
		defer cleanup()

		product, err := service.CreateProduct(r.Context(), actor, input, image)
		if err != nil {
			writeError(w, r, err, "Erro ao criar produto")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, domain.NewProductView(product, actor.Context))
	})
}

func UpdateProduct(service cataloging.Cataloger, maxUploadBytes int64) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		input, image, cleanup, ok := readProductRequest(w, r, maxUploadBytes)
		if !ok {
			return
		}
		defer cleanup()

		product, err := service.UpdateProduct(r.Context(), actor, id, input, image)
		if err != nil {
			writeError(w, r, err, "Erro ao atualizar produto")
			return
		}

		utils.WriteJSON(w, http.StatusOK, domain.NewProductView(product, actor.Context))
	})
}

func DeleteProduct(service cataloging.Cataloger) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.DeleteProduct(r.Context(), actor, id); err != nil {
			writeError(w, r, err, "Erro ao excluir produto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// readProductRequest decodifica o corpo conforme o Content-Type. A função de
// limpeza remove os arquivos temporários do multipart.
func readProductRequest(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (*domain.ProductInput, io.Reader, func(), bool) {
	noop := func() {}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		var input domain.ProductInput
		if !decodeBody(w, r, &input) {
			return nil, nil, noop, false
		}
		return &input, nil, noop, true
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+multipartFieldsSlack)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiErrors.WriteError(w, apiErrors.ErrUploadTooLarge, "Arquivo acima do tamanho máximo permitido", nil)
			return nil, nil, noop, false
		}
		log.ForContext(r.Context()).WithError(err).Debug("Multipart inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler formulário", nil)
		return nil, nil, noop, false
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	input, err := productInputFromForm(r)
	if err != nil {
		cleanup()
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return nil, nil, noop, false
	}

	var image io.Reader
	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		image = file
		cleanup = func() {
			_ = file.Close()
			_ = r.MultipartForm.RemoveAll()
		}
	case !errors.Is(err, http.ErrMissingFile):
		cleanup()
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler imagem", nil)
		return nil, nil, noop, false
	}

	return input, image, cleanup, true
}

// productInputFromForm lê os campos do multipart. Cores, tamanhos, estoque e
// amostras de cor chegam como JSON em campos de texto.
func productInputFromForm(r *http.Request) (*domain.ProductInput, error) {
	input := &domain.ProductInput{
		ProductCode:  strings.TrimSpace(r.FormValue("product_code")),
		ModelNo:      optionalField(r, "model_no"),
		Brand:        optionalField(r, "brand"),
		ProductType:  optionalField(r, "product_type"),
		Specs:        optionalField(r, "specs"),
		MainImageURL: optionalField(r, "main_image_url"),
	}

	var err error
	if input.StorePrice, err = priceField(r, "store_price"); err != nil {
		return nil, err
	}
	if input.OnlinePrice, err = priceField(r, "online_price"); err != nil {
		return nil, err
	}

	jsonFields := []struct {
		name   string
		target any
	}{
		{"colors", &input.Colors},
		{"sizes", &input.Sizes},
		{"inventory", &input.Inventory},
		{"swatches", &input.Swatches},
	}
	for _, f := range jsonFields {
		raw := r.FormValue(f.name)
		if raw == "" {
			continue
		}
		if err := json.UnmarshalFromString(raw, f.target); err != nil {
			return nil, errors.New("campo " + f.name + " deve ser JSON válido")
		}
	}

	return input, nil
}

func optionalField(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return nil
	}
	return &value
}

func priceField(r *http.Request, name string) (decimal.NullDecimal, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, errors.New("campo " + name + " deve ser um valor decimal")
	}
	return decimal.NewNullDecimal(price), nil
}
