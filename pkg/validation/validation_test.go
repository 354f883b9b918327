package validation

import (
	"testing"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		fields []string
	}{
		{
			name: "Venda válida",
			input: &domain.CreateSaleRequest{
				PaymentMethod: domain.PaymentCash,
				Items:         []domain.LineItemRequest{{ProductID: 1, ColorName: "Black", SizeLabel: "M", Quantity: 1}},
			},
		},
		{
			name:   "Venda sem itens",
			input:  &domain.CreateSaleRequest{PaymentMethod: domain.PaymentCash},
			fields: []string{"items"},
		},
		{
			name: "Item com quantidade zero",
			input: &domain.CreateSaleRequest{
				PaymentMethod: domain.PaymentVisa,
				Items:         []domain.LineItemRequest{{ProductID: 1, ColorName: "Black", SizeLabel: "M"}},
			},
			fields: []string{"items[0].quantity"},
		},
		{
			name:   "Forma de pagamento desconhecida",
			input:  &domain.CreateOrderRequest{CustomerName: "Sara", Phone: "0790000000", Region: "Amman", Address: "Rua 1", PaymentMethod: "cash", Items: []domain.LineItemRequest{{ProductID: 1, ColorName: "Red", SizeLabel: "S", Quantity: 1}}},
			fields: []string{"payment_method"},
		},
		{
			name:   "PIN não numérico",
			input:  &domain.CreateEmployeeRequest{Name: "Hadeel", Pin: "abcd"},
			fields: []string{"pin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var fieldErrors Errors
			require.ErrorAs(t, err, &fieldErrors)

			got := make([]string, 0, len(fieldErrors))
			for _, fe := range fieldErrors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestErrors_Error(t *testing.T) {
	err := Errors{{Field: "items", Rule: "min", Param: "1"}, {Field: "payment_method", Rule: "required"}}
	assert.Equal(t, "campos inválidos: items (min=1), payment_method (required)", err.Error())
}
