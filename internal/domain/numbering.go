package domain

import (
	"fmt"
	"strconv"
)

// Nomes dos contadores em document_counters
const (
	CounterInvoice = "invoice"
	CounterOrder   = "order"
)

// NumberingScheme formata o valor de um contador no número do documento.
// Sem prefixo e sem largura o valor sai como inteiro simples ("7000001");
// com prefixo e largura sai preenchido com zeros ("ORD-001").
type NumberingScheme struct {
	Prefix string
	Width  int
	Base   int64
}

func (s NumberingScheme) Format(value int64) string {
	if s.Width <= 0 {
		return s.Prefix + strconv.FormatInt(value, 10)
	}
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, value)
}

// Seed é o valor inicial do contador, para que o primeiro número emitido seja Base
func (s NumberingScheme) Seed() int64 {
	base := s.Base
	if base < 1 {
		base = 1
	}
	return base - 1
}
