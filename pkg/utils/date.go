package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate lê uma data YYYY-MM-DD no fuso local. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(DateLayout, dateStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q, use %s", dateStr, DateLayout)
	}

	return &date, nil
}

// ParseDateRange lê from/to inclusivos e devolve o intervalo [from, to+1dia)
func ParseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	from, err := ParseDate(fromStr)
	if err != nil {
		return nil, nil, err
	}

	to, err := ParseDate(toStr)
	if err != nil {
		return nil, nil, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("intervalo inválido: from depois de to")
	}

	return from, to, nil
}
