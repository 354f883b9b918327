package utils

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Só letras minúsculas e dígitos, para o nome valer em qualquer sistema de arquivos
const fileNameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomFileName gera um nome aleatório de tamanho size com a extensão informada.
// A extensão pode vir com ou sem ponto.
func RandomFileName(size int, ext string) (string, error) {
	name, err := gonanoid.Generate(fileNameAlphabet, size)
	if err != nil {
		return "", err
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name, nil
	}
	return name + "." + ext, nil
}
