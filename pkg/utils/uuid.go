package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12
)

// GenerateID gera ids curtos e legíveis para arquivos exportados e registros de demonstração
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}
