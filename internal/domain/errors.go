package domain

import "errors"

// Classificação de falhas da plataforma de anúncios
var (
	ErrRemoteAuth      = errors.New("credencial rejeitada pela plataforma")
	ErrRemoteRateLimit = errors.New("limite de requisições da plataforma atingido")
	ErrRemoteTimeout   = errors.New("plataforma não respondeu no tempo limite")
)
