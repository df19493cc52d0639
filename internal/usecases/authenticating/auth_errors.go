package authenticating

import "errors"

var (
	ErrInvalidToken   = errors.New("token inválido")
	ErrExpiredToken   = errors.New("token expirado")
	ErrMissingSecret  = errors.New("AUTH_SECRET não configurado")
	ErrUnknownRole    = errors.New("papel desconhecido")
	ErrMissingSubject = errors.New("token sem identificação do operador")
)
