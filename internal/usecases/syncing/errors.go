package syncing

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialNotFound = errors.New("credencial não encontrada para o dono")
	ErrOwnerUnresolved    = errors.New("não foi possível definir o dono da campanha")
)

// AccountFetchError indica que a lista de campanhas da conta não pôde ser lida
// e nada da conta foi sincronizado
type AccountFetchError struct {
	AccountID string
	Err       error
}

func (e *AccountFetchError) Error() string {
	return fmt.Sprintf("erro ao listar campanhas da conta %s: %v", e.AccountID, e.Err)
}

func (e *AccountFetchError) Unwrap() error {
	return e.Err
}
