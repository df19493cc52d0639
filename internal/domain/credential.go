package domain

import (
	"time"

	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

// Credential é a credencial armazenada de um dono de conta. O token fica criptografado.
type Credential struct {
	OwnerID         string    `json:"owner_id"`
	RemoteAccountID string    `json:"remote_account_id"`
	ClientID        *string   `json:"client_id"`
	EncryptedToken  []byte    `json:"-"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func (c *Credential) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// SyncAccount é a conta pronta para sincronizar, com o token já descriptografado em memória
type SyncAccount struct {
	OwnerID         string
	RemoteAccountID string
	ClientID        *string
	Token           secret.Token
}
