package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

var (
	ErrInvalidKey        = errors.New("chave de criptografia deve ter 32 bytes em base64")
	ErrMalformedCipher   = errors.New("credencial criptografada malformada")
	ErrDecryptionFailure = errors.New("falha ao descriptografar credencial")
)

// Box criptografa tokens de acesso com nacl/secretbox. O formato armazenado é nonce || selo.
type Box struct {
	key [keySize]byte
}

func NewBox(base64Key string) (*Box, error) {
	raw, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	if len(raw) != keySize {
		return nil, ErrInvalidKey
	}

	b := &Box{}
	copy(b.key[:], raw)

	return b, nil
}

// Seal criptografa o token com um nonce aleatório
func (b *Box) Seal(token Token) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("erro ao gerar nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], []byte(token.Reveal()), &nonce, &b.key), nil
}

// Open descriptografa o conteúdo gerado por Seal
func (b *Box) Open(sealed []byte) (Token, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrMalformedCipher
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrDecryptionFailure
	}

	return Token(plain), nil
}
