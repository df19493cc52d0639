package secret

import "encoding/json"

const redacted = "[REDACTED]"

// Token guarda um segredo em memória. Qualquer formatação (%v, %s, %#v, JSON) imprime apenas o marcador.
type Token string

func (t Token) String() string {
	return redacted
}

func (t Token) GoString() string {
	return redacted
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(redacted)
}

// Reveal retorna o valor real, para uso apenas no header de autorização
func (t Token) Reveal() string {
	return string(t)
}

func (t Token) IsEmpty() bool {
	return t == ""
}
