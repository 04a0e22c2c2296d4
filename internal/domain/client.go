package domain

import (
	"strings"
	"time"
)

// Client representa uma linha de dados_cliente (tutor + pet)
type Client struct {
	ID        int64      `json:"id"`
	Nome      *string    `json:"nome"`
	Telefone  *string    `json:"telefone"`
	Email     *string    `json:"email"`
	NomePet   *string    `json:"nome_pet"`
	PortePet  *string    `json:"porte_pet"`
	RacaPet   *string    `json:"raca_pet"`
	SessionID *string    `json:"sessionid"`
	CPFCNPJ   *string    `json:"cpf_cnpj"`
	CreatedAt *time.Time `json:"created_at"`
}

func (c *Client) HasPet() bool {
	return NonEmpty(c.NomePet)
}

// NonEmpty indica se o ponteiro tem conteúdo além de espaços
func NonEmpty(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// ValueOr devolve o conteúdo do ponteiro ou o valor padrão quando vazio
func ValueOr(s *string, fallback string) string {
	if !NonEmpty(s) {
		return fallback
	}
	return *s
}
