package domain

// Chaves persistidas das preferências do painel
const (
	PrefWebhookEndpoints = "webhookEndpoints"
	PrefZapierWebhook    = "zapierWebhook"
	PrefCardOrder        = "dashboard-card-order"
)

// DefaultCardOrder é a ordem dos cards do painel quando nada foi salvo
var DefaultCardOrder = []string{
	"metrics",
	"export-data",
	"chats",
	"knowledge",
	"clients",
	"evolution",
	"schedule",
	"funcionarios",
	"pets",
	"produtos",
	"servicos",
	"estoque",
	"pedidos",
	"config",
}

type Preferences struct {
	WebhookEndpoints map[string]string `json:"webhookEndpoints"`
	ZapierWebhook    string            `json:"zapierWebhook"`
	CardOrder        []string          `json:"cardOrder"`
}

func (p Preferences) Clone() Preferences {
	clone := Preferences{
		WebhookEndpoints: make(map[string]string, len(p.WebhookEndpoints)),
		ZapierWebhook:    p.ZapierWebhook,
		CardOrder:        append([]string(nil), p.CardOrder...),
	}
	for name, url := range p.WebhookEndpoints {
		clone.WebhookEndpoints[name] = url
	}
	return clone
}

type AgendaType string

const (
	AgendaGeneral  AgendaType = "geral"
	AgendaGrooming AgendaType = "banho"
	AgendaVet      AgendaType = "vet"
)

func ParseAgendaType(s string) (AgendaType, bool) {
	switch AgendaType(s) {
	case AgendaGeneral, AgendaGrooming, AgendaVet:
		return AgendaType(s), true
	}
	return "", false
}

// EndpointSuffix é o sufixo anexado à URL base da agenda
func (a AgendaType) EndpointSuffix() string {
	switch a {
	case AgendaGrooming:
		return "/banho"
	case AgendaVet:
		return "/vet"
	default:
		return ""
	}
}
