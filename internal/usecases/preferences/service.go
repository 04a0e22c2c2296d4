package preferences

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/vfg2006/petshop-admin-api/infrastructure/repository"
	"github.com/vfg2006/petshop-admin-api/internal/config"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
)

var (
	ErrInvalidEndpointName = errors.New("nome de endpoint inválido")
	ErrInvalidURL          = errors.New("url de webhook inválida")
	ErrEmptyCardOrder      = errors.New("ordem de cards vazia")
	ErrPersistPreferences  = errors.New("erro ao salvar preferências")
	ErrLoadPreferences     = errors.New("erro ao carregar preferências")
)

type PreferencesService interface {
	Load(ctx context.Context) error
	Current() domain.Preferences
	WebhookURL(name string) (string, bool)
	ZapierURL() string
	SetWebhookEndpoint(ctx context.Context, name, rawURL string) error
	RemoveWebhookEndpoint(ctx context.Context, name string) error
	SetZapierWebhook(ctx context.Context, rawURL string) error
	SetCardOrder(ctx context.Context, order []string) error
	ReorderCards(ctx context.Context, activeID, overID string) ([]string, error)
	ResetCardOrder(ctx context.Context) error
}

// Service mantém as preferências em memória; toda alteração é gravada no
// repositório antes de substituir o estado atual.
type Service struct {
	repo     repository.PreferencesRepository
	defaults map[string]string

	mu    sync.RWMutex
	prefs domain.Preferences
}

func NewService(cfg *config.Config, repo repository.PreferencesRepository) *Service {
	defaults := make(map[string]string, len(cfg.Webhook.EndpointMap))
	for name, u := range cfg.Webhook.EndpointMap {
		defaults[name] = u
	}

	s := &Service{
		repo:     repo,
		defaults: defaults,
	}
	s.prefs = s.withDefaults(domain.Preferences{})

	return s
}

// withDefaults usa os endpoints da configuração só quando nada foi salvo;
// um mapa salvo, mesmo vazio, é respeitado para que remoções sobrevivam ao restart.
func (s *Service) withDefaults(stored domain.Preferences) domain.Preferences {
	prefs := stored.Clone()

	if stored.WebhookEndpoints == nil {
		for name, u := range s.defaults {
			prefs.WebhookEndpoints[name] = u
		}
	}

	if len(prefs.CardOrder) == 0 {
		prefs.CardOrder = append([]string(nil), domain.DefaultCardOrder...)
	}

	return prefs
}

// Load lê as preferências salvas. Em caso de erro o estado padrão é mantido.
func (s *Service) Load(ctx context.Context) error {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadPreferences, err)
	}

	prefs := s.withDefaults(*stored)

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()

	log.ForComponent(ctx, "preferences").WithFields(log.Fields{
		"endpoints": len(prefs.WebhookEndpoints),
		"cards":     len(prefs.CardOrder),
	}).Info("preferences: preferências carregadas")

	return nil
}

func (s *Service) Current() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

func (s *Service) WebhookURL(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.prefs.WebhookEndpoints[name]
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return u, true
}

func (s *Service) ZapierURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.ZapierWebhook
}

// update aplica a alteração numa cópia, persiste e só então publica.
// Se change devolver false nada é gravado.
func (s *Service) update(ctx context.Context, change func(p *domain.Preferences) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs.Clone()
	if !change(&next) {
		return nil
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistPreferences, err)
	}

	s.prefs = next
	return nil
}

func (s *Service) SetWebhookEndpoint(ctx context.Context, name, rawURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidEndpointName
	}

	u, err := validateURL(rawURL)
	if err != nil {
		return err
	}

	return s.update(ctx, func(p *domain.Preferences) bool {
		p.WebhookEndpoints[name] = u
		return true
	})
}

func (s *Service) RemoveWebhookEndpoint(ctx context.Context, name string) error {
	return s.update(ctx, func(p *domain.Preferences) bool {
		delete(p.WebhookEndpoints, name)
		return true
	})
}

// SetZapierWebhook aceita string vazia para desligar a integração
func (s *Service) SetZapierWebhook(ctx context.Context, rawURL string) error {
	u := strings.TrimSpace(rawURL)
	if u != "" {
		var err error
		if u, err = validateURL(u); err != nil {
			return err
		}
	}

	return s.update(ctx, func(p *domain.Preferences) bool {
		p.ZapierWebhook = u
		return true
	})
}

func (s *Service) SetCardOrder(ctx context.Context, order []string) error {
	if len(order) == 0 {
		return ErrEmptyCardOrder
	}

	return s.update(ctx, func(p *domain.Preferences) bool {
		p.CardOrder = append([]string(nil), order...)
		return true
	})
}

// ReorderCards move o card activeID para a posição de overID. Ids
// desconhecidos deixam a ordem como está e nada é gravado.
func (s *Service) ReorderCards(ctx context.Context, activeID, overID string) ([]string, error) {
	var result []string

	err := s.update(ctx, func(p *domain.Preferences) bool {
		moved, ok := MoveCard(p.CardOrder, activeID, overID)
		result = append([]string(nil), moved...)
		if !ok {
			return false
		}
		p.CardOrder = moved
		return true
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) ResetCardOrder(ctx context.Context) error {
	return s.update(ctx, func(p *domain.Preferences) bool {
		p.CardOrder = append([]string(nil), domain.DefaultCardOrder...)
		return true
	})
}

// MoveCard remove o item de activeID e o reinsere no índice de overID
func MoveCard(order []string, activeID, overID string) ([]string, bool) {
	from, to := indexOf(order, activeID), indexOf(order, overID)
	if from == -1 || to == -1 {
		return order, false
	}

	moved := make([]string, 0, len(order))
	moved = append(moved, order[:from]...)
	moved = append(moved, order[from+1:]...)

	moved = append(moved[:to], append([]string{activeID}, moved[to:]...)...)
	return moved, true
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

func validateURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)

	parsed, err := url.ParseRequestURI(trimmed)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	return trimmed, nil
}
