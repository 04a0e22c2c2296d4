package repository

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

var prefsCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// PreferencesRepository persiste as preferências do painel no Redis.
// Cada chave do painel vira uma chave Redis com o valor em JSON.
type PreferencesRepository interface {
	Load(ctx context.Context) (*domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}

type preferencesRepository struct {
	client *redis.Client
	prefix string
}

func NewPreferencesRepository(client *redis.Client, prefix string) PreferencesRepository {
	return &preferencesRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *preferencesRepository) key(name string) string {
	if r.prefix == "" {
		return name
	}
	return r.prefix + ":" + name
}

// Load devolve campos zerados para chaves ausentes; quem chama aplica os padrões.
// WebhookEndpoints nil indica chave ausente, um mapa salvo vem sempre não nil.
func (r *preferencesRepository) Load(ctx context.Context) (*domain.Preferences, error) {
	prefs := &domain.Preferences{}

	found, err := r.get(ctx, domain.PrefWebhookEndpoints, &prefs.WebhookEndpoints)
	if err != nil {
		return nil, err
	}
	if found && prefs.WebhookEndpoints == nil {
		prefs.WebhookEndpoints = map[string]string{}
	}
	if _, err := r.get(ctx, domain.PrefZapierWebhook, &prefs.ZapierWebhook); err != nil {
		return nil, err
	}
	if _, err := r.get(ctx, domain.PrefCardOrder, &prefs.CardOrder); err != nil {
		return nil, err
	}

	return prefs, nil
}

func (r *preferencesRepository) get(ctx context.Context, name string, dest any) (bool, error) {
	raw, err := r.client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao ler preferência %s: %w", name, err)
	}

	if err := prefsCodec.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("preferência %s corrompida: %w", name, err)
	}

	return true, nil
}

func (r *preferencesRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	values := map[string]any{
		domain.PrefWebhookEndpoints: prefs.WebhookEndpoints,
		domain.PrefZapierWebhook:    prefs.ZapierWebhook,
		domain.PrefCardOrder:        prefs.CardOrder,
	}

	encoded := make(map[string][]byte, len(values))
	for name, value := range values {
		raw, err := prefsCodec.Marshal(value)
		if err != nil {
			return fmt.Errorf("erro ao serializar preferência %s: %w", name, err)
		}
		encoded[name] = raw
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, raw := range encoded {
			pipe.Set(ctx, r.key(name), raw, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("erro ao salvar preferências: %w", err)
	}

	return nil
}
