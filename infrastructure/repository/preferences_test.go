package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestPreferencesRepository_Load(t *testing.T) {
	t.Run("Chaves ausentes retornam preferências vazias", func(t *testing.T) {
		_, client := setupRedis(t)
		repo := NewPreferencesRepository(client, "petshop")

		prefs, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.Nil(t, prefs.WebhookEndpoints)
		assert.Empty(t, prefs.ZapierWebhook)
		assert.Nil(t, prefs.CardOrder)
	})

	t.Run("Mapa de endpoints salvo vazio não volta nil", func(t *testing.T) {
		_, client := setupRedis(t)
		repo := NewPreferencesRepository(client, "petshop")

		require.NoError(t, repo.Save(context.Background(), domain.Preferences{WebhookEndpoints: map[string]string{}}))

		prefs, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, prefs.WebhookEndpoints)
		assert.Empty(t, prefs.WebhookEndpoints)
	})

	t.Run("Endpoints gravados como null contam como salvos", func(t *testing.T) {
		mr, client := setupRedis(t)
		require.NoError(t, mr.Set("petshop:"+domain.PrefWebhookEndpoints, "null"))
		repo := NewPreferencesRepository(client, "petshop")

		prefs, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, prefs.WebhookEndpoints)
	})

	t.Run("Valor corrompido retorna erro", func(t *testing.T) {
		mr, client := setupRedis(t)
		require.NoError(t, mr.Set("petshop:"+domain.PrefCardOrder, "{nao-e-json"))
		repo := NewPreferencesRepository(client, "petshop")

		_, err := repo.Load(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.PrefCardOrder)
	})
}

func TestPreferencesRepository_SaveAndLoad(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewPreferencesRepository(client, "petshop")

	prefs := domain.Preferences{
		WebhookEndpoints: map[string]string{"produtos": "https://n8n.local/webhook/produtos"},
		ZapierWebhook:    "https://hooks.zapier.com/abc",
		CardOrder:        []string{"clients", "metrics"},
	}

	require.NoError(t, repo.Save(context.Background(), prefs))

	raw, err := mr.Get("petshop:" + domain.PrefZapierWebhook)
	require.NoError(t, err)
	assert.Equal(t, `"https://hooks.zapier.com/abc"`, raw)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prefs, *loaded)
}
