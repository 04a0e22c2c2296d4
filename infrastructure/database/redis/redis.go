package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vfg2006/petshop-admin-api/internal/config"
)

// NewClient abre o cliente Redis usado para as preferências do painel e valida a conexão
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
