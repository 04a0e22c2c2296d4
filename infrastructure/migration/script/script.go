package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/petshop-admin-api/internal/config"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/realtime"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const notifyFunction = "dashboard_notify_change"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		role_id       INTEGER NOT NULL REFERENCES roles(id),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS dados_cliente (
		id         BIGSERIAL PRIMARY KEY,
		nome       TEXT,
		telefone   TEXT,
		email      TEXT,
		nome_pet   TEXT,
		porte_pet  TEXT,
		raca_pet   TEXT,
		sessionid  TEXT,
		cpf_cnpj   TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS n8n_chat_histories (
		id         SERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		message    JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS n8n_chat_histories_session_idx ON n8n_chat_histories (session_id, id DESC)`,
	`CREATE TABLE IF NOT EXISTS produtos (
		id         TEXT PRIMARY KEY,
		nome       TEXT NOT NULL,
		descricao  TEXT,
		preco      NUMERIC(12,2) NOT NULL DEFAULT 0,
		categoria  TEXT,
		ativo      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS servicos (
		id              TEXT PRIMARY KEY,
		nome            TEXT NOT NULL,
		descricao       TEXT,
		preco           NUMERIC(12,2) NOT NULL DEFAULT 0,
		categoria       TEXT,
		duracao_minutos INTEGER,
		ativo           BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS estoque (
		id                TEXT PRIMARY KEY,
		produto_id        TEXT NOT NULL REFERENCES produtos(id) ON DELETE CASCADE,
		quantidade        INTEGER NOT NULL DEFAULT 0,
		quantidade_minima INTEGER NOT NULL DEFAULT 5,
		preco_custo       NUMERIC(12,2) NOT NULL DEFAULT 0,
		lote              TEXT NOT NULL DEFAULT '',
		data_validade     DATE,
		status            TEXT NOT NULL DEFAULT 'ativo',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pedidos (
		id               TEXT PRIMARY KEY,
		cliente_nome     TEXT NOT NULL,
		cliente_telefone TEXT,
		items            JSONB NOT NULL DEFAULT '[]',
		valor_total      NUMERIC(12,2) NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'pendente',
		tipo             TEXT,
		observacoes      TEXT,
		data_entrega     TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS funcionarios (
		id            TEXT PRIMARY KEY,
		nome          TEXT NOT NULL,
		cargo         TEXT NOT NULL,
		email         TEXT,
		telefone      TEXT,
		salario       NUMERIC(12,2),
		data_admissao DATE,
		status        TEXT NOT NULL DEFAULT 'ativo',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS vendas (
		id               TEXT PRIMARY KEY,
		cliente_id       BIGINT REFERENCES dados_cliente(id) ON DELETE SET NULL,
		cliente_nome     TEXT,
		tipo             TEXT NOT NULL,
		item_nome        TEXT NOT NULL,
		quantidade       INTEGER NOT NULL DEFAULT 1,
		valor_unitario   NUMERIC(12,2) NOT NULL DEFAULT 0,
		valor_total      NUMERIC(12,2) NOT NULL DEFAULT 0,
		metodo_pagamento TEXT,
		data_venda       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status           TEXT NOT NULL DEFAULT 'concluida'
	)`,
	`CREATE INDEX IF NOT EXISTS vendas_status_data_idx ON vendas (status, data_venda DESC)`,
}

// a função recebe o canal como argumento do trigger, um canal por tabela
var notifyFunctionSQL = fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(TG_ARGV[0], json_build_object('table', TG_TABLE_NAME, 'op', TG_OP)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`, notifyFunction)

func setupLogger() {
	if err := log.Setup(os.Getenv("LOG_LEVEL")); err != nil {
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.Info("Iniciando script de migração...")
}

func createSchema(tx *sql.Tx) error {
	startTime := time.Now()

	for i, statement := range schema {
		if _, err := tx.Exec(statement); err != nil {
			return fmt.Errorf("erro no comando %d do schema: %w", i+1, err)
		}
	}

	logrus.WithField("elapsed", time.Since(startTime).String()).
		Infof("Schema aplicado: %d comandos", len(schema))
	return nil
}

func createNotifyTriggers(tx *sql.Tx) error {
	if _, err := tx.Exec(notifyFunctionSQL); err != nil {
		return fmt.Errorf("erro ao criar função de notificação: %w", err)
	}

	for _, channel := range realtime.Channels {
		table := realtime.ChannelTables[channel]
		trigger := table + "_dashboard_notify"

		if _, err := tx.Exec(fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, trigger, table)); err != nil {
			return fmt.Errorf("erro ao remover trigger %s: %w", trigger, err)
		}

		_, err := tx.Exec(fmt.Sprintf(
			`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH STATEMENT EXECUTE FUNCTION %s('%s')`,
			trigger, table, notifyFunction, channel,
		))
		if err != nil {
			return fmt.Errorf("erro ao criar trigger %s: %w", trigger, err)
		}

		logrus.WithFields(logrus.Fields{
			"table":   table,
			"channel": channel,
		}).Info("Trigger de notificação criado")
	}

	return nil
}

func seedRoles(tx *sql.Tx) error {
	roles := map[int]string{
		domain.RoleAdmin:     "admin",
		domain.RoleAttendant: "atendente",
	}

	for id, name := range roles {
		if _, err := tx.Exec(`INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, id, name); err != nil {
			return fmt.Errorf("erro ao inserir perfil %s: %w", name, err)
		}
	}

	return nil
}

// seedAdmin cria o primeiro administrador a partir de ADMIN_EMAIL/ADMIN_PASSWORD
func seedAdmin(tx *sql.Tx) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logrus.Warn("ADMIN_EMAIL ou ADMIN_PASSWORD não definidos, administrador inicial não criado")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO users (name, email, password_hash, active, role_id) VALUES ($1, $2, $3, TRUE, $4) ON CONFLICT (email) DO NOTHING`,
		"Administrador", email, string(hash), domain.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("erro ao inserir administrador: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		logrus.WithField("email", email).Info("Administrador já existe")
		return nil
	}

	logrus.WithField("email", email).Info("Administrador inicial criado")
	return nil
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	logrus.Info("Conectando ao banco de dados...")

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.Fatalf("ERRO ao verificar conexão com o banco: %v", err)
	}
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	tx, err := db.Begin()
	if err != nil {
		logrus.Fatalf("ERRO ao iniciar transação: %v", err)
	}

	steps := []struct {
		name string
		run  func(*sql.Tx) error
	}{
		{"schema", createSchema},
		{"triggers", createNotifyTriggers},
		{"perfis", seedRoles},
		{"administrador", seedAdmin},
	}

	for _, step := range steps {
		if err := step.run(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logrus.Fatalf("ERRO ao reverter transação: %v", rbErr)
			}
			logrus.Fatalf("ERRO na etapa %s: %v", step.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logrus.Fatalf("ERRO ao confirmar transação: %v", err)
	}

	logrus.Info("Migração concluída com sucesso")
}
