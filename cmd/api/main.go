package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ads-sync-engine/internal/api"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/notifying"
	"github.com/vfg2006/ads-sync-engine/internal/scheduler"
	"github.com/vfg2006/ads-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/ads-sync-engine/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-engine/pkg/log"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	campaignRepo := repository.NewCampaignRepository(pgConn)
	adSetRepo := repository.NewAdSetRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)
	notificationRepo := repository.NewNotificationRepository(pgConn)

	box, err := secret.NewBox(cfg.Crypto.CredentialKey)
	if err != nil {
		logrus.WithError(err).Fatal("Chave de criptografia das credenciais inválida")
	}

	authenticator := authenticating.NewService(cfg)

	metaIntegrator := meta.New(metaclient.NewClient(cfg))

	dispatcher := notifying.NewDispatcher(notificationRepo, cfg)
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	engine := syncing.NewEngine(
		campaignRepo,
		adSetRepo,
		adRepo,
		metricRepo,
		syncing.NewOwnerResolver(cfg),
		dispatcher,
		cfg,
	)

	orchestrator := syncing.NewOrchestrator(
		credentialRepo,
		box,
		metaIntegrator,
		engine,
		dispatcher,
		cfg,
	)

	syncScheduler := scheduler.NewSyncScheduler(orchestrator, cfg)
	if err := syncScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização")
	}

	server, err := api.New(cfg, authenticator, syncScheduler, orchestrator)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource garante que o .env ao lado do binário seja encontrado em desenvolvimento
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Debug("Não foi possível mudar o diretório de trabalho")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
