package fx

import (
	"fightcard/internal/config"
	"fightcard/internal/database"
	"fightcard/internal/logger"
	"fightcard/internal/notify"
	"fightcard/internal/repository"
	"fightcard/internal/server"
	"fightcard/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos, bound to the store interfaces the services consume
	fx.Provide(fx.Annotate(repository.NewEventRepository, fx.As(new(service.EventStore)))),
	fx.Provide(fx.Annotate(repository.NewBoutRepository, fx.As(new(service.BoutStore)))),
	fx.Provide(fx.Annotate(repository.NewFighterRepository, fx.As(new(service.FighterStore)))),
	// notifications
	fx.Provide(fx.Annotate(notify.NewWebhookNotifier, fx.As(new(notify.Notifier)))),
	// svc
	fx.Provide(service.NewSequenceService),
	fx.Provide(service.NewCardService),
	fx.Provide(service.NewLiveService),
	fx.Provide(service.NewResultService),
	fx.Provide(service.NewReconcileService),
	// server
	fx.Provide(server.New),
)
