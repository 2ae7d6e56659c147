package di

import (
	"go.uber.org/fx"

	"github.com/returnhelper/returnsvc/internal/adapter/carrier"
	"github.com/returnhelper/returnsvc/internal/adapter/push"
	"github.com/returnhelper/returnsvc/internal/app"
	"github.com/returnhelper/returnsvc/internal/cache"
	"github.com/returnhelper/returnsvc/internal/config"
	"github.com/returnhelper/returnsvc/internal/logger"
	"github.com/returnhelper/returnsvc/internal/pkg/auth"
	"github.com/returnhelper/returnsvc/internal/server/http/handlers"
	"github.com/returnhelper/returnsvc/internal/server/http/router"
	"github.com/returnhelper/returnsvc/internal/storage/postgres"
	"github.com/returnhelper/returnsvc/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		carrier.Module,
		push.Module,
		usecase.Module,
		fx.Provide(func(client carrier.Client) app.CarrierProvider { return client }),
		fx.Provide(func(client push.Client) app.PushSender { return client }),
		fx.Provide(func(facade *app.ReturnsFacade) handlers.ReturnHelperFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
