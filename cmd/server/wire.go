// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/Mohit-R-04/FarmToMarket/internal/app"
	"github.com/Mohit-R-04/FarmToMarket/internal/booking"
	"github.com/Mohit-R-04/FarmToMarket/internal/config"
	"github.com/Mohit-R-04/FarmToMarket/internal/integrity"
	"github.com/Mohit-R-04/FarmToMarket/internal/jobs"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/platform/database"
	"github.com/Mohit-R-04/FarmToMarket/internal/platform/logger"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"
	"github.com/Mohit-R-04/FarmToMarket/internal/sellerrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/transportrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,

		// Domain Services
		product.NewGORMRepository,
		product.NewService,
		wire.Bind(new(product.Service), new(*product.ServiceImplementation)),
		sellerrequest.NewService,
		wire.Bind(new(sellerrequest.Service), new(*sellerrequest.ServiceImplementation)),
		transportrequest.NewService,
		wire.Bind(new(transportrequest.Service), new(*transportrequest.ServiceImplementation)),
		booking.NewService,
		wire.Bind(new(booking.Service), new(*booking.ServiceImplementation)),
		notification.NewGORMRepository,
		notification.NewService,
		wire.Bind(new(notification.Service), new(*notification.ServiceImplementation)),
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		integrity.NewService,
		wire.Bind(new(integrity.Service), new(*integrity.ServiceImplementation)),

		// Handlers
		product.NewHandler,
		sellerrequest.NewHandler,
		transportrequest.NewHandler,
		booking.NewHandler,
		notification.NewHandler,
		user.NewHandler,
		integrity.NewHandler,

		// Jobs
		jobs.NewOrphanSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
