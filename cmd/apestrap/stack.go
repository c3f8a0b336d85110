package main

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/app"
	"github.com/iov-one/apestrap/x/ledger"
	"github.com/iov-one/apestrap/x/splitter"
)

// stack wires the ledger and the splitter extensions into a handler, a
// query router and a genesis initializer.
func stack() (apestrap.Handler, *app.QueryRouter, apestrap.Initializer) {
	auth := app.Authenticator{}
	ctrl := ledger.NewController()
	split := splitter.NewSplitter(ctrl, splitter.LogSink{})

	router := app.NewRouter()
	ledger.RegisterRoutes(router, auth, ctrl)
	splitter.RegisterRoutes(router, auth, split)

	handler := app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		app.NewSignerDecorator(),
		app.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(router)

	queries := app.NewQueryRouter()
	queries.RegisterAll(
		ledger.RegisterQuery,
		splitter.RegisterQuery,
	)

	init := app.ChainInitializers(
		ledger.Initializer{},
		splitter.Initializer{},
	)
	return handler, queries, init
}
