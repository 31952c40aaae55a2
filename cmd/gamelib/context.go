package main

import (
	"context"
	"sync"

	"gamelib/internal/cache"
	"gamelib/internal/catalog"
	"gamelib/internal/ingest"
)

type importer interface {
	Run(ctx context.Context, userID, handle string, opts ingest.Options) (ingest.Report, error)
}

type resolver interface {
	Resolve(ctx context.Context, c catalog.Candidate) (catalog.Game, error)
}

// app is the set of services the commands drive. pruner is nil when the
// configured cache backend expires entries on its own.
type app struct {
	importer importer
	resolver resolver
	pruner   cache.Pruner
	close    func()
}

type commandContext struct {
	build func(context.Context) (*app, error)

	once sync.Once
	app  *app
	err  error
}

func newCommandContext(build func(context.Context) (*app, error)) *commandContext {
	return &commandContext{build: build}
}

// ensureApp builds the services on first use so `gamelib --help` needs no
// database.
func (c *commandContext) ensureApp(ctx context.Context) (*app, error) {
	c.once.Do(func() {
		c.app, c.err = c.build(ctx)
	})
	return c.app, c.err
}

func (c *commandContext) close() {
	if c.app != nil && c.app.close != nil {
		c.app.close()
	}
}
