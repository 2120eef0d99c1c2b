package main

import (
	"context"
	"database/sql"

	"catan/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is never invoked; the module is loaded as a Nakama plugin. It exists so
// that `go build ./...` can link this package outside of -buildmode=plugin.
func main() {}
