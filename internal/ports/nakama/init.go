package nakama

import (
	"context"
	"database/sql"

	"catan/internal/app"
	"catan/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires configuration, RPCs, hooks and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if err := config.LoadGameConfig(GameConfigPath, env); err != nil {
		logger.Error("InitModule: Invalid game config: %v", err)
		return err
	}
	cfg := *config.GetGameConfig()
	registry := app.NewRegistry(cfg.KeyLength)

	if err := RegisterRPCs(initializer, registry, cfg.MaxPlayers); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameCatan, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(registry, cfg), nil
	}); err != nil {
		return err
	}

	logger.Info("Catan Go module loaded (players %d-%d, %d points to win).", cfg.MinPlayers, cfg.MaxPlayers, cfg.VictoryPointsToWin)
	return nil
}
