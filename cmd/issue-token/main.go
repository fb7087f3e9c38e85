// Command issue-token provisions a user on first use and prints a signed
// bearer token for it. Credentials are managed outside of habitflow.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/adapters/repository"
	"github.com/comitanigiacomo/habitflow/internal/config"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "issue-token:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.NewFlagSet("issue-token")
	username := fs.StringP("username", "u", "", "user to issue the token for (required)")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*username) == "" {
		return fmt.Errorf("--username is required")
	}
	if cfg.Storage.Driver == repository.DriverMemory {
		return fmt.Errorf("storage.driver memory cannot hold users across processes")
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File, JSON: cfg.Log.JSON}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn := cfg.DSN()
	if cfg.Storage.Driver == repository.DriverSQLite && cfg.Storage.DSN == "" {
		dsn = repository.SQLiteDSN(dsn)
	}

	store, db, err := repository.Open(ctx, cfg.Storage.Driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	users := services.NewUserService(store)
	user, created, err := users.GetOrProvision(ctx, *username)
	if err != nil {
		return err
	}
	if created {
		logger.Info("user provisioned", "user_id", user.ID, "username", user.Username)
	}

	tokens := services.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, store.Repos().Users)
	token, err := tokens.GenerateToken(user)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
