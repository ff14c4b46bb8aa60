// Command seed provisions the initial superadmin account. It is a no-op
// when a superadmin already exists, so it is safe to run on every deploy.
package main

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	mongodb "github.com/leadflow/lead-distribution/internal/infrastructure/db/mongo"
	"github.com/leadflow/lead-distribution/internal/pkg/config"
	"github.com/leadflow/lead-distribution/pkg/logger"
)

type seedConfig struct {
	Name     string `env:"SUPERADMIN_NAME,     default=Super Admin"`
	Email    string `env:"SUPERADMIN_EMAIL,    default=superadmin@example.com"`
	Mobile   string `env:"SUPERADMIN_MOBILE,   default=9999999999"`
	Password string `env:"SUPERADMIN_PASSWORD, default=SuperAdmin@123"`
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var seed seedConfig
	if err := envconfig.Process(context.Background(), &seed); err != nil {
		log.Fatal().Err(err).Msg("seed config failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	count, err := users.CountByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("superadmin lookup failed")
	}
	if count > 0 {
		log.Info().Msg("superadmin already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hash failed")
	}

	now := time.Now().UTC()
	super, err := users.Create(ctx, &domain.User{
		Name:         seed.Name,
		Email:        seed.Email,
		Mobile:       seed.Mobile,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("superadmin creation failed")
	}

	log.Info().Str("email", super.Email).Msg("superadmin created")
}
