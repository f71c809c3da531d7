// Command seed prepares the database schema and bootstraps the first
// administrator account so the intranet can be logged into at all.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"intranet/config"
	"intranet/internal/domain/entity"
	"intranet/internal/domain/repository"
	"intranet/internal/infra/auth"
	logs "intranet/internal/infra/log"
	"intranet/internal/infra/persistence/model"
	"intranet/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	email := flag.String("email", "admin@municipio.cl", "administrator email")
	password := flag.String("password", "", "administrator password (required)")
	firstName := flag.String("first-name", "Admin", "administrator first name")
	lastName := flag.String("last-name", "Municipal", "administrator last name")
	department := flag.String("department", "informatica", "administrator department id")
	departmentName := flag.String("department-name", "Dirección de Informática", "administrator department name")
	flag.Parse()

	if *password == "" {
		slog.Error("A password is required, pass -password")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		slog.Error("Failed to build logger", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(cfg, logger, &entity.User{
		Email:          *email,
		FirstName:      *firstName,
		LastName:       *lastName,
		DepartmentID:   *department,
		DepartmentName: *departmentName,
		Role:           entity.RoleAdmin,
		IsActive:       true,
	}, *password); err != nil {
		logger.Error("Seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, admin *entity.User, password string) error {
	ctx := context.Background()

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to connect to PostgreSQL")
	}

	if err := db.WithContext(ctx).AutoMigrate(&model.UserModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}
	logger.Info("Schema migrated")

	userRepo := postgres.NewUserRepository(db)

	_, err = userRepo.FindByEmail(ctx, admin.Email)
	if err == nil {
		logger.Info("Administrator already exists, nothing to do", slog.String("email", admin.Email))

		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check for existing administrator")
	}

	hasher := auth.NewBcryptHasher(cfg)
	hash, err := hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash administrator password")
	}
	admin.PasswordHash = hash

	if err := userRepo.Create(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to create administrator")
	}

	logger.Info("Administrator created",
		slog.String("email", admin.Email),
		slog.Any("userID", admin.ID),
	)

	return nil
}
