package seed

import (
	"context"

	"github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/config"
	"github.com/rs/zerolog"
)

// CreateDefaultAdmin creates the configured admin account when the users
// table is empty. Without a configured password nothing is created.
func CreateDefaultAdmin(ctx context.Context, users services.UserService, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("No default admin password configured, skipping admin seeding")
		return nil
	}

	created, err := users.EnsureDefaultAdmin(ctx, services.UserInput{
		Name:     cfg.Admin.Name,
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Pincode:  cfg.Admin.Pincode,
	})
	if err != nil {
		return err
	}

	if created {
		lgr.Info().Str("username", cfg.Admin.Username).Msg("Default admin user created")
	} else {
		lgr.Debug().Msg("Admin users already exist, skipping seeding")
	}
	return nil
}
