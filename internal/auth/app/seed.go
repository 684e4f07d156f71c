package app

import (
	"context"
	"errors"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/internal/auth/store"
)

// defaultUsers are the platform accounts seeded in dev and demo
// environments, one per role.
var defaultUsers = []service.RegisterParams{
	{
		Name:     "Platform Admin",
		Email:    "admin@spazigo.com",
		Password: "ChangeMe!Admin1",
		Role:     domain.RoleAdmin,
	},
	{
		Name:     "Demo Driver",
		Email:    "driver@spazigo.com",
		Password: "ChangeMe!Driver1",
		Role:     domain.RoleDriver,
	},
	{
		Name:        "Demo Merchant",
		Email:       "merchant@spazigo.com",
		Password:    "ChangeMe!Merchant1",
		Role:        domain.RoleMerchant,
		CompanyName: "Spazigo Demo Goods",
	},
	{
		Name:        "Demo Logistics",
		Email:       "logistic@spazigo.com",
		Password:    "ChangeMe!Logistic1",
		Role:        domain.RoleLogistic,
		CompanyName: "Spazigo Demo Freight",
	},
}

// seedDefaultUsers creates the default accounts if they don't exist yet.
// Seeding is best-effort: an existing account is skipped, and a failure is
// logged but never stops startup.
func (app *Application) seedDefaultUsers(ctx context.Context) {
	svc := &service.UserService{Store: app.db}

	for _, p := range defaultUsers {
		u, err := svc.Register(ctx, p)
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				app.logger.Debug("seed user already exists", "email", p.Email)
				continue
			}
			app.logger.Error("failed to seed user", "email", p.Email, "error", err)
			continue
		}
		app.logger.Info("seeded default user", "user_id", u.ID, "email", u.Email, "role", string(u.Role))
	}
}
