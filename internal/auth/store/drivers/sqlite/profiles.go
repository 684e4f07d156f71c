package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) EnsureDriverProfile(ctx context.Context, p domain.DriverProfile) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO driver_profiles (user_id, current_status, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		p.UserID,
		string(p.CurrentStatus),
		now,
		now,
	)
	return err
}

func (r *profilesRepo) EnsureMerchantProfile(ctx context.Context, p domain.MerchantProfile) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO merchant_profiles (user_id, company_name, primary_phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		p.UserID,
		p.CompanyName,
		p.PrimaryPhone,
		now,
		now,
	)
	return err
}

func (r *profilesRepo) EnsureLogisticProfile(ctx context.Context, p domain.LogisticProfile) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO logistic_profiles (user_id, company_name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		p.UserID,
		p.CompanyName,
		now,
		now,
	)
	return err
}

func (r *profilesRepo) EnsureAdminProfile(ctx context.Context, p domain.AdminProfile) error {
	now := time.Now().UTC()

	// Permissions are stored space separated, like OAuth scopes.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_profiles (user_id, permissions, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		p.UserID,
		strings.Join(p.Permissions, " "),
		now,
		now,
	)
	return err
}
