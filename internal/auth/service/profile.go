package service

import (
	"context"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/store"
)

// ensureRoleProfile bootstraps the minimal per-role profile row. The Ensure*
// calls are idempotent, so this is safe to run again for an existing user.
func ensureRoleProfile(ctx context.Context, st store.Store, u domain.User, companyName string) error {
	// Company-backed roles fall back to the user's own name.
	if companyName == "" {
		companyName = u.Name
	}

	switch u.Role {
	case domain.RoleDriver:
		return st.Profiles().EnsureDriverProfile(ctx, domain.DriverProfile{
			UserID:        u.ID,
			CurrentStatus: domain.DriverOffline,
		})
	case domain.RoleMerchant:
		return st.Profiles().EnsureMerchantProfile(ctx, domain.MerchantProfile{
			UserID:       u.ID,
			CompanyName:  companyName,
			PrimaryPhone: u.Phone,
		})
	case domain.RoleLogistic:
		return st.Profiles().EnsureLogisticProfile(ctx, domain.LogisticProfile{
			UserID:      u.ID,
			CompanyName: companyName,
		})
	case domain.RoleAdmin:
		return st.Profiles().EnsureAdminProfile(ctx, domain.AdminProfile{
			UserID:      u.ID,
			Permissions: []string{"*"},
		})
	}
	return ErrRoleUnknown
}
