package domain

import "time"

// Role profiles are the minimal per-role records bootstrapped at
// registration. The richer profile management flows live outside the auth
// service; it only guarantees the row exists.

// DriverStatus is the driver's availability state.
type DriverStatus string

const (
	DriverOffline    DriverStatus = "offline"
	DriverIdle       DriverStatus = "idle"
	DriverEnRoute    DriverStatus = "en_route"
	DriverDelivering DriverStatus = "delivering"
)

type DriverProfile struct {
	UserID        string
	CurrentStatus DriverStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type MerchantProfile struct {
	UserID       string
	CompanyName  string
	PrimaryPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type LogisticProfile struct {
	UserID      string
	CompanyName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AdminProfile struct {
	UserID      string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
