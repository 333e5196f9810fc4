package entity

import "time"

// Claves de configuración de políticas.
const (
	SettingMaxDiscount       = "max_discount"
	SettingMaxLosses         = "max_losses"
	SettingMaxStockAdjust    = "max_stock_adjust"
	SettingApprovalThreshold = "approval_threshold"
	SettingLoginAttempts     = "login_attempts"
	SettingLockMinutes       = "lock_minutes"
)

// PolicyKeys lista todas las claves que alimentan la política de una petición.
var PolicyKeys = []string{
	SettingMaxDiscount,
	SettingMaxLosses,
	SettingMaxStockAdjust,
	SettingApprovalThreshold,
	SettingLoginAttempts,
	SettingLockMinutes,
}

// Setting par clave/valor (texto) de configuración.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
