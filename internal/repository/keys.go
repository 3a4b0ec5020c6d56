package repository

// Ключи хранимого состояния клиента, общие для всех бэкендов
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyDeviceID     = "device_id"
	keyTrusted      = "trusted"
	keyProfile      = "profile"
)
