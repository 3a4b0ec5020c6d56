package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Login    string `json:"login" example:"user1"`
	Password string `json:"password" example:"P@ssw0rd123"`

	// DeviceID позволяет серверу связать доверие к устройству с конкретным входом
	DeviceID    string `json:"device_id,omitempty"`
	TrustDevice bool   `json:"trust_device,omitempty"`
}

// SignupRequest : тело запроса на регистрацию
type SignupRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	DeviceID string `json:"device_id,omitempty"`
}

// RefreshRequest : запрос на обновление пары токенов.
// Токен передается и в теле, и в заголовке Authorization —
// соглашения серверов на этот счет различаются.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
}
