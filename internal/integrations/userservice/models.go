package userservice

// Contact контактные данные пользователя из UserService
type Contact struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name"`
	FCMTokens []string `json:"fcm_tokens"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
