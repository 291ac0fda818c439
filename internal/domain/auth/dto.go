package auth

// SSETokenResponse carries the short-lived token for GET /api/v1/events.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
