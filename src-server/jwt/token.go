package jwt

type Payload struct {
	ActorID string `json:"id"`
	Role    string `json:"role"`
	// session row secret, so the store can revoke the token server-side
	Secret   string `json:"secret"`
	IssuedAt int64  `json:"iat"`
}
