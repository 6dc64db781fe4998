package security

const (
	oauthStateAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"
	oauthStateLength   = 32
)

// OAuthState returns an opaque token binding an OAuth round trip to the
// browser that started it.
func OAuthState() (string, error) {
	return RandomString(oauthStateLength, oauthStateAlphabet)
}
