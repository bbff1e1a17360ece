package common

const (
	// AccessTokenHeaderName is the request header carrying the bearer token.
	AccessTokenHeaderName = "Authorization"

	// BearerScheme is the optional scheme prefix in front of the token.
	BearerScheme = "Bearer "
)
