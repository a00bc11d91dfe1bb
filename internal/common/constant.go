// Package common contains shared constants and sentinel errors used across
// SiteCMS components.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer token on
	// outbound Gateway requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token value in the Authorization header.
	BearerScheme = "Bearer"

	// AccessTokenMetadataKey is the local metadata key the access token is
	// persisted under.
	AccessTokenMetadataKey = "access_token"

	// LastEntityMetadataKey remembers the entity the console edited last.
	LastEntityMetadataKey = "last_entity"
)
