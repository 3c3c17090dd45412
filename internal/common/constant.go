package common

// AuthHeaderName is the HTTP header carrying the bearer token on
// outbound API requests.
const AuthHeaderName = "Authorization"

// BearerPrefix prefixes the token value in AuthHeaderName.
const BearerPrefix = "Bearer "

// TokenQueryParam is the query parameter used to carry the bearer token on
// download links opened outside of an API call (a plain GET cannot attach
// the Authorization header on behalf of the user).
const TokenQueryParam = "token"
