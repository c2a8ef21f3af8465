package domain

// AuthProvider identifies the identity provider that issued a token.
type AuthProvider string

const (
	AuthProviderGoogle    AuthProvider = "google"
	AuthProviderMicrosoft AuthProvider = "microsoft"
)

// TenantAliases are the Microsoft tenant-class aliases that accept tokens
// from any tenant of that class. The real per-user tenant only appears
// inside the token, so an exact match is impossible by design.
var TenantAliases = map[string]bool{
	"consumers":     true,
	"common":        true,
	"organizations": true,
}
