package domain

// User is the authenticated caller resolved from a Supabase access token.
type User struct {
	ID     string
	Claims map[string]any
}
