package api

const pkg = "apiClient/"

// TokenSource yields the current session token. The second return reports
// whether a session is present at all.
type TokenSource interface {
	Token() (string, bool)
}
