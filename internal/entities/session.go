package entities

// GameSession is the combat engine's view of a campaign session: who runs
// it. Scheduling, invites, and the rest of session management live in the
// campaign manager's CRUD layer.
type GameSession struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GMUserID string `json:"gm_user_id"`
}
