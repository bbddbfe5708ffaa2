package connection

// Session is what the registry knows about one live connection. Room and
// username are bound once, at join time.
type Session struct {
	Id       string
	RoomId   string
	Username string
}
