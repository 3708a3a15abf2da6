package messages

// ClientReady is sent once the client has loaded its assets and can render
// entities. The server may hold back the first snapshot until it arrives.
type ClientReady struct {
	PlayerID int
}
