package model

// Channel is one promoted channel whose membership is mandatory.
type Channel struct {
	ID         int64
	Title      string
	InviteLink string
	ButtonText string
}

// AdministeredChat is a chat where the bot currently holds administrator
// rights. The admin picks promoted channels from this registry.
type AdministeredChat struct {
	ID         int64
	Title      string
	Type       string
	InviteLink string
}
