package tui

// Mode is what the panel is currently doing.
type Mode int

const (
	ModeNormal Mode = iota
	ModeConfirmPurge
	ModeConfirmClear
)

// MessageType sets how the status line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)
