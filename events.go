package pointers

type MessageType uint8

const (
	ConnectMessage MessageType = iota
	DisconnectMessage
	PointerMessage
)

func (t MessageType) String() string {
	switch t {
	case ConnectMessage:
		return "connect"
	case DisconnectMessage:
		return "disconnect"
	case PointerMessage:
		return "pointer"
	default:
		return "unknown"
	}
}

// Message is what the bus delivers. Data is a Device for ConnectMessage, nil
// for DisconnectMessage and an Event for PointerMessage.
type Message struct {
	Type MessageType
	ID   string
	Data any
}
