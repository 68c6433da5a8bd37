package notify

// TextNotifier is a minimal text notification interface. It is
// intentionally small so the service layer can depend on it without
// importing a concrete transport.
type TextNotifier interface {
	SendText(text string) error
}

// Nop discards every message; the default when no notifier is configured.
type Nop struct{}

func (Nop) SendText(string) error { return nil }
