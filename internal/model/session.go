package model

// Session is the per-client state carried between requests. It is loaded
// before a handler runs and saved after it returns.
type Session struct {
	SignedIn bool
	Username string
	// Message is a one-shot flash shown on the next rendered page.
	Message string
}

// Flash replaces the pending message.
func (s *Session) Flash(msg string) {
	s.Message = msg
}

// TakeMessage returns the pending message and clears it.
func (s *Session) TakeMessage() string {
	msg := s.Message
	s.Message = ""
	return msg
}
