package handlers

import (
	"github.com/pocketbase/pocketbase/core"

	"github.com/syedfahad54/Eventify/internal/booking"
)

// authSession adapts the request's auth record to the flow's SessionProvider,
// so identity is passed explicitly instead of read from ambient state.
type authSession struct {
	record *core.Record
}

func newAuthSession(record *core.Record) *authSession {
	return &authSession{record: record}
}

func (s *authSession) CurrentUser() *booking.User {
	if s.record == nil {
		return nil
	}
	return &booking.User{
		ID:   s.record.Id,
		Role: s.record.GetString("role"),
	}
}

func (s *authSession) Role() string {
	if s.record == nil {
		return ""
	}
	return s.record.GetString("role")
}

func (s *authSession) SignOut() {
	s.record = nil
}
