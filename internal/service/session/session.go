package session

import (
	"slices"

	"github.com/w-h-a/assistant/generator"
)

// Session owns the transcript of one conversation. The transcript only grows;
// earlier turns are never rewritten.
type Session struct {
	id         string
	transcript []generator.Message
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Messages() []generator.Message {
	return slices.Clone(s.transcript)
}

func (s *Session) Append(msgs ...generator.Message) {
	s.transcript = append(s.transcript, msgs...)
}

func (s *Session) Len() int {
	return len(s.transcript)
}
