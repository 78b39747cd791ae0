package model

import (
	"crypto/sha256"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Email represents a single archived email record from any source.
// The classification engine treats it as read-only.
type Email struct {
	Date    time.Time
	ID      string
	Subject string
	Body    string
	Sender  Sender
	RawDate string // Original Date header, kept for diagnostics
}

// Sender is the parsed From header of an email.
type Sender struct {
	Name    string // Display name, may be empty
	Address string // addr-spec, e.g. hr@acmecorp.com
}

// ParseSender parses a raw From header into a Sender. A header that
// cannot be parsed yields a Sender with the raw value as Address and
// no display name; classification degrades gracefully from there.
func ParseSender(raw string) Sender {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return Sender{Address: strings.TrimSpace(raw)}
	}
	return Sender{Name: addr.Name, Address: addr.Address}
}

// Domain returns the lowercased domain component of the sender
// address, or "" if the address has none.
func (s Sender) Domain() string {
	at := strings.LastIndex(s.Address, "@")
	if at < 0 || at == len(s.Address)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimRight(s.Address[at+1:], ">. "))
}

// String renders the sender the way it appeared in the From header.
func (s Sender) String() string {
	if s.Name == "" {
		return s.Address
	}
	return fmt.Sprintf("%s <%s>", s.Name, s.Address)
}

// GenerateHash creates a stable hash for duplicate detection when an
// email has no usable Message-ID.
func (e *Email) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s",
		e.Date.Format("2006-01-02T15:04:05"),
		e.Subject,
		e.Sender.Address)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
