package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CustomIDSeparator is the character used to separate parts
	CustomIDSeparator = ":"

	// MaxCustomIDLength is Discord's limit for custom IDs
	MaxCustomIDLength = 100
)

var (
	ErrEmptyCustomID   = errors.New("empty custom ID")
	ErrInvalidCustomID = errors.New("invalid custom ID format: expected at least domain:action")
)

// CustomID is a parsed component identifier of the form domain:action[:target[:args...]]
type CustomID struct {
	// Domain routes the interaction to a router (e.g. "pretty_help")
	Domain string

	// Action selects the handler within the router (e.g. "next")
	Action string

	// Target identifies the object acted on (e.g. a menu ID)
	Target string

	Args []string
}

// NewCustomID creates a new CustomID
func NewCustomID(domain, action string) *CustomID {
	return &CustomID{
		Domain: domain,
		Action: action,
		Args:   make([]string, 0),
	}
}

// WithTarget sets the target
func (c *CustomID) WithTarget(target string) *CustomID {
	c.Target = target
	return c
}

// WithArgs appends arguments, skipping empty ones so the encoded form stays parseable
func (c *CustomID) WithArgs(args ...string) *CustomID {
	for _, a := range args {
		if a != "" {
			c.Args = append(c.Args, a)
		}
	}
	return c
}

// Arg returns the nth argument or empty string
func (c *CustomID) Arg(n int) string {
	if n < 0 || n >= len(c.Args) {
		return ""
	}
	return c.Args[n]
}

// Encode converts the CustomID to a string
func (c *CustomID) Encode() (string, error) {
	if c.Domain == "" || c.Action == "" {
		return "", ErrInvalidCustomID
	}

	parts := []string{c.Domain, c.Action}
	if c.Target != "" {
		parts = append(parts, c.Target)
		parts = append(parts, c.Args...)
	}

	for _, p := range parts {
		if strings.Contains(p, CustomIDSeparator) {
			return "", fmt.Errorf("custom ID part %q contains separator %q", p, CustomIDSeparator)
		}
	}

	result := strings.Join(parts, CustomIDSeparator)
	if len(result) > MaxCustomIDLength {
		return "", fmt.Errorf("custom ID exceeds maximum length of %d characters", MaxCustomIDLength)
	}

	return result, nil
}

// MustEncode is like Encode but panics on error
func (c *CustomID) MustEncode() string {
	result, err := c.Encode()
	if err != nil {
		panic(err)
	}
	return result
}

// ParseCustomID parses a custom ID string
func ParseCustomID(customID string) (*CustomID, error) {
	if customID == "" {
		return nil, ErrEmptyCustomID
	}

	parts := strings.Split(customID, CustomIDSeparator)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, ErrInvalidCustomID
	}

	result := NewCustomID(parts[0], parts[1])
	if len(parts) > 2 {
		result.Target = parts[2]
		result.Args = append(result.Args, parts[3:]...)
	}

	return result, nil
}

// CustomIDBuilder builds custom IDs scoped to one domain
type CustomIDBuilder struct {
	domain string
}

// NewCustomIDBuilder creates a new builder for a domain
func NewCustomIDBuilder(domain string) *CustomIDBuilder {
	return &CustomIDBuilder{domain: domain}
}

// Domain returns the domain this builder encodes
func (b *CustomIDBuilder) Domain() string {
	return b.domain
}

// Build creates a CustomID for an action
func (b *CustomIDBuilder) Build(action string) *CustomID {
	return NewCustomID(b.domain, action)
}

// Button creates a button custom ID
func (b *CustomIDBuilder) Button(action, target string, args ...string) string {
	return b.Build(action).
		WithTarget(target).
		WithArgs(args...).
		MustEncode()
}

// Select creates a select menu custom ID
func (b *CustomIDBuilder) Select(action, target string) string {
	return b.Build(action).
		WithTarget(target).
		MustEncode()
}

// Owns reports whether customID belongs to this builder's domain
func (b *CustomIDBuilder) Owns(customID string) bool {
	parsed, err := ParseCustomID(customID)
	return err == nil && parsed.Domain == b.domain
}
