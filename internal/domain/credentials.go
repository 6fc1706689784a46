package domain

import (
	"errors"
	"strings"
)

// Credentials is the content of the per-user GitHub auth file.
type Credentials struct {
	User  string `json:"user,omitempty" mapstructure:"user"`
	Token string `json:"token" mapstructure:"token"`
}

// Validate reports whether the credentials can authenticate API calls.
func (c *Credentials) Validate() error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return errors.New("token cannot contain whitespace")
	}
	return nil
}
