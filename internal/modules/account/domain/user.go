package domain

import (
	"fmt"
	"strings"
)

type User struct {
	ID       int
	Username string
	Email    string
	IsAdmin  bool
}

type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}

type Registration struct {
	Username string
	Email    string
	Password string
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("username, email and password are required")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("invalid email %q", r.Email)
	}
	return nil
}
