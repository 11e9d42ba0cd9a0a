package domain

import (
	"fmt"
	"strings"
)

type Preferences struct {
	DarkMode bool
	Level    string
}

func Defaults() Preferences {
	return Preferences{DarkMode: true, Level: "basic"}
}

func NormalizeLevel(raw string) (string, error) {
	switch lvl := strings.ToLower(strings.TrimSpace(raw)); lvl {
	case "basic", "intermediate", "advanced":
		return lvl, nil
	}
	return "", fmt.Errorf("invalid level %q", raw)
}
