package dto

type Preferences struct {
	DarkMode bool   `json:"dark_mode"`
	Level    string `json:"level"`
}
