package dto

import "time"

type Entry struct {
	Topic    string    `json:"topic"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}
