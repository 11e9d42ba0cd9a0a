package dto

type LearningPathOutput struct {
	Topic   string   `json:"topic"`
	Level   string   `json:"level"`
	Summary string   `json:"summary"`
	Links   []string `json:"links"`
}

type SummaryOutput struct {
	Topic   string `json:"topic"`
	Level   string `json:"level"`
	Summary string `json:"summary"`
	Missing bool   `json:"missing"`
}

type NoteOutput struct {
	Topic string `json:"topic"`
	Path  string `json:"path"`
	Links int    `json:"links"`
}
