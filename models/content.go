package models

type FAQ struct {
	ID       int64         `json:"id"`
	Question LocalizedText `json:"question"`
	Answer   LocalizedText `json:"answer"`
}

type Service struct {
	ID          int64         `json:"id"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Icon        string        `json:"icon"`
}

type HomeSection struct {
	ID      int64         `json:"id"`
	Section string        `json:"section"`
	Title   LocalizedText `json:"title"`
	Body    LocalizedText `json:"body"`
}
