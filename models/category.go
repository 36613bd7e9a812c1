package models

// CategoryDetail is the full record behind a leaf HS code: tariff, restriction
// and parameter data plus attached declaration documents.
type CategoryDetail struct {
	ID           int64         `json:"id"`
	Code         string        `json:"code"`
	Name         LocalizedText `json:"name"`
	Parameters   []Parameter   `json:"parameters"`
	Restrictions []Restriction `json:"restrictions"`
	Taxes        []Tax         `json:"taxes"`
	Declarations []Declaration `json:"declarations"`
	Documents    []Document    `json:"documents"`
}

type Parameter struct {
	ID    int64         `json:"id"`
	Name  LocalizedText `json:"name"`
	Value string        `json:"value"`
}

type Restriction struct {
	ID   int64         `json:"id"`
	Text LocalizedText `json:"text"`
}

type Tax struct {
	ID   int64         `json:"id"`
	Name LocalizedText `json:"name"`
	Rate string        `json:"rate"`
}

type Declaration struct {
	ID    int64         `json:"id"`
	Title LocalizedText `json:"title"`
}

type Document struct {
	ID    int64         `json:"id"`
	Title LocalizedText `json:"title"`
	URL   string        `json:"url"`
}
