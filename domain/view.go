package domain

// ViewRow is one labelled line of the rendered results.
type ViewRow struct {
	Label string  `json:"label"`
	Value float64 `json:"-"`
	Text  string  `json:"text"`
}

// ResultView is the result region handed to an exporter.
type ResultView struct {
	Title string    `json:"title"`
	Rows  []ViewRow `json:"rows"`
}

// Document is an exported, downloadable snapshot of a ResultView.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}
