package notion

import "time"

// raw* types mirror the JSON of the Notion API (version 2022-06-28).

type rawText struct {
	Content string `json:"content"`
}

type rawRichText struct {
	Type      string   `json:"type,omitempty"`
	Text      *rawText `json:"text,omitempty"`
	PlainText string   `json:"plain_text,omitempty"`
}

type rawDate struct {
	Start string `json:"start"`
}

// rawProperty is a page property value. Outgoing values leave Type empty;
// the API infers it from the populated key.
type rawProperty struct {
	Type     string        `json:"type,omitempty"`
	Title    []rawRichText `json:"title,omitempty"`
	RichText []rawRichText `json:"rich_text,omitempty"`
	Date     *rawDate      `json:"date,omitempty"`
	Number   *float64      `json:"number,omitempty"`
}

type rawPropertySchema struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type rawDatabase struct {
	ID         string                       `json:"id"`
	Title      []rawRichText                `json:"title"`
	Properties map[string]rawPropertySchema `json:"properties"`
}

type rawParent struct {
	DatabaseID string `json:"database_id"`
}

type rawCreatePage struct {
	Parent     rawParent              `json:"parent"`
	Properties map[string]rawProperty `json:"properties"`
}

type rawPage struct {
	ID          string                 `json:"id"`
	CreatedTime time.Time              `json:"created_time"`
	Properties  map[string]rawProperty `json:"properties"`
}

type rawSort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type rawQuery struct {
	Sorts    []rawSort `json:"sorts,omitempty"`
	PageSize int       `json:"page_size,omitempty"`
}

type rawQueryResponse struct {
	Results    []rawPage `json:"results"`
	HasMore    bool      `json:"has_more"`
	NextCursor *string   `json:"next_cursor"`
}

type rawError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
