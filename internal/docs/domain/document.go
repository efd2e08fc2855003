package domain

import "time"

type Document struct {
	ID        int64
	Title     string
	DocType   string
	Version   *string
	SourceKey string
	CreatedAt time.Time
}

// Section is one heading-delimited slice of a document's extracted text.
type Section struct {
	ID          int64
	DocumentID  int64
	SectionPath string
	Heading     string
	Content     string
	OrderIndex  int
	PageNo      *int
}

type SearchHit struct {
	DocumentID int64  `json:"document_id"`
	SectionID  int64  `json:"section_id"`
	Title      string `json:"title"`
	Heading    string `json:"heading"`
	PageNo     *int   `json:"page_no"`
}
