package document

// Document is one raw text blob owned by a session. Documents are
// immutable inputs to ingestion; they are read, never written.
type Document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}
