package dto

// IngestNoteMessage is the payload queued for the background ingest worker.
type IngestNoteMessage struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// ReindexResponse reports how many documents were queued for re-ingestion.
type ReindexResponse struct {
	Documents int `json:"documents"`
}
