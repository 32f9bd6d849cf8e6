package types

// ExportRecord is one flagged comment in an export file. The author is only
// present as a salted hash.
type ExportRecord struct {
	AuthorHash string
	VideoID    string
	Category   string
	Reason     string
	Origin     string
	Confidence float64
}
