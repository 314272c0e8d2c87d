package domain

// HistoryEntry is one line of scan history.
type HistoryEntry struct {
	Timestamp    string `json:"timestamp"`
	CommitHash   string `json:"commit_hash,omitempty"`
	Score        int    `json:"score"`
	Rating       Rating `json:"rating"`
	TotalSignals int    `json:"total_signals"`
}

// NewHistoryEntry summarizes a report for the history log.
func NewHistoryEntry(r *Report, timestamp string) HistoryEntry {
	return HistoryEntry{
		Timestamp:    timestamp,
		CommitHash:   r.CommitHash,
		Score:        r.Summary.Score,
		Rating:       r.Summary.Rating,
		TotalSignals: r.Summary.TotalSignals,
	}
}
