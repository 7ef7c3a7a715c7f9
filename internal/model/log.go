package model

// DateDisplayLayout renders calendar dates the way the API has always
// shown them: "Mon Jan 02 2006" (the JavaScript Date.toDateString format).
const DateDisplayLayout = "Mon Jan 02 2006"

// LogEntry is one exercise projected for display inside a user's log.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"` // human-readable, DateDisplayLayout
}

// LogResult is the envelope returned by the logs endpoint.
//
// From and To are echoed back (human-readable) if and only if the caller
// supplied them — omitempty keeps the keys out of the JSON otherwise.
// Count is the number of matching exercises, capped by the caller's limit;
// Log holds at most that many entries in natural store order.
type LogResult struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}
