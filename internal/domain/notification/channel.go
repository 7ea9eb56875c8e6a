// internal/domain/notification/channel.go
package notification

// Channel is one configured alert destination: a pusher (LINE, Telegram, ...)
// plus the destination identity it should deliver to and a human-readable
// label used in outcomes and logs.
type Channel struct {
	Label       string
	Destination string
	Pusher      Pusher
}

// Outcome is the per-channel result of a dispatch attempt.
type Outcome struct {
	Channel  string `json:"channel"`
	Success  bool   `json:"success"`
	Disabled bool   `json:"disabled,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Result aggregates the outcomes of one dispatch, in the same order the
// channels were given.
type Result struct {
	AllSucceeded bool      `json:"all_succeeded"`
	Outcomes     []Outcome `json:"outcomes"`
}
