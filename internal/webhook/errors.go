package webhook

// Error describes a webhook call that reached the remote endpoint but came
// back with a non-success status. Message is a short human-readable summary;
// Details carries the response body, pretty-printed when it was JSON.
type Error struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string { return e.Message }
