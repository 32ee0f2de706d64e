package api

// APIResponse represents a standard API response
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata *Metadata   `json:"metadata,omitempty"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata
type Metadata struct {
	Version         string  `json:"version"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`
	Timestamp       string  `json:"timestamp"`
}

// APIError represents an API error
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// KVEntry represents one row version in API responses. Timestamp is the
// version's milliseconds since the Unix epoch.
type KVEntry struct {
	Row       string `json:"row"`
	Value     string `json:"value,omitempty"`
	Timestamp uint64 `json:"timestamp,omitempty"`
}

// PutRequest represents a PUT request body. A zero or omitted timestamp asks
// the server to assign the current time.
type PutRequest struct {
	Value     string `json:"value" binding:"required"`
	Timestamp uint64 `json:"timestamp"`
}

// FlushRequest represents a flush request body. Cache defaults to true when
// omitted; with cache false the flushed table is discarded instead of pooled.
type FlushRequest struct {
	Cache *bool `json:"cache"`
}

// FlushResponse reports the outcome of a flush.
type FlushResponse struct {
	Flushed bool `json:"flushed"`
	Cache   bool `json:"cache"`
}
