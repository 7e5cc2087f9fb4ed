/*
Package server implements msgpack IPC for filename search services.

The server package provides a minimal interface for path lookup using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports search requests, index management ops, and config reloads.
Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured messages via stdin and receive responses through stdout.
Each message contains an ID field and other fields based on the operation type.

Search requests use mainly this structure:

	{"id": "req_001", "q": "report", "l": 20}

The server responds with entries ranked by relevance:

	{"id": "req_001", "s": [{"p": "/home/u/docs/report.pdf", "n": "report.pdf", "r": 1}], "c": 1, "t": 85}

Index management enables runtime inspection and rebuilds:

	{"id": "idx_001", "action": "get_stats"}
	{"id": "idx_002", "action": "rebuild"}

Response structures include status information and error details when an op fail.

The server maintains request counts for periodic cleanup and config reloading. -> (BETA ONLY)

# Message Types

SearchRequest and SearchResponse handle the main path lookup.
Request includes a query string and optional limit for result count.
Responses contain result arrays with path, display name and rank information, plus timing data in microseconds.

IndexRequest and IndexResponse manage runtime index operations.
Supported actions include: getting current totals and structure sizes, forcing a full rebuild, reloading the TOML config, and health checks.

config reloads allow adjustment of server parameters without restart.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing latency by ~40 to 70% in most cases.
*/
package server

// SearchRequest - minimal search request
type SearchRequest struct {
	ID    string `msgpack:"id"`
	Query string `msgpack:"q"`
	Limit int    `msgpack:"l,omitempty"`
}

// SearchResult - minimal result entry
type SearchResult struct {
	Path  string `msgpack:"p"`
	Name  string `msgpack:"n"`
	IsDir bool   `msgpack:"d,omitempty"`
	Rank  uint16 `msgpack:"r"`
}

// SearchResponse - search response
type SearchResponse struct {
	ID        string         `msgpack:"id"`
	Results   []SearchResult `msgpack:"s"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
}

// INDEX MESSAGES - runtime management (other configs via TOML)

// IndexRequest - index management request
type IndexRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"` // "get_stats", "rebuild", "reload_config", "health"
}

// IndexResponse - index operation response
type IndexResponse struct {
	ID           string         `msgpack:"id"`
	Status       string         `msgpack:"status"`
	Error        string         `msgpack:"error,omitempty"`
	TotalIndexed int            `msgpack:"total_indexed,omitempty"`
	BuildMs      int64          `msgpack:"build_ms,omitempty"`
	Stats        map[string]int `msgpack:"stats,omitempty"`
}

// SearchError holds basic error information for search requests
type SearchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
