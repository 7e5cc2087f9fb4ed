package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pathserve/pathserve/internal/logger"
	"github.com/pathserve/pathserve/internal/utils"
	"github.com/pathserve/pathserve/pkg/catalog"
	"github.com/pathserve/pathserve/pkg/config"
)

// request is the decode envelope for both message types. Dispatch keys
// off Action: present means an index op, absent means a search.
type request struct {
	ID     string `msgpack:"id"`
	Query  string `msgpack:"q"`
	Limit  int    `msgpack:"l"`
	Action string `msgpack:"action"`
}

// Server handles the IPC for path searches
type Server struct {
	catalog    *catalog.Catalog
	cfg        *config.Config
	configPath string

	decoder *msgpack.Decoder
	encoder *msgpack.Encoder

	requestCount int
	log          *log.Logger
}

// NewServer creates a search server using stdin/stdout for IPC
func NewServer(cat *catalog.Catalog, cfg *config.Config, configPath string) *Server {
	return newServerWithIO(cat, cfg, configPath, os.Stdin, os.Stdout)
}

func newServerWithIO(cat *catalog.Catalog, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		catalog:    cat,
		cfg:        cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(r),
		encoder:    msgpack.NewEncoder(w),
		log:        logger.Default("ipc"),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(map[string]string{"status": "ready"})

	// incoming requests stdin
	for {
		var req request
		if err := s.decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("Decoding from stdin: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(req request) {
	s.requestCount++
	if s.requestCount%1000 == 0 {
		s.log.Debugf("served %d requests", s.requestCount)
	}

	if req.Action != "" {
		s.handleIndexOp(req)
		return
	}
	s.handleSearch(req)
}

// handleSearch processes a search request. It validates the query
// against the configured bounds, clamps the limit, runs the catalog
// search and answers with ranked results and the elapsed microseconds.
func (s *Server) handleSearch(req request) {
	query := req.Query

	if query == "" {
		s.sendError(req.ID, "Missing 'q' parameter", 400)
		s.log.Debug("Query is empty in request")
		return
	}
	if len(query) < s.cfg.Server.MinQuery {
		s.sendError(req.ID, fmt.Sprintf("Query must be at least %d characters", s.cfg.Server.MinQuery), 400)
		return
	}
	if len(query) > s.cfg.Server.MaxQuery {
		s.sendError(req.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", s.cfg.Server.MaxQuery), 400)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.cfg.Search.MaxResults
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	entries := s.catalog.Search(query, limit)
	elapsed := time.Since(start)

	ranks := utils.PositionRanks(len(entries))
	results := make([]SearchResult, len(entries))
	for i, e := range entries {
		results[i] = SearchResult{
			Path:  e.Path,
			Name:  e.Name,
			IsDir: e.IsDir,
			Rank:  ranks[i],
		}
	}

	s.sendResponse(SearchResponse{
		ID:        req.ID,
		Results:   results,
		Count:     len(results),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleIndexOp processes index management actions
func (s *Server) handleIndexOp(req request) {
	switch req.Action {
	case "health":
		s.sendResponse(IndexResponse{ID: req.ID, Status: "ok"})
	case "get_stats":
		s.sendResponse(IndexResponse{
			ID:           req.ID,
			Status:       "ok",
			TotalIndexed: s.catalog.TotalIndexed(),
			BuildMs:      s.catalog.BuildTime().Milliseconds(),
			Stats:        s.catalog.Stats(),
		})
	case "rebuild":
		if err := s.catalog.Build(nil); err != nil {
			s.log.Errorf("Rebuild failed: %v", err)
			s.sendResponse(IndexResponse{ID: req.ID, Status: "error", Error: err.Error()})
			return
		}
		s.sendResponse(IndexResponse{
			ID:           req.ID,
			Status:       "ok",
			TotalIndexed: s.catalog.TotalIndexed(),
			BuildMs:      s.catalog.BuildTime().Milliseconds(),
		})
	case "reload_config":
		cfg, path, err := config.LoadConfigWithPriority(s.configPath)
		if err != nil {
			s.sendResponse(IndexResponse{ID: req.ID, Status: "error", Error: err.Error()})
			return
		}
		s.cfg = cfg
		s.configPath = path
		s.log.Debugf("Config reloaded from %s", config.GetActiveConfigPath(path))
		s.sendResponse(IndexResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

// sendResponse encodes the given response to the client stream.
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(SearchError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
