package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tansudb/tansu/internal/engine"
)

func (s *Server) putRow(c *gin.Context) {
	start := time.Now()
	row := c.Param("row")

	var req PutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if row == "" {
		s.errorResponse(c, http.StatusBadRequest, "INVALID_ROW", "Row cannot be empty")
		return
	}

	if err := s.engine.Put([]byte(row), req.Timestamp, []byte(req.Value)); err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}

	s.successResponse(c, http.StatusOK, KVEntry{
		Row:       row,
		Value:     req.Value,
		Timestamp: req.Timestamp,
	}, time.Since(start))
}

func (s *Server) getRow(c *gin.Context) {
	start := time.Now()
	row := c.Param("row")

	if row == "" {
		s.errorResponse(c, http.StatusBadRequest, "INVALID_ROW", "Row cannot be empty")
		return
	}

	timestamp, value, err := s.engine.Get([]byte(row))
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			s.errorResponse(c, http.StatusNotFound, "ROW_NOT_FOUND", err.Error())
		} else {
			s.errorResponse(c, http.StatusInternalServerError, "INTERNAL", err.Error())
		}
		return
	}

	s.successResponse(c, http.StatusOK, KVEntry{
		Row:       row,
		Value:     string(value),
		Timestamp: timestamp,
	}, time.Since(start))
}

func (s *Server) deleteRow(c *gin.Context) {
	start := time.Now()
	row := c.Param("row")

	if row == "" {
		s.errorResponse(c, http.StatusBadRequest, "INVALID_ROW", "Row cannot be empty")
		return
	}

	var timestamp uint64
	if raw := c.Query("timestamp"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.errorResponse(c, http.StatusBadRequest, "INVALID_TIMESTAMP", err.Error())
			return
		}
		timestamp = parsed
	}

	if err := s.engine.Delete([]byte(row), timestamp); err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}

	s.successResponse(c, http.StatusOK, gin.H{
		"row":     row,
		"deleted": true,
	}, time.Since(start))
}

func (s *Server) flushTables(c *gin.Context) {
	start := time.Now()

	// An empty body means a cached flush.
	var req FlushRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}
	cache := true
	if req.Cache != nil {
		cache = *req.Cache
	}

	s.engine.Flush(cache)

	s.successResponse(c, http.StatusOK, FlushResponse{
		Flushed: true,
		Cache:   cache,
	}, time.Since(start))
}

func (s *Server) successResponse(c *gin.Context, status int, data interface{}, duration time.Duration) {
	c.JSON(status, APIResponse{
		Status: "success",
		Data:   data,
		Metadata: &Metadata{
			Version:         "1.0",
			ExecutionTimeMs: float64(duration.Nanoseconds()) / 1e6,
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, APIResponse{
		Status: "error",
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Metadata: &Metadata{
			Version:   "1.0",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}
