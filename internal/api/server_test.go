package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tansudb/tansu/internal/config"
)

func newTestServer() *Server {
	return NewServer(config.Default())
}

func getAuthToken(t *testing.T, server *Server) string {
	t.Helper()
	loginReq := LoginRequest{
		Username: "admin",
		Password: "password",
	}
	body, _ := json.Marshal(loginReq)
	req, _ := http.NewRequest("POST", "/api/v1/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	server.router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Login failed: %d", resp.Code)
	}

	var response APIResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal login response: %v", err)
	}

	loginData, ok := response.Data.(map[string]interface{})
	if !ok {
		t.Fatal("Expected login data in response")
	}

	token, ok := loginData["token"].(string)
	if !ok || token == "" {
		t.Fatal("Expected token in login response")
	}

	return token
}

func doJSON(server *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	server.router.ServeHTTP(resp, req)
	return resp
}

func entryFromResponse(t *testing.T, resp *httptest.ResponseRecorder) KVEntry {
	t.Helper()
	var response APIResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	data, err := json.Marshal(response.Data)
	if err != nil {
		t.Fatalf("Failed to remarshal data: %v", err)
	}
	var entry KVEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("Failed to unmarshal entry: %v", err)
	}
	return entry
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer()

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	server.router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %v", response["status"])
	}
}

func TestAuthRequired(t *testing.T) {
	server := newTestServer()

	resp := doJSON(server, "GET", "/api/v1/kv/r1", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", resp.Code)
	}

	resp = doJSON(server, "GET", "/api/v1/kv/r1", "not-a-token", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with a bogus token, got %d", resp.Code)
	}
}

func TestPutAndGet(t *testing.T) {
	server := newTestServer()
	token := getAuthToken(t, server)

	resp := doJSON(server, "PUT", "/api/v1/kv/r1", token, PutRequest{Value: "v1", Timestamp: 7})
	if resp.Code != http.StatusOK {
		t.Fatalf("Put failed: %d %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(server, "GET", "/api/v1/kv/r1", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Get failed: %d", resp.Code)
	}
	entry := entryFromResponse(t, resp)
	if entry.Value != "v1" || entry.Timestamp != 7 {
		t.Errorf("Get = %+v, expected value v1 at timestamp 7", entry)
	}
}

func TestGetMissingRow(t *testing.T) {
	server := newTestServer()
	token := getAuthToken(t, server)

	resp := doJSON(server, "GET", "/api/v1/kv/missing", token, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.Code)
	}
}

func TestServerAssignsTimestamp(t *testing.T) {
	server := newTestServer()
	token := getAuthToken(t, server)

	resp := doJSON(server, "PUT", "/api/v1/kv/r1", token, PutRequest{Value: "v1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("Put failed: %d", resp.Code)
	}

	resp = doJSON(server, "GET", "/api/v1/kv/r1", token, nil)
	entry := entryFromResponse(t, resp)
	if entry.Timestamp == 0 {
		t.Error("Expected a server-assigned timestamp")
	}
}

func TestDeleteAndRevive(t *testing.T) {
	server := newTestServer()
	token := getAuthToken(t, server)

	doJSON(server, "PUT", "/api/v1/kv/r1", token, PutRequest{Value: "v1", Timestamp: 1})

	resp := doJSON(server, "DELETE", "/api/v1/kv/r1?timestamp=2", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Delete failed: %d", resp.Code)
	}

	resp = doJSON(server, "GET", "/api/v1/kv/r1", token, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a tombstoned row, got %d", resp.Code)
	}

	doJSON(server, "PUT", "/api/v1/kv/r1", token, PutRequest{Value: "v3", Timestamp: 3})
	resp = doJSON(server, "GET", "/api/v1/kv/r1", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Get after revive failed: %d", resp.Code)
	}
	if entry := entryFromResponse(t, resp); entry.Value != "v3" {
		t.Errorf("Revived value = %q, expected v3", entry.Value)
	}
}

func TestDeleteRejectsBadTimestamp(t *testing.T) {
	server := newTestServer()
	token := getAuthToken(t, server)

	resp := doJSON(server, "DELETE", "/api/v1/kv/r1?timestamp=abc", token, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad timestamp, got %d", resp.Code)
	}
}

func TestFlushEndpoint(t *testing.T) {
	server := newTestServer()
	token := getAuthToken(t, server)

	// The end-to-end scenario, over the wire.
	doJSON(server, "PUT", "/api/v1/kv/r1", token, PutRequest{Value: "v11", Timestamp: 1})
	doJSON(server, "PUT", "/api/v1/kv/r2", token, PutRequest{Value: "v22", Timestamp: 2})
	doJSON(server, "PUT", "/api/v1/kv/r1", token, PutRequest{Value: "v13", Timestamp: 3})

	resp := doJSON(server, "POST", "/api/v1/flush", token, FlushRequest{})
	if resp.Code != http.StatusOK {
		t.Fatalf("Flush failed: %d %s", resp.Code, resp.Body.String())
	}

	doJSON(server, "PUT", "/api/v1/kv/r2", token, PutRequest{Value: "v24", Timestamp: 4})
	doJSON(server, "PUT", "/api/v1/kv/r3", token, PutRequest{Value: "v35", Timestamp: 5})

	expected := []KVEntry{
		{Row: "r1", Value: "v13", Timestamp: 3},
		{Row: "r2", Value: "v24", Timestamp: 4},
		{Row: "r3", Value: "v35", Timestamp: 5},
	}
	for _, want := range expected {
		resp := doJSON(server, "GET", fmt.Sprintf("/api/v1/kv/%s", want.Row), token, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("Get(%s) failed: %d", want.Row, resp.Code)
		}
		entry := entryFromResponse(t, resp)
		if entry.Value != want.Value || entry.Timestamp != want.Timestamp {
			t.Errorf("Get(%s) = %+v, expected %+v", want.Row, entry, want)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	server := newTestServer()
	token := getAuthToken(t, server)

	doJSON(server, "PUT", "/api/v1/kv/r1", token, PutRequest{Value: "v1", Timestamp: 1})

	resp := doJSON(server, "GET", "/api/v1/stats", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Stats failed: %d", resp.Code)
	}

	var response APIResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	stats, ok := response.Data.(map[string]interface{})
	if !ok {
		t.Fatal("Expected stats data in response")
	}
	if stats["volatile_entries"] != float64(1) {
		t.Errorf("volatile_entries = %v, expected 1", stats["volatile_entries"])
	}
}
