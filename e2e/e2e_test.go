package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/showroom"
	"github.com/sagarc03/showroom/completion"
)

const testOrigin = "http://localhost:4173"

func defaultServerConfig(t *testing.T) ServerConfig {
	t.Helper()
	return ServerConfig{
		Port:   getOpenPort(t),
		Assets: "spa",
		AssetsDir: writeTree(t, map[string]string{
			"index.html":         "<html><body>SPA Root</body></html>",
			"assets/app.js":      "console.log('showroom')",
			"assets/favicon.ico": "ico",
		}),
		ImagesDir: writeTree(t, map[string]string{
			"cars/audi.jpg":      "audi",
			"cars/bmw.png":       "bmw",
			"motorcycles/r1.jpg": "r1",
		}),
		Origins: []string{testOrigin},
	}
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeImages(t *testing.T, resp *http.Response) []string {
	t.Helper()
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var body showroom.ImagesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Images
}

// TestE2E_Images covers the listing endpoints on the local image backend.
func TestE2E_Images(t *testing.T) {
	baseURL, cleanup := startServer(t, defaultServerConfig(t))
	defer cleanup()

	t.Run("GET /list-images returns cars then motorcycles", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/list-images")
		require.NoError(t, err)

		assert.Equal(t, []string{
			"/automobile/cars/audi.jpg",
			"/automobile/cars/bmw.png",
			"/automobile/motorcycles/r1.jpg",
		}, decodeImages(t, resp))
	})

	t.Run("GET /list-images-cars", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/list-images-cars")
		require.NoError(t, err)

		assert.Equal(t, []string{"/automobile/cars/audi.jpg", "/automobile/cars/bmw.png"}, decodeImages(t, resp))
	})

	t.Run("GET /list-images-motorcycles", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/list-images-motorcycles")
		require.NoError(t, err)

		assert.Equal(t, []string{"/automobile/motorcycles/r1.jpg"}, decodeImages(t, resp))
	})

	t.Run("GET /automobile serves the image", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/automobile/cars/bmw.png")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "bmw", string(body))
	})

	t.Run("GET /automobile missing image returns 404", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/automobile/cars/missing.jpg")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

// TestE2E_MockCompletion covers POST /gpt-search with mocked replies.
func TestE2E_MockCompletion(t *testing.T) {
	baseURL, cleanup := startServer(t, defaultServerConfig(t))
	defer cleanup()

	t.Run("input is echoed", func(t *testing.T) {
		resp := postJSON(t, baseURL+"/gpt-search", `{"input":"fast red cars"}`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body completion.ChatResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Choices, 1)
		assert.Equal(t, "assistant", body.Choices[0].Message.Role)
		assert.Equal(t, `You said: "fast red cars". This is a mocked response.`, body.Choices[0].Message.Content)
		assert.True(t, strings.HasPrefix(body.ID, "mock-"))
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		resp := postJSON(t, baseURL+"/gpt-search", `{"input":""}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Input is required", body["error"])
	})
}

// TestE2E_CompletionRelay covers relaying to an upstream completion API.
func TestE2E_CompletionRelay(t *testing.T) {
	var (
		mu         sync.Mutex
		gotAuth    string
		gotRequest completion.ChatRequest
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completion.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		mu.Lock()
		gotAuth = r.Header.Get("Authorization")
		gotRequest = req
		mu.Unlock()

		if len(req.Messages) > 0 && req.Messages[0].Content == "fail" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"Try a roadster."}}]}`))
	}))
	defer upstream.Close()

	cfg := defaultServerConfig(t)
	cfg.UpstreamURL = upstream.URL
	baseURL, cleanup := startServer(t, cfg)
	defer cleanup()

	t.Run("upstream body is relayed", func(t *testing.T) {
		resp := postJSON(t, baseURL+"/gpt-search", `{"input":"something sporty"}`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"Try a roadster."}}]}`, string(body))

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "Bearer sk-e2e", gotAuth)
		assert.Equal(t, completion.DefaultModel, gotRequest.Model)
		assert.Equal(t, completion.DefaultMaxTokens, gotRequest.MaxTokens)
	})

	t.Run("upstream error status is relayed", func(t *testing.T) {
		resp := postJSON(t, baseURL+"/gpt-search", `{"input":"fail"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Rate limit reached", body["error"])
	})
}

// TestE2E_SPAMode covers static asset serving with the index fallback.
func TestE2E_SPAMode(t *testing.T) {
	baseURL, cleanup := startServer(t, defaultServerConfig(t))
	defer cleanup()

	t.Run("GET / returns index.html content", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>SPA Root</body></html>", string(body))
	})

	t.Run("GET /nonexistent returns index.html content", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/garage/42")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>SPA Root</body></html>", string(body))
	})

	t.Run("GET /assets/app.js returns the file", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/assets/app.js")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/javascript", resp.Header.Get("Content-Type"))
	})

	t.Run("GET /assets/favicon.ico", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/assets/favicon.ico")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "image/x-icon", resp.Header.Get("Content-Type"))
	})
}

// TestE2E_InfoMode covers the fixed JSON document for unmatched paths.
func TestE2E_InfoMode(t *testing.T) {
	cfg := defaultServerConfig(t)
	cfg.Assets = "info"
	baseURL, cleanup := startServer(t, cfg)
	defer cleanup()

	resp, err := http.Get(baseURL + "/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "showroom API", body["message"])
}

// TestE2E_CORS covers the origin allow-list and preflight handling.
func TestE2E_CORS(t *testing.T) {
	baseURL, cleanup := startServer(t, defaultServerConfig(t))
	defer cleanup()

	client := &http.Client{}

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/list-images", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", testOrigin)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	})

	t.Run("other origin gets no CORS headers", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/list-images", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "https://evil.example")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("OPTIONS on any path returns 204", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, baseURL+"/gpt-search", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", testOrigin)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
