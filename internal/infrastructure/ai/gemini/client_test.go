package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylelens/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
		BaseURL: srv.URL,
	}, zap.NewNop())
}

func TestAnalyzeImageSendsPromptAndInlineData(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "models/gemini-1.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		assert.Equal(t, "describe this outfit", req.Contents[0].Parts[0].Text)

		inline := req.Contents[0].Parts[1].InlineData
		require.NotNil(t, inline)
		assert.Equal(t, "image/jpeg", inline.MIMEType)
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), inline.Data)

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"DESCRIPTION: a look"}]}}]}`))
	})

	reply, err := client.AnalyzeImage(context.Background(), "describe this outfit", outbound.ImagePayload{
		Data:     image,
		MIMEType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "DESCRIPTION: a look", reply)
}

func TestAnalyzeImageDefaultsMIMEType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "image/jpeg", req.Contents[0].Parts[1].InlineData.MIMEType)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	_, err := client.AnalyzeImage(context.Background(), "prompt", outbound.ImagePayload{Data: []byte("x")})
	require.NoError(t, err)
}

func TestExtractTextFlattensParts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"black jacket"},{"text":", white sneakers"}]}}]}`))
	})

	reply, err := client.ExtractText(context.Background(), "extract items")
	require.NoError(t, err)
	assert.Equal(t, "black jacket, white sneakers", reply)
}

func TestGenerateNon200Fails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.ExtractText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateNoCandidatesFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.ExtractText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response candidates")
}

func TestGenerateEmbeddedErrorFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"message":"invalid argument","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.ExtractText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}
