package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-boostpro/backend/analyzer"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://api.openai.com/v1/", "key", "gpt-4o-mini", 30*time.Second)

	assert.Equal(t, "https://api.openai.com/v1", client.baseURL)
	assert.Equal(t, "gpt-4o-mini", client.model)
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "hello", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "test-model", 5*time.Second)
	out, err := client.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`},
		{"api error", http.StatusOK, `{"error":{"message":"bad model"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`},
		{"invalid json", http.StatusOK, `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "", "m", 5*time.Second)
			_, err := client.Generate(context.Background(), "prompt")
			assert.Error(t, err)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"```":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripCodeFence(in), "input %q", in)
	}
}

func TestDecodeJSON(t *testing.T) {
	var swot analyzer.SwotAnalysis

	require.NoError(t, DecodeJSON("```json\n{\"strengths\":[\"fast\"]}\n```", &swot))
	assert.Equal(t, []string{"fast"}, swot.Strengths)

	swot = analyzer.SwotAnalysis{}
	require.NoError(t, DecodeJSON(`Here you go: {"threats":["slow mobile"]} Hope it helps`, &swot))
	assert.Equal(t, []string{"slow mobile"}, swot.Threats)

	assert.ErrorIs(t, DecodeJSON("no json here", &swot), ErrNoJSON)
	assert.Error(t, DecodeJSON("{broken", &swot))
}

func TestBuildPrompts(t *testing.T) {
	audit := analyzer.Audit{URL: "https://example.com", OverallScore: 72}
	prompt := BuildSwotPrompt(audit)
	assert.Contains(t, prompt, "https://example.com")
	assert.Contains(t, prompt, "Overall score: 72/100")

	regen := BuildRegenerationPrompt("Some content", []string{"shoes", "trail", "fit"}, "")
	assert.Contains(t, regen, "Primary keyword: shoes")
	assert.Contains(t, regen, "Secondary keywords: trail, fit")
	assert.Contains(t, regen, "Tone: professional")
	assert.Contains(t, regen, "0.5% and 2.5%")
}
