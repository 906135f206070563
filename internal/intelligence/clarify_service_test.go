package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLLMClient returns a fixed response for testing.
type mockLLMClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

var missingTimeAndPeriod = []domain.MissingField{domain.MissingTime, domain.MissingTimeOfDay}

func TestClarifyService_Generate_UsesLLMQuestion(t *testing.T) {
	client := &mockLLMClient{response: `{"question": "Bạn muốn họp với Long vào ngày nào, buổi sáng hay chiều?"}`}
	svc := NewClarifyService(client)

	q, err := svc.Generate(context.Background(), missingTimeAndPeriod, "họp với lập trình viên Long")
	require.NoError(t, err)
	assert.Equal(t, "Bạn muốn họp với Long vào ngày nào, buổi sáng hay chiều?", q)

	assert.Equal(t, llm.TaskClarify, client.lastReq.Task)
	assert.Contains(t, client.lastReq.UserPrompt, "họp với lập trình viên Long")
	assert.Contains(t, client.lastReq.UserPrompt, domain.MissingTime.Label())
	assert.Contains(t, client.lastReq.UserPrompt, domain.MissingTimeOfDay.Label())
}

func TestClarifyService_Generate_PropagatesClientError(t *testing.T) {
	svc := NewClarifyService(&mockLLMClient{err: llm.ErrProviderUnavailable})

	_, err := svc.Generate(context.Background(), missingTimeAndPeriod, "họp")
	assert.ErrorIs(t, err, llm.ErrProviderUnavailable)
}

func TestClarifyService_Generate_RejectsInvalidOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "Bạn muốn họp lúc nào?"},
		{"empty question", `{"question": "  "}`},
		{"too long", `{"question": "` + strings.Repeat("a", maxQuestionRunes+1) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewClarifyService(&mockLLMClient{response: tt.response})
			_, err := svc.Generate(context.Background(), missingTimeAndPeriod, "họp")
			assert.ErrorIs(t, err, llm.ErrInvalidOutput)
		})
	}
}

// TestClarifyService_WithHTTPTestServer runs the real Ollama client against
// an httptest server so the wire format and the JSON extraction stay in step.
func TestClarifyService_WithHTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": "```json\n{\"question\": \"Bạn muốn họp lúc mấy giờ?\"}\n```",
		})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Model = "test-model"
	cfg.MaxRetries = 0

	svc := NewClarifyService(llm.NewOllamaClient(cfg, llm.NoopObserver{}))
	q, err := svc.Generate(context.Background(), []domain.MissingField{domain.MissingTime}, "họp team")
	require.NoError(t, err)
	assert.Equal(t, "Bạn muốn họp lúc mấy giờ?", q)
}

func TestTemplateQuestion(t *testing.T) {
	q := TemplateQuestion(missingTimeAndPeriod)

	assert.True(t, strings.HasPrefix(q, "Để tư vấn chính xác, tôi cần thêm: "))
	assert.Contains(t, q, domain.MissingTime.Label())
	assert.Contains(t, q, domain.MissingTimeOfDay.Label())
	assert.Contains(t, q, "'ngày mai lúc 9h'")

	assert.Contains(t, TemplateQuestion(nil), domain.MissingTime.Label())
}
