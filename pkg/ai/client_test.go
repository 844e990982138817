package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func TestImproveCleansOutput(t *testing.T) {
	stub := &stubCompleter{reply: "```\n- Led a team of 5\n- Cut costs by 20%\n```\n"}
	c := NewClient(stub, time.Second)

	out, err := c.Improve(context.Background(), "led team", "experience", "tech-software")
	require.NoError(t, err)

	assert.Equal(t, "- Led a team of 5\n- Cut costs by 20%", out)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "experience description for a tech-software professional")
}

func TestImproveFailures(t *testing.T) {
	c := NewClient(&stubCompleter{err: errors.New("quota")}, 0)
	_, err := c.Improve(context.Background(), "x", "summary", "")
	assert.Error(t, err)

	c = NewClient(&stubCompleter{reply: "  \n"}, 0)
	_, err = c.Improve(context.Background(), "x", "summary", "")
	assert.Error(t, err)
}

func TestWriteCoverLetter(t *testing.T) {
	stub := &stubCompleter{reply: "Dear Hiring Manager,"}
	u := domain.User{Industry: "tech", Skills: []string{"Go"}}

	out, err := NewClient(stub, 0).WriteCoverLetter(context.Background(), u, model.CoverLetterInput{CompanyName: "Acme", JobTitle: "Engineer", JobDescription: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,", out)
	assert.Contains(t, stub.prompts[0], "Engineer position at Acme")
}

func TestServiceCompleter(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(chatResponse{Agent: "auto", Output: "improved"})
	}))
	defer srv.Close()

	out, err := NewServiceCompleter(srv.URL+"/").Complete(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "improved", out)
	assert.Equal(t, "auto", got.Agent)
	assert.Equal(t, "hello", got.Input)
}

func TestServiceCompleterSingleAttemptOnError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewServiceCompleter(srv.URL).Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, 1, calls)
}

func TestGeminiCompleterNeedsKey(t *testing.T) {
	_, err := NewGeminiCompleter(context.Background(), "", "gemini-1.5-flash")
	assert.Error(t, err)
}

func TestNewCompleter(t *testing.T) {
	c, closeFn, err := NewCompleter(context.Background(), "service", "", "", "http://ai:8000")
	require.NoError(t, err)
	assert.IsType(t, &ServiceCompleter{}, c)
	assert.NoError(t, closeFn())

	_, _, err = NewCompleter(context.Background(), "openai", "", "", "")
	assert.Error(t, err)
}
