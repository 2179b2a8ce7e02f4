package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/pipeline"
)

type fakeClient struct {
	responses map[string]string
}

func (f *fakeClient) Generate(_ context.Context, _, prompt string, _ llm.Options) (string, error) {
	for marker, response := range f.responses {
		if strings.Contains(prompt, marker) {
			return response, nil
		}
	}
	return "no JSON here", nil
}

func (f *fakeClient) Close() error { return nil }

func testServer() *Server {
	client := &fakeClient{responses: map[string]string{
		"basic information": `{"basics": {"name": "Ada Lovelace"}}`,
		"exact structure": `{
			"candidate_name": "Ada Lovelace",
			"scores": {
				"open_source": {"score": 20, "max": 35, "evidence": "merged PRs"},
				"self_projects": {"score": 15, "max": 30, "evidence": "projects"},
				"production": {"score": 10, "max": 25, "evidence": "work"},
				"technical_skills": {"score": 7, "max": 10, "evidence": "skills"}
			},
			"bonus": {"total": 0, "breakdown": ""},
			"deductions": {"total": 0, "reasons": ""},
			"key_strengths": ["x"],
			"areas_for_improvement": ["y"]
		}`,
	}}
	p := pipeline.New(client, nil, zap.NewNop())
	return New(":0", p, zap.NewNop())
}

func uploadRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestScoreUpload(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/score", "resume.txt", []byte("Ada Lovelace\nEngineer at Acme"))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Evaluation struct {
			CandidateName string  `json:"candidate_name"`
			FinalScore    float64 `json:"final_score"`
		} `json:"evaluation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Ada Lovelace", result.Evaluation.CandidateName)
	assert.Equal(t, 52.0, result.Evaluation.FinalScore)
}

func TestScorePDFAlias(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/score/pdf", "resume.txt", []byte("Ada Lovelace"))
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestScoreMissingFile(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("not multipart"))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "file")
}

func TestScoreEmptyUpload(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/score", "resume.txt", nil)
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "empty file")
}

func TestScoreUnreadablePDF(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/score", "resume.pdf", []byte("%PDF-1.4 garbage"))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "unreadable resume")
}

func TestScoreWrongMethod(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/score", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
