package generate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewforge/reviewgen/pkg/schema"
)

type stubClient struct {
	content    string
	err        error
	credential bool
	calls      int
	lastReq    ChatRequest
}

func (s *stubClient) HasCredential() bool { return s.credential }

func (s *stubClient) CreateChatCompletion(_ context.Context, req ChatRequest) (ChatResponse, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return ChatResponse{}, s.err
	}
	var resp ChatResponse
	if s.content != "" {
		envelope := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": s.content}},
			},
		}
		payload, err := json.Marshal(envelope)
		if err != nil {
			return ChatResponse{}, err
		}
		if err := json.Unmarshal(payload, &resp); err != nil {
			return ChatResponse{}, err
		}
	}
	return resp, nil
}

const validSchemaJSON = `{
	"title": "Headphones Review Form",
	"sections": ["General"],
	"fields": [
		{"name": "reviewTitle", "label": "Review Title", "type": "text", "required": true, "section": "General"},
		{"name": "overallRating", "label": "Overall Rating", "type": "rating", "required": true, "section": "General"}
	]
}`

func TestGenerateReturnsValidatedStructure(t *testing.T) {
	client := &stubClient{content: validSchemaJSON, credential: true}
	gen := New(client)

	structure, err := gen.Generate(context.Background(), "headphones")
	require.NoError(t, err)
	assert.Equal(t, "Headphones Review Form", structure.Title)
	assert.Len(t, structure.Fields, 2)
	assert.Equal(t, schema.FieldTypeRating, structure.Fields[1].Type)
	assert.Equal(t, 1, client.calls)
}

func TestGenerateRequestShape(t *testing.T) {
	client := &stubClient{content: validSchemaJSON, credential: true}
	gen := New(client, WithModel("gpt-4o"))

	_, err := gen.Generate(context.Background(), "espresso machine")
	require.NoError(t, err)

	req := client.lastReq
	assert.Equal(t, "gpt-4o", req.Model)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[1].Content, "espresso machine")
	assert.Contains(t, req.Messages[1].Content, "PERSONALLY IDENTIFIABLE INFORMATION")
	assert.Contains(t, req.Messages[1].Content, "overallRating")
	assert.Contains(t, req.Messages[1].Content, `"General"`)
}

func TestGenerateMissingCredentialSkipsUpstream(t *testing.T) {
	client := &stubClient{content: validSchemaJSON, credential: false}
	gen := New(client)

	_, err := gen.Generate(context.Background(), "headphones")
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, client.calls, "upstream must not be called without a credential")
}

func TestGenerateEmptyResponse(t *testing.T) {
	client := &stubClient{content: "", credential: true}
	gen := New(client)

	_, err := gen.Generate(context.Background(), "headphones")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateMalformedJSON(t *testing.T) {
	client := &stubClient{content: "here is your form: {title", credential: true}
	gen := New(client)

	_, err := gen.Generate(context.Background(), "headphones")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse model response as JSON")

	var verr *schema.ValidationError
	assert.False(t, errors.As(err, &verr), "parse failures are not validation errors")
}

func TestGenerateSchemaViolation(t *testing.T) {
	client := &stubClient{content: `{"title": "", "fields": []}`, credential: true}
	gen := New(client)

	_, err := gen.Generate(context.Background(), "headphones")
	require.Error(t, err)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "title")
	assert.Contains(t, verr.Details, "fields")
}

func TestGenerateUpstreamFailure(t *testing.T) {
	client := &stubClient{err: errors.New("upstream unavailable"), credential: true}
	gen := New(client)

	_, err := gen.Generate(context.Background(), "headphones")
	require.Error(t, err)
	assert.Equal(t, 1, client.calls, "exactly one upstream attempt, no retries")
}
