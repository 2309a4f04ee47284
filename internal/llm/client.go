// Package llm talks to an OpenAI-compatible Responses API endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	defaultRequestTimeout     = 120 * time.Second
	responsesEndpointPath     = "/responses"
	headerAuthorization       = "Authorization"
	headerContentType         = "Content-Type"
	contentTypeJSON           = "application/json"
	authorizationBearerPrefix = "Bearer "

	roleSystem = "system"
	roleUser   = "user"

	outputTypeMessage     = "message"
	contentTypeOutputText = "output_text"
	contentTypeText       = "text"
	statusFailed          = "failed"

	maxErrorBodyLength = 512
)

var (
	// ErrEmptyResponse reports a response that carried no text output.
	ErrEmptyResponse = errors.New("response contained no text output")
	// ErrMissingAPIKey reports a client constructed without a credential.
	ErrMissingAPIKey = errors.New("api key is required")
)

type httpClient interface {
	Do(request *http.Request) (*http.Response, error)
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesResponse struct {
	Status     string           `json:"status"`
	OutputText string           `json:"output_text"`
	Output     []responseOutput `json:"output"`
	Error      *responseError   `json:"error"`
}

type responseOutput struct {
	Type    string            `json:"type"`
	Content []responseContent `json:"content"`
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client sends single-turn prompts to the Responses API.
type Client struct {
	http    httpClient
	apiKey  string
	model   string
	baseURL string
}

// NewClient constructs a Client. A nil httpClient uses an http.Client with a 120s timeout
// and an empty baseURL selects DefaultBaseURL.
func NewClient(apiKey string, model string, baseURL string, client httpClient) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    client,
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Model reports the model identifier requests are sent with.
func (client *Client) Model() string {
	return client.model
}

// Complete sends a system instruction and a user prompt and returns the text of the reply.
func (client *Client) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	requestBody, marshalError := json.Marshal(responsesRequest{
		Model: client.model,
		Input: []inputMessage{
			{Role: roleSystem, Content: systemPrompt},
			{Role: roleUser, Content: userPrompt},
		},
	})
	if marshalError != nil {
		return "", fmt.Errorf("marshal request: %w", marshalError)
	}

	request, requestError := client.buildRequest(ctx, requestBody)
	if requestError != nil {
		return "", requestError
	}

	response, doError := client.http.Do(request)
	if doError != nil {
		return "", fmt.Errorf("http request: %w", doError)
	}
	defer response.Body.Close()

	responseBody, readError := io.ReadAll(response.Body)
	if readError != nil {
		return "", fmt.Errorf("read response: %w", readError)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("API error (HTTP %d): %s", response.StatusCode, truncateBody(responseBody))
	}

	var decoded responsesResponse
	if unmarshalError := json.Unmarshal(responseBody, &decoded); unmarshalError != nil {
		return "", fmt.Errorf("unmarshal response: %w", unmarshalError)
	}
	return decoded.text()
}

func (client *Client) buildRequest(ctx context.Context, body []byte) (*http.Request, error) {
	request, requestError := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+responsesEndpointPath, bytes.NewReader(body))
	if requestError != nil {
		return nil, fmt.Errorf("create request: %w", requestError)
	}
	request.Header.Set(headerContentType, contentTypeJSON)
	request.Header.Set(headerAuthorization, authorizationBearerPrefix+client.apiKey)
	return request, nil
}

// text extracts the reply. The aggregated output_text field wins when a server provides it.
func (response responsesResponse) text() (string, error) {
	if response.Error != nil && response.Error.Message != "" {
		return "", fmt.Errorf("API error (%s): %s", response.Error.Code, response.Error.Message)
	}
	if response.Status == statusFailed {
		return "", fmt.Errorf("response status %s", response.Status)
	}
	if strings.TrimSpace(response.OutputText) != "" {
		return response.OutputText, nil
	}
	var parts []string
	for _, output := range response.Output {
		if output.Type != outputTypeMessage {
			continue
		}
		for _, content := range output.Content {
			if content.Type == contentTypeOutputText || content.Type == contentTypeText {
				parts = append(parts, content.Text)
			}
		}
	}
	joined := strings.Join(parts, "\n")
	if strings.TrimSpace(joined) == "" {
		return "", ErrEmptyResponse
	}
	return joined, nil
}

func truncateBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) <= maxErrorBodyLength {
		return trimmed
	}
	return trimmed[:maxErrorBodyLength] + "..."
}
