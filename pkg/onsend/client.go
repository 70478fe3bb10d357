// Package onsend wraps the OnSend messaging API: an instance-info handshake,
// bulk message send, and drip-sequence creation. Every operation folds
// transport and vendor failures into the same {success, message} result shape
// so callers only ever surface a message to the operator.
package onsend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const DefaultBaseURL = "https://api.onsend.io/v1"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu         sync.Mutex
	apiKey     string
	instanceID string
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SequenceResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SequenceID string `json:"sequence_id,omitempty"`
}

type BulkMessage struct {
	To          string   `json:"to"`
	Message     string   `json:"message"`
	Attachments []string `json:"attachments,omitempty"`
}

type SequenceMessage struct {
	Day         int      `json:"day"`
	Time        string   `json:"time"`
	Message     string   `json:"message"`
	Attachments []string `json:"attachments,omitempty"`
}

type apiResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SequenceID string `json:"sequenceId"`
}

func NewClient(baseURL, apiKey, instanceID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		apiKey:     apiKey,
		instanceID: instanceID,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// UpdateConfig replaces the operator-supplied credentials.
func (c *Client) UpdateConfig(apiKey, instanceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
	c.instanceID = instanceID
}

func (c *Client) credentials() (apiKey, instanceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey, c.instanceID
}

// normalizePhone strips everything except digits before transmission.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TestConnection performs the instance-info handshake. Empty credentials fail
// fast with a descriptive message and no network call.
func (c *Client) TestConnection() Result {
	apiKey, instanceID := c.credentials()
	if apiKey == "" || instanceID == "" {
		return Result{Success: false, Message: "API token and Instance ID are required"}
	}

	payload := map[string]interface{}{
		"instanceId": instanceID,
	}
	response, err := c.post("/instance/info", payload)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	message := response.Message
	if message == "" {
		message = "Connected to OnSend.io"
	}
	return Result{Success: response.Success, Message: message}
}

// SendBulk transmits one batch call for the whole recipient list. Recipient
// numbers are normalized to digits only. The vendor reports one aggregate
// success flag; per-recipient delivery status is not tracked here.
func (c *Client) SendBulk(messages []BulkMessage) Result {
	apiKey, instanceID := c.credentials()
	if apiKey == "" || instanceID == "" {
		return Result{Success: false, Message: "API token and Instance ID are required"}
	}

	outgoing := make([]BulkMessage, len(messages))
	for i, message := range messages {
		outgoing[i] = message
		outgoing[i].To = normalizePhone(message.To)
	}

	payload := map[string]interface{}{
		"instanceId": instanceID,
		"messages":   outgoing,
	}
	response, err := c.post("/messages/bulk", payload)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	message := response.Message
	if message == "" {
		message = "Messages sent successfully"
	}
	return Result{Success: response.Success, Message: message}
}

// CreateSequence registers a day-offset message sequence for the recipient
// list and returns the vendor-assigned sequence id on success.
func (c *Client) CreateSequence(name string, messages []SequenceMessage, recipients []string) SequenceResult {
	apiKey, instanceID := c.credentials()
	if apiKey == "" || instanceID == "" {
		return SequenceResult{Success: false, Message: "API token and Instance ID are required"}
	}

	normalized := make([]string, len(recipients))
	for i, recipient := range recipients {
		normalized[i] = normalizePhone(recipient)
	}

	payload := map[string]interface{}{
		"instanceId": instanceID,
		"name":       name,
		"messages":   messages,
		"recipients": normalized,
	}
	response, err := c.post("/sequences/create", payload)
	if err != nil {
		return SequenceResult{Success: false, Message: err.Error()}
	}

	message := response.Message
	if message == "" {
		message = "Sequence created successfully"
	}
	return SequenceResult{Success: response.Success, Message: message, SequenceID: response.SequenceID}
}

func (c *Client) post(path string, payload interface{}) (*apiResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	apiKey, _ := c.credentials()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response apiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &response, nil
}
