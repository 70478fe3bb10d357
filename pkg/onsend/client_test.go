package onsend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "60123456789", normalizePhone("+60 12-345 6789"))
	assert.Equal(t, "60123456789", normalizePhone("60123456789"))
	assert.Equal(t, "", normalizePhone("abc"))
}

func TestTestConnectionRequiresCredentials(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "")
	result := client.TestConnection()

	assert.False(t, result.Success)
	assert.Equal(t, "API token and Instance ID are required", result.Message)
	assert.False(t, called)
}

func TestTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instance/info", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "inst-1", payload["instanceId"])

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "inst-1")
	result := client.TestConnection()

	assert.True(t, result.Success)
	assert.Equal(t, "Connected to OnSend.io", result.Message)
}

func TestSendBulkNormalizesRecipients(t *testing.T) {
	var payload struct {
		InstanceID string        `json:"instanceId"`
		Messages   []BulkMessage `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages/bulk", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "queued"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "inst-1")
	result := client.SendBulk([]BulkMessage{
		{To: "+60 12-345 6789", Message: "Hello Jane"},
	})

	assert.True(t, result.Success)
	assert.Equal(t, "queued", result.Message)
	require.Len(t, payload.Messages, 1)
	assert.Equal(t, "60123456789", payload.Messages[0].To)
	assert.Equal(t, "Hello Jane", payload.Messages[0].Message)
}

func TestSendBulkVendorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "instance offline"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "inst-1")
	result := client.SendBulk([]BulkMessage{{To: "60123456789", Message: "Hi"}})

	assert.False(t, result.Success)
	assert.Equal(t, "instance offline", result.Message)
}

func TestSendBulkTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-key", "inst-1")
	result := client.SendBulk([]BulkMessage{{To: "60123456789", Message: "Hi"}})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestCreateSequence(t *testing.T) {
	var payload struct {
		Name       string            `json:"name"`
		Messages   []SequenceMessage `json:"messages"`
		Recipients []string          `json:"recipients"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sequences/create", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "sequenceId": "seq-42"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "inst-1")
	result := client.CreateSequence("Welcome", []SequenceMessage{
		{Day: 1, Time: "09:00", Message: "Hi {name}"},
	}, []string{"+60 12-345 6789"})

	assert.True(t, result.Success)
	assert.Equal(t, "seq-42", result.SequenceID)
	assert.Equal(t, "Welcome", payload.Name)
	assert.Equal(t, []string{"60123456789"}, payload.Recipients)
}

func TestUpdateConfig(t *testing.T) {
	client := NewClient("", "", "")
	assert.Equal(t, DefaultBaseURL, client.BaseURL)

	result := client.TestConnection()
	assert.False(t, result.Success)

	client.UpdateConfig("key", "inst")
	apiKey, instanceID := client.credentials()
	assert.Equal(t, "key", apiKey)
	assert.Equal(t, "inst", instanceID)
}
