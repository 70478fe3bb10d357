package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
	"crm_manager/internal/store"
	"crm_manager/pkg/onsend"
)

type outreachFixture struct {
	service   OutreachService
	customers *store.CustomerStore
	prospects *store.ProspectStore
	whatsapp  *store.WhatsAppStore
	settings  *store.SettingsStore
	state     *MemoryStateCache
	client    *onsend.Client
}

func newOutreachFixture(t *testing.T, baseURL, apiKey, instanceID string) *outreachFixture {
	t.Helper()
	blobs := blobstore.NewMemoryStore()

	customers, err := store.NewCustomerStore(blobs)
	require.NoError(t, err)
	prospects, err := store.NewProspectStore(blobs)
	require.NoError(t, err)
	whatsapp, err := store.NewWhatsAppStore(blobs)
	require.NoError(t, err)
	settings, err := store.NewSettingsStore(blobs)
	require.NoError(t, err)

	state := NewMemoryStateCache()
	client := onsend.NewClient(baseURL, apiKey, instanceID)

	f := &outreachFixture{
		customers: customers,
		prospects: prospects,
		whatsapp:  whatsapp,
		settings:  settings,
		state:     state,
		client:    client,
	}
	f.service = NewOutreachService(client, customers, prospects, whatsapp, settings, state, 5*time.Minute)
	return f
}

func vendorServer(t *testing.T, onBulk func(body []byte)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/messages/bulk" && onBulk != nil {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			onBulk(body)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
}

func TestAudienceSkipsEmptyPhones(t *testing.T) {
	f := newOutreachFixture(t, "http://unused", "key", "inst")

	_, err := f.customers.Add(models.Customer{Name: "Jane", Phone: "60123456789"})
	require.NoError(t, err)
	_, err = f.customers.Add(models.Customer{Name: "No Phone"})
	require.NoError(t, err)
	_, err = f.prospects.Add(models.Prospect{Name: "Lee", Phone: "60198765432"})
	require.NoError(t, err)

	customersOnly := f.service.Audience("customers")
	require.Len(t, customersOnly, 1)
	assert.Equal(t, "customer", customersOnly[0].Type)

	all := f.service.Audience("all")
	assert.Len(t, all, 2)

	prospectsOnly := f.service.Audience("prospects")
	require.Len(t, prospectsOnly, 1)
	assert.Equal(t, "prospect", prospectsOnly[0].Type)
}

func TestBlastSubstitutesNamePlaceholder(t *testing.T) {
	var sent []onsend.BulkMessage
	server := vendorServer(t, func(body []byte) {
		var payload struct {
			Messages []onsend.BulkMessage `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		sent = payload.Messages
	})
	defer server.Close()

	f := newOutreachFixture(t, server.URL, "key", "inst")
	_, err := f.customers.Add(models.Customer{Name: "Jane", Phone: "+60 12-345 6789"})
	require.NoError(t, err)

	result, count := f.service.Blast("customers", "Hi {name}, new stock arrived", nil, "")

	assert.True(t, result.Success)
	assert.Equal(t, 1, count)
	require.Len(t, sent, 1)
	assert.Equal(t, "Hi Jane, new stock arrived", sent[0].Message)
}

func TestBlastEmptyAudience(t *testing.T) {
	f := newOutreachFixture(t, "http://unused", "key", "inst")

	result, count := f.service.Blast("customers", "Hi", nil, "")

	assert.False(t, result.Success)
	assert.Equal(t, 0, count)
	assert.Equal(t, "No recipients in selected audience", result.Message)
}

func TestBlastRecordsCampaignSent(t *testing.T) {
	server := vendorServer(t, nil)
	defer server.Close()

	f := newOutreachFixture(t, server.URL, "key", "inst")
	_, err := f.customers.Add(models.Customer{Name: "Jane", Phone: "60123456789"})
	require.NoError(t, err)
	_, err = f.customers.Add(models.Customer{Name: "Lee", Phone: "60198765432"})
	require.NoError(t, err)
	campaign, err := f.whatsapp.AddCampaign(models.Campaign{Name: "March blast"})
	require.NoError(t, err)

	result, count := f.service.Blast("customers", "Hi {name}", nil, campaign.ID)

	assert.True(t, result.Success)
	assert.Equal(t, 2, count)
	campaigns := f.whatsapp.Campaigns()
	require.Len(t, campaigns, 1)
	assert.Equal(t, 2, campaigns[0].Statistics.Sent)
}

func TestBlastFailsFastWithoutCredentials(t *testing.T) {
	f := newOutreachFixture(t, "http://unused", "", "")
	_, err := f.customers.Add(models.Customer{Name: "Jane", Phone: "60123456789"})
	require.NoError(t, err)

	result, count := f.service.Blast("customers", "Hi", nil, "")

	assert.False(t, result.Success)
	assert.Equal(t, 0, count)
	assert.Equal(t, "API token and Instance ID are required", result.Message)
	assert.Equal(t, StateDisconnected, f.service.Status())
}

func TestTestConnectionCachesState(t *testing.T) {
	server := vendorServer(t, nil)
	defer server.Close()

	f := newOutreachFixture(t, server.URL, "key", "inst")
	assert.Equal(t, StateUnknown, f.service.Status())

	result := f.service.TestConnection()
	assert.True(t, result.Success)
	assert.Equal(t, StateConnected, f.service.Status())
}

func TestUpdateCredentialsResetsStateAndPersists(t *testing.T) {
	server := vendorServer(t, nil)
	defer server.Close()

	f := newOutreachFixture(t, server.URL, "old-key", "old-inst")
	f.service.TestConnection()
	require.Equal(t, StateConnected, f.service.Status())

	require.NoError(t, f.service.UpdateCredentials("new-key", "new-inst"))

	assert.Equal(t, StateUnknown, f.service.Status())
	saved := f.settings.Get()
	assert.Equal(t, "new-key", saved.APIKey)
	assert.Equal(t, "new-inst", saved.InstanceID)
}

func TestNewServiceRestoresSavedCredentials(t *testing.T) {
	server := vendorServer(t, nil)
	defer server.Close()

	blobs := blobstore.NewMemoryStore()
	settings, err := store.NewSettingsStore(blobs)
	require.NoError(t, err)
	require.NoError(t, settings.Set("saved-key", "saved-inst"))

	customers, err := store.NewCustomerStore(blobs)
	require.NoError(t, err)
	prospects, err := store.NewProspectStore(blobs)
	require.NoError(t, err)
	whatsapp, err := store.NewWhatsAppStore(blobs)
	require.NoError(t, err)

	client := onsend.NewClient(server.URL, "", "")
	service := NewOutreachService(client, customers, prospects, whatsapp, settings, NewMemoryStateCache(), time.Minute)

	result := service.TestConnection()
	assert.True(t, result.Success)
}

func TestMemoryStateCacheExpires(t *testing.T) {
	cache := NewMemoryStateCache()
	assert.Equal(t, StateUnknown, cache.Get())

	require.NoError(t, cache.Set(StateConnected, 50*time.Millisecond))
	assert.Equal(t, StateConnected, cache.Get())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, StateUnknown, cache.Get())
}

func TestCreateSequenceUsesAudiencePhones(t *testing.T) {
	var recipients []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sequences/create" {
			var payload struct {
				Recipients []string `json:"recipients"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			recipients = payload.Recipients
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "sequenceId": "seq-7"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	f := newOutreachFixture(t, server.URL, "key", "inst")
	_, err := f.prospects.Add(models.Prospect{Name: "Lee", Phone: "+60 19-876 5432"})
	require.NoError(t, err)

	result := f.service.CreateSequence("Welcome", []onsend.SequenceMessage{
		{Day: 1, Time: "09:00", Message: "Hi {name}"},
	}, "prospects")

	assert.True(t, result.Success)
	assert.Equal(t, "seq-7", result.SequenceID)
	assert.Equal(t, []string{"60198765432"}, recipients)
}
