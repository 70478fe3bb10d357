package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

func newWhatsAppStore(t *testing.T) *WhatsAppStore {
	t.Helper()
	s, err := NewWhatsAppStore(blobstore.NewMemoryStore())
	require.NoError(t, err)
	return s
}

func TestAddCampaignZeroesStatistics(t *testing.T) {
	s := newWhatsAppStore(t)

	campaign, err := s.AddCampaign(models.Campaign{
		Name:       "Welcome series",
		Statistics: models.CampaignStatistics{Sent: 100, Delivered: 90},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, campaign.ID)
	assert.Equal(t, string(models.CampaignDraft), campaign.Status)
	assert.Equal(t, models.CampaignStatistics{}, campaign.Statistics)
}

func TestUpdateCampaignPreservesStatistics(t *testing.T) {
	s := newWhatsAppStore(t)

	campaign, err := s.AddCampaign(models.Campaign{Name: "Welcome series"})
	require.NoError(t, err)
	require.NoError(t, s.RecordSent(campaign.ID, 5))

	updated, err := s.UpdateCampaign(campaign.ID, models.Campaign{
		Name:       "Welcome series v2",
		Status:     string(models.CampaignActive),
		Statistics: models.CampaignStatistics{Sent: 999},
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome series v2", updated.Name)
	assert.Equal(t, 5, updated.Statistics.Sent)
}

func TestRecordSentAccumulates(t *testing.T) {
	s := newWhatsAppStore(t)

	campaign, err := s.AddCampaign(models.Campaign{Name: "Blast"})
	require.NoError(t, err)

	require.NoError(t, s.RecordSent(campaign.ID, 3))
	require.NoError(t, s.RecordSent(campaign.ID, 2))

	campaigns := s.Campaigns()
	require.Len(t, campaigns, 1)
	assert.Equal(t, 5, campaigns[0].Statistics.Sent)

	assert.ErrorIs(t, s.RecordSent("camp_missing", 1), ErrNotFound)
}

func TestMessageLifecycle(t *testing.T) {
	s := newWhatsAppStore(t)

	message, err := s.AddMessage(models.Message{Day: 1, Message: "Hi {name}"})
	require.NoError(t, err)
	assert.Equal(t, string(models.MessageDraft), message.Status)
	assert.False(t, message.LastEdited.IsZero())

	updated, err := s.UpdateMessage(message.ID, models.Message{
		Day:     2,
		Message: "Hello {name}",
		Status:  string(models.MessageActive),
	})
	require.NoError(t, err)
	assert.Equal(t, message.ID, updated.ID)
	assert.Equal(t, "Hello {name}", updated.Message)

	require.NoError(t, s.DeleteMessage(message.ID))
	require.NoError(t, s.DeleteMessage(message.ID))
	assert.Empty(t, s.Messages())
}

func TestSnapshotSharedAcrossSections(t *testing.T) {
	blobs := blobstore.NewMemoryStore()

	s, err := NewWhatsAppStore(blobs)
	require.NoError(t, err)

	_, err = s.AddMessage(models.Message{Message: "Hi"})
	require.NoError(t, err)
	_, err = s.AddCampaign(models.Campaign{Name: "Blast"})
	require.NoError(t, err)
	_, err = s.AddFlow(models.ChatbotFlow{Name: "Greeting", Triggers: []string{"hi"}})
	require.NoError(t, err)

	reloaded, err := NewWhatsAppStore(blobs)
	require.NoError(t, err)
	assert.Len(t, reloaded.Messages(), 1)
	assert.Len(t, reloaded.Campaigns(), 1)
	assert.Len(t, reloaded.Flows(), 1)
}
