package store

import (
	"sync"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const whatsappBlob = "whatsapp"

type whatsappSnapshot struct {
	Messages  []models.Message     `json:"messages"`
	Campaigns []models.Campaign    `json:"campaigns"`
	Flows     []models.ChatbotFlow `json:"flows"`
}

// WhatsAppStore owns the outreach content: message templates, campaigns and
// chatbot flows, persisted together in one snapshot.
type WhatsAppStore struct {
	mu    sync.Mutex
	blobs blobstore.Store
	data  whatsappSnapshot
}

func NewWhatsAppStore(blobs blobstore.Store) (*WhatsAppStore, error) {
	s := &WhatsAppStore{blobs: blobs}
	if err := loadSnapshot(blobs, whatsappBlob, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *WhatsAppStore) save() error {
	return saveSnapshot(s.blobs, whatsappBlob, &s.data)
}

func (s *WhatsAppStore) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.data.Messages))
	copy(out, s.data.Messages)
	return out
}

func (s *WhatsAppStore) AddMessage(message models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.ID = newID("msg")
	if message.Status == "" {
		message.Status = string(models.MessageDraft)
	}
	message.LastEdited = time.Now()

	s.data.Messages = append(s.data.Messages, message)
	if err := s.save(); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (s *WhatsAppStore) UpdateMessage(id string, message models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Messages {
		if s.data.Messages[i].ID != id {
			continue
		}
		message.ID = id
		message.LastEdited = time.Now()
		s.data.Messages[i] = message
		if err := s.save(); err != nil {
			return models.Message{}, err
		}
		return message, nil
	}
	return models.Message{}, ErrNotFound
}

func (s *WhatsAppStore) DeleteMessage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.Messages[:0]
	for _, message := range s.data.Messages {
		if message.ID != id {
			kept = append(kept, message)
		}
	}
	s.data.Messages = kept
	return s.save()
}

func (s *WhatsAppStore) Campaigns() []models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Campaign, len(s.data.Campaigns))
	copy(out, s.data.Campaigns)
	return out
}

func (s *WhatsAppStore) AddCampaign(campaign models.Campaign) (models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign.ID = newID("camp")
	campaign.Statistics = models.CampaignStatistics{}
	if campaign.Status == "" {
		campaign.Status = string(models.CampaignDraft)
	}

	s.data.Campaigns = append(s.data.Campaigns, campaign)
	if err := s.save(); err != nil {
		return models.Campaign{}, err
	}
	return campaign, nil
}

func (s *WhatsAppStore) UpdateCampaign(id string, campaign models.Campaign) (models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Campaigns {
		if s.data.Campaigns[i].ID != id {
			continue
		}
		campaign.ID = id
		campaign.Statistics = s.data.Campaigns[i].Statistics
		s.data.Campaigns[i] = campaign
		if err := s.save(); err != nil {
			return models.Campaign{}, err
		}
		return campaign, nil
	}
	return models.Campaign{}, ErrNotFound
}

func (s *WhatsAppStore) DeleteCampaign(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.Campaigns[:0]
	for _, campaign := range s.data.Campaigns {
		if campaign.ID != id {
			kept = append(kept, campaign)
		}
	}
	s.data.Campaigns = kept
	return s.save()
}

// RecordSent bumps a campaign's sent counter after a successful blast.
func (s *WhatsAppStore) RecordSent(campaignID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Campaigns {
		if s.data.Campaigns[i].ID == campaignID {
			s.data.Campaigns[i].Statistics.Sent += count
			return s.save()
		}
	}
	return ErrNotFound
}

func (s *WhatsAppStore) Flows() []models.ChatbotFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatbotFlow, len(s.data.Flows))
	copy(out, s.data.Flows)
	return out
}

func (s *WhatsAppStore) AddFlow(flow models.ChatbotFlow) (models.ChatbotFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow.ID = newID("flow")
	s.data.Flows = append(s.data.Flows, flow)
	if err := s.save(); err != nil {
		return models.ChatbotFlow{}, err
	}
	return flow, nil
}

func (s *WhatsAppStore) UpdateFlow(id string, flow models.ChatbotFlow) (models.ChatbotFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Flows {
		if s.data.Flows[i].ID != id {
			continue
		}
		flow.ID = id
		s.data.Flows[i] = flow
		if err := s.save(); err != nil {
			return models.ChatbotFlow{}, err
		}
		return flow, nil
	}
	return models.ChatbotFlow{}, ErrNotFound
}

func (s *WhatsAppStore) DeleteFlow(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.Flows[:0]
	for _, flow := range s.data.Flows {
		if flow.ID != id {
			kept = append(kept, flow)
		}
	}
	s.data.Flows = kept
	return s.save()
}
