package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"crm_manager/internal/models"
	"crm_manager/internal/store"
	"crm_manager/pkg/onsend"
)

// ConnState is the cached vendor connection state. It expires back to
// Unknown so a stale Connected flag is never trusted indefinitely.
type ConnState string

const (
	StateUnknown      ConnState = "unknown"
	StateConnected    ConnState = "connected"
	StateDisconnected ConnState = "disconnected"
)

// StateCache holds the connection state with a TTL. Get returns StateUnknown
// once the entry has expired.
type StateCache interface {
	Get() ConnState
	Set(state ConnState, ttl time.Duration) error
}

// MemoryStateCache is the in-process StateCache used when no Redis backend
// is configured, and in tests.
type MemoryStateCache struct {
	mu      sync.Mutex
	state   ConnState
	expires time.Time
}

func NewMemoryStateCache() *MemoryStateCache {
	return &MemoryStateCache{state: StateUnknown}
}

func (c *MemoryStateCache) Get() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnknown || time.Now().After(c.expires) {
		return StateUnknown
	}
	return c.state
}

func (c *MemoryStateCache) Set(state ConnState, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.expires = time.Now().Add(ttl)
	return nil
}

// Recipient is one outreach target drawn from the customer or prospect store.
type Recipient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Type  string `json:"type"` // customer, prospect
}

type OutreachService interface {
	Status() ConnState
	TestConnection() onsend.Result
	Credentials() models.OutreachSettings
	UpdateCredentials(apiKey, instanceID string) error
	Audience(kind string) []Recipient
	Blast(audience, message string, attachments []string, campaignID string) (onsend.Result, int)
	CreateSequence(name string, messages []onsend.SequenceMessage, audience string) onsend.SequenceResult
}

type outreachService struct {
	client    *onsend.Client
	customers *store.CustomerStore
	prospects *store.ProspectStore
	whatsapp  *store.WhatsAppStore
	settings  *store.SettingsStore
	state     StateCache
	stateTTL  time.Duration
}

func NewOutreachService(
	client *onsend.Client,
	customers *store.CustomerStore,
	prospects *store.ProspectStore,
	whatsapp *store.WhatsAppStore,
	settings *store.SettingsStore,
	state StateCache,
	stateTTL time.Duration,
) OutreachService {
	// Restore persisted credentials so the client is usable after restart.
	saved := settings.Get()
	if saved.APIKey != "" || saved.InstanceID != "" {
		client.UpdateConfig(saved.APIKey, saved.InstanceID)
	}
	return &outreachService{
		client:    client,
		customers: customers,
		prospects: prospects,
		whatsapp:  whatsapp,
		settings:  settings,
		state:     state,
		stateTTL:  stateTTL,
	}
}

func (s *outreachService) Status() ConnState {
	return s.state.Get()
}

func (s *outreachService) TestConnection() onsend.Result {
	result := s.client.TestConnection()
	next := StateDisconnected
	if result.Success {
		next = StateConnected
	}
	if err := s.state.Set(next, s.stateTTL); err != nil {
		log.Printf("Warning: failed to cache connection state: %v", err)
	}
	return result
}

func (s *outreachService) Credentials() models.OutreachSettings {
	return s.settings.Get()
}

func (s *outreachService) UpdateCredentials(apiKey, instanceID string) error {
	if err := s.settings.Set(apiKey, instanceID); err != nil {
		return err
	}
	s.client.UpdateConfig(apiKey, instanceID)
	// New credentials invalidate whatever we knew about the connection.
	return s.state.Set(StateUnknown, s.stateTTL)
}

// Audience builds the recipient list: "customers", "prospects" or "all".
// Entries without a phone number are skipped.
func (s *outreachService) Audience(kind string) []Recipient {
	var recipients []Recipient
	if kind == "all" || kind == "customers" {
		for _, customer := range s.customers.All() {
			if customer.Phone == "" {
				continue
			}
			recipients = append(recipients, Recipient{
				ID:    customer.ID,
				Name:  customer.Name,
				Phone: customer.Phone,
				Type:  "customer",
			})
		}
	}
	if kind == "all" || kind == "prospects" {
		for _, prospect := range s.prospects.All() {
			if prospect.Phone == "" {
				continue
			}
			recipients = append(recipients, Recipient{
				ID:    prospect.ID,
				Name:  prospect.Name,
				Phone: prospect.Phone,
				Type:  "prospect",
			})
		}
	}
	return recipients
}

// Blast sends one message to the whole audience in a single batch call,
// substituting the {name} placeholder per recipient. When the blast belongs
// to a campaign, the campaign's sent counter is bumped on success.
func (s *outreachService) Blast(audience, message string, attachments []string, campaignID string) (onsend.Result, int) {
	recipients := s.Audience(audience)
	if len(recipients) == 0 {
		return onsend.Result{Success: false, Message: "No recipients in selected audience"}, 0
	}

	if s.state.Get() != StateConnected {
		if result := s.TestConnection(); !result.Success {
			return result, 0
		}
	}

	messages := make([]onsend.BulkMessage, len(recipients))
	for i, recipient := range recipients {
		messages[i] = onsend.BulkMessage{
			To:          recipient.Phone,
			Message:     strings.ReplaceAll(message, "{name}", recipient.Name),
			Attachments: attachments,
		}
	}

	result := s.client.SendBulk(messages)
	if result.Success && campaignID != "" {
		if err := s.whatsapp.RecordSent(campaignID, len(messages)); err != nil {
			log.Printf("Warning: failed to record sent count for campaign %s: %v", campaignID, err)
		}
	}
	return result, len(messages)
}

func (s *outreachService) CreateSequence(name string, messages []onsend.SequenceMessage, audience string) onsend.SequenceResult {
	recipients := s.Audience(audience)
	if len(recipients) == 0 {
		return onsend.SequenceResult{Success: false, Message: "No recipients in selected audience"}
	}

	if s.state.Get() != StateConnected {
		if result := s.TestConnection(); !result.Success {
			return onsend.SequenceResult{Success: false, Message: result.Message}
		}
	}

	phones := make([]string, len(recipients))
	for i, recipient := range recipients {
		phones[i] = recipient.Phone
	}
	return s.client.CreateSequence(name, messages, phones)
}
