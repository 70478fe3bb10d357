package models

import (
	"time"
)

// Message is a scheduled outreach message template, positioned by day offset
// within a sequence or campaign.
type Message struct {
	ID         string    `json:"id"`
	Day        int       `json:"day"`
	Time       string    `json:"time"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`   // text, template, media, button, list
	Status     string    `json:"status"` // draft, active, paused
	Variables  []string  `json:"variables,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	LastEdited time.Time `json:"last_edited"`
}

type MessageStatus string

const (
	MessageDraft  MessageStatus = "draft"
	MessageActive MessageStatus = "active"
	MessagePaused MessageStatus = "paused"
)

// CampaignStatistics mirrors the vendor's delivery counters. They are bumped
// locally on send but never reconciled against the vendor automatically.
type CampaignStatistics struct {
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Read      int `json:"read"`
	Replied   int `json:"replied"`
	Clicked   int `json:"clicked"`
}

type Campaign struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      string             `json:"status"` // draft, active, paused, completed
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Messages    []Message          `json:"messages"`
	Statistics  CampaignStatistics `json:"statistics"`
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

type FlowResponse struct {
	Pattern  string  `json:"pattern"`
	Message  Message `json:"message"`
	NextFlow string  `json:"next_flow,omitempty"`
}

type ChatbotFlow struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Triggers  []string       `json:"triggers"`
	Responses []FlowResponse `json:"responses"`
	Fallback  Message        `json:"fallback"`
}

// OutreachSettings holds the operator-supplied vendor credentials.
type OutreachSettings struct {
	APIKey     string    `json:"api_key"`
	InstanceID string    `json:"instance_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}
