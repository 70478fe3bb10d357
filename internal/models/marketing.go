package models

type ContentItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Platform        string `json:"platform"` // facebook, instagram, tiktok, website
	Time            string `json:"time"`
	Status          string `json:"status"` // pending, completed
	BackgroundColor string `json:"background_color,omitempty"`
}

// MarketingDay groups the scheduled content items for one calendar date.
// Date is a "2006-01-02" string; there is at most one entry per date.
type MarketingDay struct {
	ID       string        `json:"id"`
	Date     string        `json:"date"`
	Contents []ContentItem `json:"contents"`
}

type ContentPlatform string

const (
	PlatformFacebook  ContentPlatform = "facebook"
	PlatformInstagram ContentPlatform = "instagram"
	PlatformTikTok    ContentPlatform = "tiktok"
	PlatformWebsite   ContentPlatform = "website"
)

type ContentStatus string

const (
	ContentPending   ContentStatus = "pending"
	ContentCompleted ContentStatus = "completed"
)
