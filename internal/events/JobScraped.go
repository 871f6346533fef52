package events

var JobScrapedTopic = "JobScrapedEvent"

type JobScraped struct {
	SessionID   string
	URL         string
	JobTitle    string
	CompanyName string
	StoredJobID *uint
}
