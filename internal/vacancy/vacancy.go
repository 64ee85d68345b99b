package vacancy

import "time"

// Platform identifies the job board a vacancy was ingested from.
type Platform string

const (
	PlatformHeadHunter Platform = "hh"
	PlatformSuperJob   Platform = "superjob"
)

// Vacancy is the canonical record shape shared by all platforms. Key is the
// identity key "{platform}{nativeID}" and is unique in the store; repeated
// ingestion of the same key overwrites every other field.
type Vacancy struct {
	ID          int64      `json:"-"`
	Key         string     `json:"id"`
	Platform    Platform   `json:"platform"`
	Title       string     `json:"title"`
	Salary      string     `json:"salary"`
	Company     string     `json:"company"`
	City        string     `json:"city"`
	URL         string     `json:"url"`
	Skills      string     `json:"skills"`
	Experience  string     `json:"experience"`
	Employment  string     `json:"employment"`
	WorkFormat  string     `json:"work_format"`
	Schedule    string     `json:"schedule"`
	Education   string     `json:"education"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Contacts    string     `json:"contacts"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"-"`
}
