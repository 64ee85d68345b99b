package headhunter

import (
	"fmt"
	"time"

	"github.com/jobdigest/vacancy-api/internal/normalize"
	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

// HeadHunter publishes timestamps as ISO 8601 with a colon-less zone offset.
const publishedAtLayout = "2006-01-02T15:04:05Z0700"

// Normalize maps one HeadHunter detail payload to the canonical record.
// Every optional field degrades to an empty value; only a missing native id
// is an error, since without it the record has no identity.
func (f *Fetcher) Normalize(raw source.RawItem) (*vacancy.Vacancy, error) {
	id := itemID(raw)
	if id == "" {
		return nil, fmt.Errorf("headhunter: vacancy without id: %v", raw)
	}

	data := map[string]any(raw)
	description, _ := raw["description"].(string)
	alternateURL, _ := raw["alternate_url"].(string)
	title, _ := raw["name"].(string)

	return &vacancy.Vacancy{
		Key:         string(vacancy.PlatformHeadHunter) + id,
		Platform:    vacancy.PlatformHeadHunter,
		Title:       title,
		Salary:      normalize.FormatSalary(raw["salary"]),
		Company:     normalize.GetString(data, "employer", "name"),
		City:        normalize.GetString(data, "address", "city"),
		URL:         alternateURL,
		Skills:      normalize.FormatList(raw["key_skills"], "name"),
		Experience:  normalize.GetString(data, "experience", "name"),
		Employment:  normalize.GetString(data, "employment", "name"),
		WorkFormat:  normalize.FormatList(raw["work_format"], "name"),
		Schedule:    normalize.GetString(data, "schedule", "name"),
		Education:   normalize.GetString(data, "education", "level", "name"),
		Description: normalize.PlainText(description),
		Address:     normalize.GetString(data, "address", "raw"),
		Contacts:    normalize.GetString(data, "contacts", "name"),
		PublishedAt: parsePublishedAt(raw["published_at"]),
	}, nil
}

func parsePublishedAt(v any) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	for _, layout := range []string{publishedAtLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
