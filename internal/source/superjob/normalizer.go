package superjob

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jobdigest/vacancy-api/internal/normalize"
	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

// Normalize maps one SuperJob vacancy object to the canonical record.
// SuperJob encodes absent salary bounds as zero and publishes timestamps as
// unix seconds; both are translated before formatting.
func (f *Fetcher) Normalize(raw source.RawItem) (*vacancy.Vacancy, error) {
	id := itemID(raw)
	if id == "" {
		return nil, fmt.Errorf("superjob: vacancy without id: %v", raw)
	}

	data := map[string]any(raw)
	title, _ := raw["profession"].(string)
	link, _ := raw["link"].(string)
	company, _ := raw["firm_name"].(string)
	address, _ := raw["address"].(string)
	richText, _ := raw["vacancyRichText"].(string)

	return &vacancy.Vacancy{
		Key:         string(vacancy.PlatformSuperJob) + id,
		Platform:    vacancy.PlatformSuperJob,
		Title:       title,
		Salary:      normalize.FormatSalary(salaryData(raw)),
		Company:     company,
		City:        normalize.GetString(data, "town", "title"),
		URL:         link,
		Skills:      normalize.FormatList(raw["catalogues"], "title"),
		Experience:  normalize.GetString(data, "experience", "title"),
		Employment:  normalize.GetString(data, "type_of_work", "title"),
		WorkFormat:  normalize.GetString(data, "place_of_work", "title"),
		Schedule:    normalize.GetString(data, "schedule", "title"),
		Education:   normalize.GetString(data, "education", "title"),
		Description: normalize.PlainText(richText),
		Address:     address,
		Contacts:    normalize.GetString(data, "phone"),
		PublishedAt: parseDatePublished(raw["date_published"]),
	}, nil
}

// salaryData rebuilds the generic salary object: SuperJob's zero bounds mean
// "not specified" and must not surface as literal zeroes.
func salaryData(raw source.RawItem) map[string]any {
	data := make(map[string]any)
	if from, ok := raw["payment_from"].(float64); ok && from > 0 {
		data["from"] = from
	}
	if to, ok := raw["payment_to"].(float64); ok && to > 0 {
		data["to"] = to
	}
	if currency, ok := raw["currency"].(string); ok {
		data["currency"] = currency
	}
	return data
}

// itemID extracts the native id, which SuperJob serves as a JSON number.
func itemID(item source.RawItem) string {
	switch v := item["id"].(type) {
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case string:
		return v
	default:
		return ""
	}
}

func parseDatePublished(v any) *time.Time {
	seconds, ok := v.(float64)
	if !ok || seconds <= 0 {
		return nil
	}
	t := time.Unix(int64(seconds), 0).UTC()
	return &t
}
