package vacancy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/jobdigest/vacancy-api/internal/vacancy"
)

const timeFormat = time.RFC3339

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes one canonical vacancy in a single transaction: the referenced
// platform/company/city rows are found-or-created by unique name first so the
// foreign keys are valid, then the vacancy itself is written with one
// INSERT .. ON CONFLICT statement keyed on the identity key. Existence is
// never polled separately; the conflict clause is what keeps concurrent
// ingestion runs from ever producing a duplicate key.
func (r *Repository) Upsert(ctx context.Context, v *domain.Vacancy) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert vacancy: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	platformID, err := getOrCreateName(ctx, tx, "platforms", string(v.Platform))
	if err != nil {
		return err
	}

	var companyID, cityID sql.NullInt64
	if v.Company != "" {
		id, err := getOrCreateName(ctx, tx, "companies", v.Company)
		if err != nil {
			return err
		}
		companyID = sql.NullInt64{Int64: id, Valid: true}
	}
	if v.City != "" {
		id, err := getOrCreateName(ctx, tx, "cities", v.City)
		if err != nil {
			return err
		}
		cityID = sql.NullInt64{Int64: id, Valid: true}
	}

	var publishedAt sql.NullString
	if v.PublishedAt != nil {
		publishedAt = sql.NullString{String: v.PublishedAt.UTC().Format(timeFormat), Valid: true}
	}

	const query = `INSERT INTO vacancies (
			key, platform_id, company_id, city_id, title, salary, url, skills,
			experience, employment, work_format, schedule, education,
			description, address, contacts, published_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			platform_id  = excluded.platform_id,
			company_id   = excluded.company_id,
			city_id      = excluded.city_id,
			title        = excluded.title,
			salary       = excluded.salary,
			url          = excluded.url,
			skills       = excluded.skills,
			experience   = excluded.experience,
			employment   = excluded.employment,
			work_format  = excluded.work_format,
			schedule     = excluded.schedule,
			education    = excluded.education,
			description  = excluded.description,
			address      = excluded.address,
			contacts     = excluded.contacts,
			published_at = excluded.published_at
		RETURNING id`

	err = tx.QueryRowContext(ctx, query,
		v.Key, platformID, companyID, cityID,
		v.Title, v.Salary, v.URL, v.Skills,
		v.Experience, v.Employment, v.WorkFormat, v.Schedule, v.Education,
		v.Description, v.Address, v.Contacts, publishedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("upsert vacancy %s: %w", v.Key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert vacancy %s: commit: %w", v.Key, err)
	}
	return nil
}

// List returns every stored vacancy with its resolved platform/company/city
// names, most recently published first; records sharing a timestamp (or
// lacking one) keep insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Vacancy, error) {
	const query = `SELECT v.id, v.key, p.name,
			COALESCE(c.name, ''), COALESCE(ci.name, ''),
			v.title, v.salary, v.url, v.skills, v.experience, v.employment,
			v.work_format, v.schedule, v.education, v.description, v.address,
			v.contacts, v.published_at, v.created_at
		FROM vacancies v
		JOIN platforms p ON p.id = v.platform_id
		LEFT JOIN companies c ON c.id = v.company_id
		LEFT JOIN cities ci ON ci.id = v.city_id
		ORDER BY v.published_at DESC, v.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vacancies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vacancies []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		var platform string
		var publishedStr sql.NullString
		var createdStr string

		if err := rows.Scan(
			&v.ID, &v.Key, &platform, &v.Company, &v.City,
			&v.Title, &v.Salary, &v.URL, &v.Skills, &v.Experience, &v.Employment,
			&v.WorkFormat, &v.Schedule, &v.Education, &v.Description, &v.Address,
			&v.Contacts, &publishedStr, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scan vacancy: %w", err)
		}

		v.Platform = domain.Platform(platform)
		if publishedStr.Valid {
			if t, err := time.Parse(timeFormat, publishedStr.String); err == nil {
				v.PublishedAt = &t
			}
		}
		v.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		vacancies = append(vacancies, v)
	}

	return vacancies, rows.Err()
}

// getOrCreateName resolves a row id in one of the name-keyed lookup tables,
// inserting the name if it is new. The single INSERT .. ON CONFLICT ..
// RETURNING round trip keeps concurrent ingestions from racing a separate
// existence check into duplicate names.
func getOrCreateName(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	query := fmt.Sprintf( //nolint:gosec // table names are compile-time constants
		"INSERT INTO %s (name) VALUES (?) ON CONFLICT(name) DO UPDATE SET name = excluded.name RETURNING id",
		table,
	)

	var id int64
	if err := tx.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("get or create %s %q: %w", table, name, err)
	}
	return id, nil
}
