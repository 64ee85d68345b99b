package vacancy

import "context"

type Repository interface {
	// Upsert creates the vacancy or overwrites all fields of the existing
	// record with the same identity key. Referenced platform/company/city
	// rows are created lazily by name.
	Upsert(ctx context.Context, v *Vacancy) error
	// List returns all vacancies ordered by publication time descending,
	// ties broken by insertion order.
	List(ctx context.Context) ([]Vacancy, error)
}
