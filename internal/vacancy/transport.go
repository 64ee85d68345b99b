package vacancy

// Pagination describes the caller's position inside the result set. The
// page-number pointers are null at their respective boundaries.
type Pagination struct {
	CurrentPage        int  `json:"current_page"`
	TotalPages         int  `json:"total_pages"`
	HasNext            bool `json:"has_next"`
	HasPrevious        bool `json:"has_previous"`
	NextPageNumber     *int `json:"next_page_number"`
	PreviousPageNumber *int `json:"previous_page_number"`
}

// Page is the paginator's output contract; it is the only shape the
// presentation layer may depend on.
type Page struct {
	Pagination Pagination `json:"pagination"`
	Vacancies  []Vacancy  `json:"vacancies"`
}
