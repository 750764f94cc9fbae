package domain

// Stats is a small dashboard summary of the cached catalogue.
type Stats struct {
	TotalBooks     int `json:"total_books"`
	AvailableBooks int `json:"available_books"`
	TotalUsers     int `json:"total_users"`
	TotalLoans     int `json:"total_loans"`
	ActiveLoans    int `json:"active_loans"`
}

func ComputeStats(books []Book, users []User, loans []Loan) Stats {
	s := Stats{
		TotalBooks: len(books),
		TotalUsers: len(users),
		TotalLoans: len(loans),
	}
	for _, b := range books {
		if b.Available {
			s.AvailableBooks++
		}
	}
	for _, l := range loans {
		if l.Active() {
			s.ActiveLoans++
		}
	}
	return s
}
