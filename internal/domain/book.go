package domain

import "strings"

// Book is a catalogue entry as exposed by the library service.
type Book struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationYear int     `json:"publication_year"`
	ISBN            string  `json:"isbn"`
	Available       bool    `json:"available"`
	ImageURL        *string `json:"image_url,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// NewBook returns a book ready to be created on the server (id 0, available).
func NewBook(title, author string, year int, isbn string) Book {
	return Book{
		Title:           title,
		Author:          author,
		PublicationYear: year,
		ISBN:            isbn,
		Available:       true,
	}
}

// SeedBooks is the last-resort catalogue used when both the service and the
// local cache are empty. Every call returns a fresh slice.
func SeedBooks() []Book {
	return []Book{
		{
			ID:              1,
			Title:           "The Great Gatsby",
			Author:          "F. Scott Fitzgerald",
			PublicationYear: 1925,
			ISBN:            "978-0743273565",
			Available:       true,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1544947950-fa07a98d237f"),
			Description:     strPtr("A novel about the American dream and its tragedy."),
		},
		{
			ID:              2,
			Title:           "1984",
			Author:          "George Orwell",
			PublicationYear: 1949,
			ISBN:            "978-0451524935",
			Available:       true,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c"),
			Description:     strPtr("A dystopian novel about totalitarianism."),
		},
	}
}

// FindBook returns the book with the given id.
func FindBook(books []Book, id int) (Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// SearchBooks filters by a case-insensitive substring of title or author.
// An empty (or blank) query returns every book.
func SearchBooks(books []Book, query string) []Book {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if q == "" ||
			strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out
}

// AvailableBooks returns the books that can be issued right now.
func AvailableBooks(books []Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Available {
			out = append(out, b)
		}
	}
	return out
}

func strPtr(s string) *string { return &s }
