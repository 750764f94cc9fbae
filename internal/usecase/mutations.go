package usecase

import (
	"context"

	"github.com/aalvaropc/libris/internal/domain"
)

func (l *Library) AddBook(ctx context.Context, book domain.Book) (domain.Book, error) {
	created, err := l.api.CreateBook(ctx, book)
	if err != nil {
		return domain.Book{}, l.fail("books.add.failed", "Failed to add book", err)
	}

	l.update(func(s *State) { s.Books = append(s.Books, created) })
	l.persist(ctx)
	l.log.Info("books.added", "id", created.ID, "title", created.Title)
	return created, nil
}

func (l *Library) UpdateBook(ctx context.Context, book domain.Book) (domain.Book, error) {
	updated, err := l.api.UpdateBook(ctx, book.ID, book)
	if err != nil {
		return domain.Book{}, l.fail("books.update.failed", "Failed to update book", err)
	}

	l.update(func(s *State) {
		for i := range s.Books {
			if s.Books[i].ID == updated.ID {
				s.Books[i] = updated
			}
		}
	})
	l.persist(ctx)
	return updated, nil
}

func (l *Library) DeleteBook(ctx context.Context, id int) error {
	if err := l.api.DeleteBook(ctx, id); err != nil {
		return l.fail("books.delete.failed", "Failed to delete book", err)
	}

	l.update(func(s *State) {
		out := make([]domain.Book, 0, len(s.Books))
		for _, b := range s.Books {
			if b.ID != id {
				out = append(out, b)
			}
		}
		s.Books = out
	})
	l.persist(ctx)
	return nil
}

func (l *Library) AddUser(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := l.api.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, l.fail("users.add.failed", "Failed to add user", err)
	}

	l.update(func(s *State) { s.Users = append(s.Users, created.Clone()) })
	l.persist(ctx)
	l.log.Info("users.added", "id", created.ID, "username", created.Username)
	return created, nil
}

func (l *Library) DeleteUser(ctx context.Context, id int) error {
	if err := l.api.DeleteUser(ctx, id); err != nil {
		return l.fail("users.delete.failed", "Failed to delete user", err)
	}

	l.update(func(s *State) {
		out := make([]domain.User, 0, len(s.Users))
		for _, u := range s.Users {
			if u.ID != id {
				out = append(out, u)
			}
		}
		s.Users = out
	})
	l.persist(ctx)
	return nil
}
