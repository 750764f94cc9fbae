package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/aalvaropc/libris/internal/domain"
)

const invalidCredentials = "Invalid credentials"

func (l *Library) Register(ctx context.Context, user domain.User) error {
	tok, err := l.api.Register(ctx, user)
	if err != nil {
		return l.fail("auth.register.failed", "Registration failed", err)
	}
	if err := l.cache.SaveToken(ctx, tok.Token); err != nil {
		return l.fail("auth.register.failed", "Registration failed", err)
	}

	l.notify("Registration successful")
	l.log.Info("auth.registered", "username", user.Username)
	return nil
}

// Login authenticates, stores the token and resolves the current user from
// the user list.
func (l *Library) Login(ctx context.Context, username, password string) error {
	l.update(func(s *State) { s.Login = domain.LoadingLogin() })

	user, err := l.login(ctx, username, password)
	if err != nil {
		msg := "Login failed: " + domain.Reason(err)
		if strings.Contains(err.Error(), invalidCredentials) {
			msg = invalidCredentials
		}
		l.log.Warn("auth.login.failed", "username", username, "error", err)
		l.update(func(s *State) {
			s.Login = domain.FailedLogin(msg)
			s.Error = msg
		})
		return &Failure{Message: msg, Err: err}
	}

	l.update(func(s *State) {
		s.CurrentUser = &user
		s.Login = domain.SuccessLogin()
	})
	l.persist(ctx)
	l.log.Info("auth.login", "username", user.Username, "user_id", user.ID)
	return nil
}

func (l *Library) login(ctx context.Context, username, password string) (domain.User, error) {
	tok, err := l.api.Login(ctx, domain.Credentials(username, password))
	if err != nil {
		return domain.User{}, err
	}
	if err := l.cache.SaveToken(ctx, tok.Token); err != nil {
		return domain.User{}, err
	}

	users, err := l.api.ListUsers(ctx)
	if err != nil {
		return domain.User{}, err
	}
	u, ok := domain.FindUserByName(users, username)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (l *Library) UpdateUserEmail(ctx context.Context, email string) error {
	var current *domain.User
	l.view(func(s State) {
		if s.CurrentUser != nil {
			u := s.CurrentUser.Clone()
			current = &u
		}
	})
	if current == nil {
		return l.fail("users.email.failed", "Failed to update email", domain.ErrNotLoggedIn)
	}

	next := current.Clone()
	next.Email = email
	if _, err := l.api.UpdateUser(ctx, next.ID, next); err != nil {
		return l.fail("users.email.failed", "Failed to update email", err)
	}

	l.update(func(s *State) {
		u := next.Clone()
		s.CurrentUser = &u
		for i := range s.Users {
			if s.Users[i].ID == next.ID {
				s.Users[i] = next.Clone()
			}
		}
	})
	l.persist(ctx)
	l.notify("Email updated")
	return nil
}

// Logout forgets the session locally; there is no server-side call.
func (l *Library) Logout(ctx context.Context) error {
	err := l.cache.ClearSession(ctx)
	if err != nil {
		l.log.Error("auth.logout.failed", "error", err)
	}
	l.update(func(s *State) {
		s.CurrentUser = nil
		s.Login = domain.IdleLogin()
	})
	l.log.Info("auth.logout")
	return err
}

// IsAuthenticated reports whether a token is stored and a current user is known.
func (l *Library) IsAuthenticated(ctx context.Context) bool {
	var hasUser bool
	l.view(func(s State) { hasUser = s.CurrentUser != nil })
	if !hasUser {
		return false
	}
	tok, err := l.cache.Token(ctx)
	if err != nil {
		l.log.Warn("auth.token.read.failed", "error", err)
		return false
	}
	return tok != ""
}

// IsFailure reports whether err came from a view-model operation.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
