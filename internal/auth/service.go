// Package auth is the thin authentication facade over the session store and
// the mock database user tables: sign-in by email lookup, session retrieval,
// sign-out.
package auth

import (
	"context"
	"time"

	"github.com/treinalab/treinalab/internal/mockdb"
	"github.com/treinalab/treinalab/internal/session"
	"github.com/treinalab/treinalab/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultSignInLatency is the simulated delay of a sign-in round trip.
	DefaultSignInLatency = 320 * time.Millisecond
	// DefaultSessionLatency is the simulated delay of session reads/clears.
	DefaultSessionLatency = 120 * time.Millisecond

	tokenPrefix = "mock_"
	tokenBytes  = 24
)

type Options struct {
	SignInLatency  time.Duration
	SessionLatency time.Duration
}

type SignInData struct {
	User    mockdb.User     `json:"user"`
	Session session.Session `json:"session"`
}

type Service struct {
	store    *mockdb.Store
	sessions *session.Store
	opts     Options

	// ability to inject the token generator func (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(store *mockdb.Store, sessions *session.Store, opts Options) *Service {
	if opts.SignInLatency == 0 {
		opts.SignInLatency = DefaultSignInLatency
	}
	if opts.SessionLatency == 0 {
		opts.SessionLatency = DefaultSessionLatency
	}
	return &Service{
		store:          store,
		sessions:       sessions,
		opts:           opts,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// SignIn authenticates by email lookup in the live users table and persists
// a fresh session. Failures come back as data, never as panics.
func (s *Service) SignIn(ctx context.Context, email string) (*SignInData, *mockdb.Error) {
	time.Sleep(s.opts.SignInLatency)

	user, ok := s.store.UserByEmail(ctx, email)
	if !ok {
		return nil, &mockdb.Error{Message: "Credenciais inválidas."}
	}

	profile, ok := s.store.ProfileByUserID(ctx, user.ID)
	if !ok {
		return nil, &mockdb.Error{Message: "Perfil não localizado."}
	}

	token, err := s.RandStringFunc(tokenBytes)
	if err != nil {
		return nil, &mockdb.Error{Message: "Falha ao gerar token de sessão."}
	}

	sess := session.Session{
		AccessToken: tokenPrefix + token,
		User:        user,
		Profile:     profile,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		// in-memory session stays valid for this response; warn and go on
		log.Warnf("persist session: %s", err)
	}

	log.Debugf("signed in: %s [%s]", profile.FullName, profile.Role)
	return &SignInData{User: user, Session: sess}, nil
}

// GetSession returns the persisted session or nil. Never fails.
func (s *Service) GetSession(ctx context.Context) *session.Session {
	time.Sleep(s.opts.SessionLatency)
	return s.sessions.Current(ctx)
}

// SignOut deletes the persisted session. Idempotent, never fails.
func (s *Service) SignOut(ctx context.Context) {
	time.Sleep(s.opts.SessionLatency)
	if err := s.sessions.Clear(ctx); err != nil {
		log.Warnf("clear session: %s", err)
	}
}
