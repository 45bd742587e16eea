package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/noah-isme/bimbel-api/internal/models"
)

// userIDKey is the session value holding the authenticated user id.
const userIDKey = "user_id"

// Options configures the cookie side of a Store.
type Options struct {
	Secret   string
	TTL      time.Duration
	Secure   bool
	SameSite http.SameSite
}

// Store is a gorilla/sessions store whose cookie carries only a signed session id. The
// session state lives in a KV.
type Store struct {
	kv      KV
	codecs  []securecookie.Codec
	options *sessions.Options
	ttl     time.Duration
}

var _ sessions.Store = (*Store)(nil)

// NewStore builds a Store backed by kv.
func NewStore(kv KV, opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.SameSite == 0 {
		opts.SameSite = http.SameSiteLaxMode
	}
	maxAge := int(opts.TTL / time.Second)
	codecs := securecookie.CodecsFromPairs([]byte(opts.Secret))
	for _, codec := range codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(maxAge)
		}
	}
	return &Store{
		kv:     kv,
		codecs: codecs,
		ttl:    opts.TTL,
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: opts.SameSite,
		},
	}
}

// Get returns the session cached for the request or loads it.
func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered or expired cookie
// yields a fresh session; only a backend failure is returned as an error.
func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, cookie.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	found, err := s.load(r.Context(), id, session)
	if err != nil {
		return session, err
	}
	if found {
		session.ID = id
		session.IsNew = false
	}
	return session, nil
}

// Save persists the session and sets its cookie. A negative MaxAge deletes both.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options != nil && session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.kv.Delete(r.Context(), session.ID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if err := s.persist(r.Context(), session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *Store) load(ctx context.Context, id string, session *sessions.Session) (bool, error) {
	data, err := s.kv.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil || state.UserID == 0 {
		// Unreadable or anonymous state is treated like an expired session.
		return false, nil
	}
	SetUserID(session, state.UserID)
	return true, nil
}

func (s *Store) persist(ctx context.Context, session *sessions.Session) error {
	userID, _ := UserID(session)
	data, err := json.Marshal(models.SessionState{UserID: userID})
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	ttl := s.ttl
	if session.Options != nil && session.Options.MaxAge > 0 {
		ttl = time.Duration(session.Options.MaxAge) * time.Second
	}
	if err := s.kv.Set(ctx, session.ID, data, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Rotate drops the server-side state of session so the next Save issues a new id. Login
// calls it to avoid reusing an id handed out before authentication.
func (s *Store) Rotate(ctx context.Context, session *sessions.Session) error {
	if session.ID != "" {
		if err := s.kv.Delete(ctx, session.ID); err != nil {
			return fmt.Errorf("rotate session: %w", err)
		}
	}
	session.ID = ""
	session.IsNew = true
	return nil
}

// Ping checks the backing KV.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// UserID returns the authenticated user id held by session.
func UserID(session *sessions.Session) (int64, bool) {
	if session == nil {
		return 0, false
	}
	id, ok := session.Values[userIDKey].(int64)
	return id, ok
}

// SetUserID marks session as authenticated for userID.
func SetUserID(session *sessions.Session, userID int64) {
	session.Values[userIDKey] = userID
}

// Invalidate flags session for deletion on the next Save.
func Invalidate(session *sessions.Session) {
	delete(session.Values, userIDKey)
	if session.Options == nil {
		session.Options = &sessions.Options{Path: "/"}
	}
	session.Options.MaxAge = -1
}
