package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JonMunkholm/recordtable/internal/datatable"
	"github.com/google/uuid"
)

// Default service settings, used for zero values in ServiceConfig.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
	DefaultLoadTimeout = 15 * time.Second
)

var (
	// ErrViewNotFound is returned for an unregistered view key.
	ErrViewNotFound = errors.New("view not found")

	// ErrSessionNotFound is returned for an unknown or expired session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the session limit is reached.
	ErrTooManySessions = errors.New("too many sessions")
)

// ServiceConfig holds session service settings.
type ServiceConfig struct {
	Locale      string        // Default collation locale (default: "en")
	SessionTTL  time.Duration // Idle time before a session expires (default: 30m)
	MaxSessions int           // Maximum open sessions (default: 1000)
	LoadTimeout time.Duration // Maximum time to load a view's records (default: 15s)

	MaxConcurrentLoads int           // Record loads allowed at once (default: 8)
	LoadWait           time.Duration // Wait for a load slot before failing (default: 5s)
}

// Service owns the open table sessions.
type Service struct {
	cfg ServiceConfig
	now func() time.Time

	loads *LoadLimiter

	mu       sync.RWMutex
	sessions map[string]*session
}

// session is one viewer's table. mu serializes access to table.
type session struct {
	mu       sync.Mutex
	id       string
	view     ViewDefinition
	table    *datatable.Table
	lastSeen atomic.Int64 // unix nanoseconds
}

// NewService creates a session service, applying defaults to zero settings.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Locale == "" {
		cfg.Locale = datatable.DefaultLocale
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}

	return &Service{
		cfg:      cfg,
		now:      time.Now,
		loads:    NewLoadLimiter(cfg.MaxConcurrentLoads, cfg.LoadWait),
		sessions: make(map[string]*session),
	}
}

// ListViews returns information about all registered views.
func (s *Service) ListViews() []ViewInfo {
	defs := All()
	infos := make([]ViewInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListViewsByGroup returns views organized by group.
func (s *Service) ListViewsByGroup() map[string][]ViewInfo {
	result := make(map[string][]ViewInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// OpenSession loads a view's records and opens a new table session for them.
// A view whose source yields no records still opens; its snapshot reports
// the table unavailable.
func (s *Service) OpenSession(ctx context.Context, viewKey string) (*Snapshot, error) {
	def, ok := Get(viewKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, viewKey)
	}

	records, err := s.loadRecords(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("load records for view %s: %w", viewKey, err)
	}

	locale := def.Locale
	if locale == "" {
		locale = s.cfg.Locale
	}

	id := uuid.New().String()
	sess := &session{
		id:   id,
		view: def,
		table: datatable.New(datatable.Config{
			Columns:               def.Columns,
			Records:               records,
			Header:                def.Header,
			SubHeader:             def.SubHeader,
			IncludeSequenceNumber: def.IncludeSequenceNumber,
			Comparer:              datatable.NewCollator(locale),
			Logger:                slog.Default().With("view", viewKey, "session_id", id),
		}),
	}
	sess.touch(s.now())

	if err := s.insert(sess); err != nil {
		return nil, err
	}

	slog.Info("session opened",
		"session_id", id,
		"view", viewKey,
		"records", len(records),
		"available", sess.table.Available(),
		"ip", IPAddressFromContext(ctx),
		"user_agent", UserAgentFromContext(ctx),
	)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Snapshot returns the current state of a session.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (*Snapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Sort sorts a session's table with an explicit direction.
func (s *Service) Sort(ctx context.Context, sessionID string, req datatable.SortRequest) (*Snapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.table.Sort(req)
	return sess.snapshot(), nil
}

// Toggle sorts a session's table by a column using its stored direction.
func (s *Service) Toggle(ctx context.Context, sessionID string, column datatable.ColumnID) (*Snapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.table.Toggle(column)
	return sess.snapshot(), nil
}

// CloseSession discards a session.
func (s *Service) CloseSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

// WaitForLoads blocks until in-flight record loads finish or ctx ends.
func (s *Service) WaitForLoads(ctx context.Context) error {
	return s.loads.WaitForDrain(ctx)
}

// ActiveLoads returns the number of record loads in progress.
func (s *Service) ActiveLoads() int {
	return s.loads.Active()
}

// SessionCount returns the number of open sessions.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ExpireIdle closes every session idle for longer than the session TTL and
// returns how many were closed.
func (s *Service) ExpireIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expireIdleLocked(s.now())
}

func (s *Service) expireIdleLocked(now time.Time) int {
	cutoff := now.Add(-s.cfg.SessionTTL).UnixNano()
	expired := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff {
			delete(s.sessions, id)
			expired++
		}
	}
	return expired
}

func (s *Service) insert(sess *session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.cfg.MaxSessions {
		s.expireIdleLocked(s.now())
	}
	if len(s.sessions) >= s.cfg.MaxSessions {
		return fmt.Errorf("%w: limit is %d", ErrTooManySessions, s.cfg.MaxSessions)
	}

	s.sessions[sess.id] = sess
	return nil
}

func (s *Service) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	sess.touch(s.now())
	return sess, nil
}

func (s *Service) loadRecords(ctx context.Context, def ViewDefinition) ([]datatable.Record, error) {
	if def.Source == nil {
		return nil, nil
	}

	if err := s.loads.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.loads.Release()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.LoadTimeout)
	defer cancel()

	start := time.Now()
	records, err := def.Source.Records(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("records loaded",
		"view", def.Info.Key,
		"source", def.Source.Describe(),
		"count", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

func (sess *session) touch(now time.Time) {
	sess.lastSeen.Store(now.UnixNano())
}

// snapshot must be called with sess.mu held.
func (sess *session) snapshot() *Snapshot {
	t := sess.table

	var diagnostics []string
	for _, err := range t.Diagnostics() {
		diagnostics = append(diagnostics, err.Error())
	}

	return &Snapshot{
		SessionID:       sess.id,
		View:            sess.view.Info,
		Header:          t.Header(),
		SubHeader:       t.SubHeader(),
		Available:       t.Available(),
		SequenceNumbers: t.SequenceNumbers(),
		Columns:         t.Columns(),
		Rows:            t.Rows(),
		Diagnostics:     diagnostics,
	}
}
