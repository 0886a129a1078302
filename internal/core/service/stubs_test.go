package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

var errStoreDown = errors.New("connection refused")

// ---------------------------------------------------------------------------
// Account store
// ---------------------------------------------------------------------------

type stubAccountStore struct {
	mu      sync.Mutex
	kind    domain.Kind
	nextID  int64
	byID    map[int64]*domain.Account
	links   map[int64][]int64 // user id → helper ids
	helpers *stubAccountStore // resolves helper ids for the user store

	findErr   error
	createErr error
	updateErr error
	deleteErr error
	linkErr   error
	unlinkErr error

	deleted []int64
}

func newStubAccountStore(kind domain.Kind) *stubAccountStore {
	return &stubAccountStore{kind: kind, byID: map[int64]*domain.Account{}, links: map[int64][]int64{}}
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	c.Helpers = nil
	return &c
}

func (s *stubAccountStore) seed(a *domain.Account) *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.nextID + 1
	}
	if a.ID > s.nextID {
		s.nextID = a.ID
	}
	a.Kind = s.kind
	s.byID[a.ID] = cloneAccount(a)
	return a
}

func (s *stubAccountStore) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	s.nextID++
	c := cloneAccount(a)
	c.ID = s.nextID
	s.byID[c.ID] = c
	return cloneAccount(c), nil
}

func (s *stubAccountStore) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (s *stubAccountStore) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return cloneAccount(a), nil
}

func (s *stubAccountStore) List(_ context.Context) ([]*domain.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Account, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubAccountStore) Update(_ context.Context, id int64, patch domain.AccountPatch) (*domain.Account, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	patch.Apply(a)
	return cloneAccount(a), nil
}

func (s *stubAccountStore) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAccountStore) AddHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	if s.linkErr != nil {
		return nil, s.linkErr
	}
	s.mu.Lock()
	if _, ok := s.byID[userID]; !ok {
		s.mu.Unlock()
		return nil, domain.ErrRecordNotFound
	}
	linked := false
	for _, id := range s.links[userID] {
		linked = linked || id == helperID
	}
	if !linked {
		s.links[userID] = append(s.links[userID], helperID)
	}
	s.mu.Unlock()
	return s.withHelpers(ctx, userID)
}

func (s *stubAccountStore) RemoveHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	if s.unlinkErr != nil {
		return nil, s.unlinkErr
	}
	s.mu.Lock()
	if _, ok := s.byID[userID]; !ok {
		s.mu.Unlock()
		return nil, domain.ErrRecordNotFound
	}
	kept := s.links[userID][:0]
	for _, id := range s.links[userID] {
		if id != helperID {
			kept = append(kept, id)
		}
	}
	s.links[userID] = kept
	s.mu.Unlock()
	return s.withHelpers(ctx, userID)
}

func (s *stubAccountStore) Helpers(ctx context.Context, userID int64) ([]*domain.Account, error) {
	user, err := s.withHelpers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Helpers, nil
}

func (s *stubAccountStore) withHelpers(ctx context.Context, userID int64) (*domain.Account, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	ids := append([]int64(nil), s.links[userID]...)
	s.mu.Unlock()
	user.Helpers = []*domain.Account{}
	for _, id := range ids {
		if h, err := s.helpers.FindByID(ctx, id); err == nil {
			user.Helpers = append(user.Helpers, h)
		}
	}
	return user, nil
}

// ---------------------------------------------------------------------------
// Recommendation store
// ---------------------------------------------------------------------------

type stubRecommendationStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.HelperRecommendation

	createErr error
	updateErr error
	updates   int
}

func newStubRecommendationStore() *stubRecommendationStore {
	return &stubRecommendationStore{byID: map[int64]*domain.HelperRecommendation{}}
}

func cloneRecommendation(r *domain.HelperRecommendation) *domain.HelperRecommendation {
	c := *r
	return &c
}

func (s *stubRecommendationStore) seed(r *domain.HelperRecommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[r.ID] = cloneRecommendation(r)
	if r.ID > s.nextID {
		s.nextID = r.ID
	}
}

func (s *stubRecommendationStore) Create(_ context.Context, r *domain.HelperRecommendation) (*domain.HelperRecommendation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := cloneRecommendation(r)
	c.ID = s.nextID
	s.byID[c.ID] = c
	return cloneRecommendation(c), nil
}

func (s *stubRecommendationStore) FindByID(_ context.Context, id int64) (*domain.HelperRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return cloneRecommendation(r), nil
}

func (s *stubRecommendationStore) FindPendingByEmail(_ context.Context, email string) (*domain.HelperRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.Email == email && r.Status == domain.RecommendationPending {
			return cloneRecommendation(r), nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (s *stubRecommendationStore) List(_ context.Context) ([]*domain.HelperRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.HelperRecommendation, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, cloneRecommendation(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubRecommendationStore) Update(_ context.Context, id int64, patch domain.RecommendationPatch) (*domain.HelperRecommendation, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	patch.Apply(r)
	s.updates++
	return cloneRecommendation(r), nil
}

func (s *stubRecommendationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// User action store, recorder, hasher, locker
// ---------------------------------------------------------------------------

type stubActionStore struct {
	mu      sync.Mutex
	actions []*domain.UserAction
	err     error
}

func (s *stubActionStore) Append(_ context.Context, a *domain.UserAction) (*domain.UserAction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *a
	c.ID = int64(len(s.actions) + 1)
	s.actions = append(s.actions, &c)
	return &c, nil
}

func (s *stubActionStore) ListByUser(_ context.Context, userID int64) ([]*domain.UserAction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.UserAction
	for i := len(s.actions) - 1; i >= 0; i-- {
		if s.actions[i].UserID == userID {
			c := *s.actions[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

type recordedAction struct {
	userID int64
	action string
}

type stubRecorder struct {
	mu       sync.Mutex
	recorded []recordedAction
}

func (r *stubRecorder) Record(userID int64, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, recordedAction{userID, action})
}

// stubHasher prefixes the plaintext so digests are predictable and never
// equal to the input.
type stubHasher struct{ err error }

func (h stubHasher) Hash(_ context.Context, plaintext string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plaintext, nil
}

type stubLocker struct {
	held    map[string]bool
	err     error
	acquire []string
}

func (l *stubLocker) Lock(_ context.Context, key string) (func(context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.held[key] {
		return nil, ports.ErrLockHeld
	}
	l.acquire = append(l.acquire, key)
	return func(context.Context) error { return nil }, nil
}
