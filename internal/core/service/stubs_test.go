package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[uint]*domain.User
	nextID uint
	// racing makes FindByUsername miss existing users, as if a concurrent
	// signup committed between the pre-check and the insert.
	racing  bool
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uint]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.nextID++
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.racing {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) seed(username, role string) *domain.User {
	u := &domain.User{ID: r.nextID, Username: username, Role: role, CreatedAt: time.Now().UTC()}
	r.byID[u.ID] = u
	r.nextID++
	return cloneUser(u)
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byID       map[uint]*domain.Account
	nextID     uint
	listErr    error
	lastFilter ports.ListAccountsFilter
	deleted    []uint
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[uint]*domain.Account), nextID: 1}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	for _, existing := range r.byID {
		if existing.Email == a.Email && existing.AddedBy == a.AddedBy {
			return domain.ErrAccountConflict
		}
	}
	a.ID = r.nextID
	r.nextID++
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id uint) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

// Update mirrors the global email check of the real repository.
func (r *stubAccountRepo) Update(_ context.Context, id uint, patch domain.AccountPatch) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if patch.Email != nil && *patch.Email != a.Email {
		for otherID, other := range r.byID {
			if otherID != id && other.Email == *patch.Email {
				return nil, domain.ErrEmailTaken
			}
		}
	}
	patch.Apply(a)
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// List applies the same filters and ordering the real repository uses.
func (r *stubAccountRepo) List(_ context.Context, f ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	var matched []*domain.Account
	for _, a := range r.byID {
		if f.Email != "" && !strings.Contains(strings.ToLower(a.Email), strings.ToLower(f.Email)) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *a
		matched = append(matched, &clone)
	}

	key := func(a *domain.Account) string {
		if f.SortBy == ports.SortByEmail {
			return a.Email
		}
		return a.Name
	}
	sort.Slice(matched, func(i, j int) bool {
		ki, kj := key(matched[i]), key(matched[j])
		if ki == kj {
			return matched[i].ID < matched[j].ID
		}
		if f.Desc {
			return ki > kj
		}
		return ki < kj
	})

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip >= len(matched) {
		return []*domain.Account{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ---------------------------------------------------------------------------
// Revocation and audit
// ---------------------------------------------------------------------------

type stubRevocations struct {
	mu       sync.Mutex
	revoked  map[string]time.Time
	checkErr error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (s *stubRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[id] = until
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[id]
	return ok, nil
}

type stubAudit struct {
	events []domain.AuditEvent
	err    error
}

func (a *stubAudit) Record(_ context.Context, e domain.AuditEvent) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, e)
	return nil
}

func (a *stubAudit) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, len(a.events))
	for i, e := range a.events {
		out[i] = e.Action
	}
	return out
}
