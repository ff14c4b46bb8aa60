package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory repository stubs shared across the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%03d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListAgentsByAdmin(_ context.Context, adminID string) ([]*domain.User, error) {
	var agents []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleAgent && u.CreatedBy == adminID {
			agents = append(agents, cloneUser(u))
		}
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })
	return agents, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, name, email, mobile string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name, u.Email, u.Mobile = name, email, mobile
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountAgentsByAdmin(_ context.Context, adminID string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == domain.RoleAgent && u.CreatedBy == adminID {
			n++
		}
	}
	return n, nil
}

type stubLeadRepo struct {
	seq       int
	leads     []*domain.Lead
	insertErr error
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{}
}

func cloneLead(l *domain.Lead) *domain.Lead {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

func (r *stubLeadRepo) InsertMany(_ context.Context, batch []*domain.Lead) ([]*domain.Lead, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	out := make([]*domain.Lead, len(batch))
	for i, l := range batch {
		r.seq++
		copy := cloneLead(l)
		copy.ID = fmt.Sprintf("lead-%03d", r.seq)
		r.leads = append(r.leads, cloneLead(copy))
		out[i] = copy
	}
	return out, nil
}

func (r *stubLeadRepo) ListByAdmin(_ context.Context, adminID string) ([]*domain.Lead, error) {
	var out []*domain.Lead
	for _, l := range r.leads {
		if l.AdminID == adminID {
			out = append(out, cloneLead(l))
		}
	}
	return out, nil
}

func (r *stubLeadRepo) ListByAgent(_ context.Context, agentID string) ([]*domain.Lead, error) {
	var out []*domain.Lead
	for _, l := range r.leads {
		if l.AgentID == agentID {
			out = append(out, cloneLead(l))
		}
	}
	return out, nil
}

func (r *stubLeadRepo) UpdateStatusByAdmin(_ context.Context, id, adminID string, status domain.LeadStatus) (*domain.Lead, error) {
	for _, l := range r.leads {
		if l.ID == id && l.AdminID == adminID {
			l.Status = status
			return cloneLead(l), nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *stubLeadRepo) UpdateStatusByAgent(_ context.Context, id, agentID string, status domain.LeadStatus) (*domain.Lead, error) {
	for _, l := range r.leads {
		if l.ID == id && l.AgentID == agentID {
			l.Status = status
			return cloneLead(l), nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *stubLeadRepo) DeleteByAdmin(_ context.Context, id, adminID string) error {
	for i, l := range r.leads {
		if l.ID == id && l.AdminID == adminID {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return domain.ErrLeadNotFound
}

func (r *stubLeadRepo) CountByAdmin(_ context.Context, adminID string) (int64, error) {
	var n int64
	for _, l := range r.leads {
		if l.AdminID == adminID {
			n++
		}
	}
	return n, nil
}

func (r *stubLeadRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.leads)), nil
}
