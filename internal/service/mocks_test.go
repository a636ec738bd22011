package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/queue"
)

// --- Mock Repositories ---

type MockProjectRepo struct {
	mu       sync.Mutex
	nextPID  int64
	projects map[int64]*model.Project
}

func NewMockProjectRepo() *MockProjectRepo {
	return &MockProjectRepo{nextPID: 5000000, projects: map[int64]*model.Project{}}
}

func (m *MockProjectRepo) Create(_ context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.PID = m.nextPID
	m.nextPID++
	p.CreateAt = time.Now()
	p.UpdateAt = p.CreateAt
	cp := *p
	m.projects[p.PID] = &cp
	return nil
}

func (m *MockProjectRepo) GetByID(_ context.Context, cid, pid int64) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[pid]
	if !ok || p.CID != cid {
		return nil, appErrors.NewProjectNotFound(pid)
	}
	cp := *p
	return &cp, nil
}

func (m *MockProjectRepo) ListByCompany(_ context.Context, cid int64, offset, limit int) ([]*model.Project, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []*model.Project{}
	for _, p := range m.projects {
		if p.CID == cid {
			cp := *p
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PID > all[j].PID })

	if offset >= len(all) {
		return []*model.Project{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (m *MockProjectRepo) Update(_ context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.projects[p.PID]
	if !ok || stored.CID != p.CID {
		return appErrors.NewProjectNotFound(p.PID)
	}
	p.UpdateAt = time.Now()
	cp := *p
	m.projects[p.PID] = &cp
	return nil
}

func (m *MockProjectRepo) Delete(_ context.Context, cid, pid int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[pid]
	if !ok || p.CID != cid {
		return appErrors.NewProjectNotFound(pid)
	}
	delete(m.projects, pid)
	return nil
}

type MockCompanyRepo struct {
	companies map[int64]*model.Company
}

func (m *MockCompanyRepo) Create(_ context.Context, c *model.Company) error {
	if m.companies == nil {
		m.companies = map[int64]*model.Company{}
	}
	c.CID = int64(1000000 + len(m.companies))
	c.CreateAt = time.Now()
	m.companies[c.CID] = c
	return nil
}

func (m *MockCompanyRepo) GetByID(_ context.Context, cid int64) (*model.Company, error) {
	c, ok := m.companies[cid]
	if !ok {
		return nil, appErrors.NewCompanyNotFound(cid)
	}
	return c, nil
}

type MockUserRepo struct {
	users []*model.UserAccount
}

func (m *MockUserRepo) Create(_ context.Context, u *model.UserAccount) error {
	u.UID = int64(3000000 + len(m.users))
	u.CreateAt = time.Now()
	m.users = append(m.users, u)
	return nil
}

func (m *MockUserRepo) GetByID(_ context.Context, uid int64) (*model.UserAccount, error) {
	for _, u := range m.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, appErrors.NewUserNotFound(uid)
}

func (m *MockUserRepo) GetByEmail(_ context.Context, email string) (*model.UserAccount, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// --- Mock Queue ---

type published struct {
	topic   string
	payload []byte
}

type MockQueue struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (q *MockQueue) Publish(_ context.Context, topic string, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, published{topic: topic, payload: payload})
	return nil
}

func (q *MockQueue) Subscribe(string, queue.Handler) error { return nil }
