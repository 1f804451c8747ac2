package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/muhammad-yeasin/wave2-attendance/internal/model"
	pkgerrors "github.com/muhammad-yeasin/wave2-attendance/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by user id

	getErr      error
	progressErr error
	upsertErr   error
	calls       int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.Email = model.NormalizeEmail(user.Email)
	for _, u := range m.users {
		if u.Email == user.Email {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("00000000-0000-4000-8000-%012d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	email = model.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateWhatsappNumber(_ context.Context, id, number string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.WhatsappNumber = &number
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) RecordProgress(_ context.Context, id string, moduleNumber, milestoneNumber int, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.progressErr != nil {
		return m.progressErr
	}
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.CurrentModuleNumber = &moduleNumber
	u.CurrentMilestoneNumber = &milestoneNumber
	u.LastAttendanceAt = &at
	return nil
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *model.User) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	m.mu.Lock()
	for _, u := range m.users {
		if u.Email == model.NormalizeEmail(user.Email) {
			u.Name = user.Name
			if user.WhatsappNumber != nil {
				u.WhatsappNumber = user.WhatsappNumber
			}
			user.UserID = u.UserID
			m.mu.Unlock()
			return false, nil
		}
	}
	m.mu.Unlock()
	return true, m.Create(ctx, user)
}

// ── Mock AttendanceRepository ──

// mockAttendanceRepo enforces (user, date) uniqueness under its lock, like the real index.
type mockAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*model.Attendance // keyed by user|date

	existsErr error
	createErr error
	// hideExisting makes Exists report false, simulating a lost pre-check race.
	hideExisting bool
	calls        int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance)}
}

func attendanceKey(userID, date string) string { return userID + "|" + date }

func (m *mockAttendanceRepo) Exists(_ context.Context, userID, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.existsErr != nil {
		return false, m.existsErr
	}
	if m.hideExisting {
		return false, nil
	}
	_, ok := m.records[attendanceKey(userID, date)]
	return ok, nil
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	key := attendanceKey(record.UserID, record.AttendanceDate)
	if _, ok := m.records[key]; ok {
		return pkgerrors.ErrDuplicateKey
	}
	record.AttendanceID = fmt.Sprintf("att-%d", len(m.records)+1)
	cp := *record
	m.records[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) GetByUserAndDate(_ context.Context, userID, date string) (*model.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[attendanceKey(userID, date)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
