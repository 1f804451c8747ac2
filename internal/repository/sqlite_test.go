package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/muhammad-yeasin/wave2-attendance/internal/model"
	"github.com/muhammad-yeasin/wave2-attendance/internal/repository"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/database"
	pkgerrors "github.com/muhammad-yeasin/wave2-attendance/pkg/errors"
)

func setupSQLite(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps concurrent writers serialized on the same memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Attendance{}))

	return repository.NewRepository(database.Static(db))
}

func seedUser(t *testing.T, repo *repository.Repository, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test Learner", Email: email}
	require.NoError(t, repo.User.Create(context.Background(), user))
	require.NotEmpty(t, user.UserID)
	return user
}

func newRecord(userID, date string) *model.Attendance {
	return &model.Attendance{
		UserID:          userID,
		ModuleNumber:    3,
		MilestoneNumber: 1,
		StudyHours:      2.5,
		LearningSummary: "closures and goroutines",
		AttendanceDate:  date,
		AttendanceTime:  "21:15:00",
	}
}

// ── User directory ──

func TestUserRepo_CreateNormalizesEmail(t *testing.T) {
	repo := setupSQLite(t)
	user := seedUser(t, repo, "  User@Example.com ")

	assert.Equal(t, "user@example.com", user.Email)
}

func TestUserRepo_GetByEmail_CaseInsensitive(t *testing.T) {
	repo := setupSQLite(t)
	seeded := seedUser(t, repo, "user@example.com")

	got, err := repo.User.GetByEmail(context.Background(), "User@Example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.UserID, got.UserID)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	repo := setupSQLite(t)

	_, err := repo.User.GetByEmail(context.Background(), "missing@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	repo := setupSQLite(t)
	seedUser(t, repo, "dup@example.com")

	err := repo.User.Create(context.Background(), &model.User{Name: "Other", Email: "DUP@example.com"})
	assert.ErrorIs(t, err, pkgerrors.ErrDuplicateKey)
}

func TestUserRepo_UpdateWhatsappNumber(t *testing.T) {
	repo := setupSQLite(t)
	user := seedUser(t, repo, "wa@example.com")

	updated, err := repo.User.UpdateWhatsappNumber(context.Background(), user.UserID, "01712345678")
	require.NoError(t, err)
	require.NotNil(t, updated.WhatsappNumber)
	assert.Equal(t, "01712345678", *updated.WhatsappNumber)
	assert.True(t, updated.HasWhatsapp())
}

func TestUserRepo_UpdateWhatsappNumber_NotFound(t *testing.T) {
	repo := setupSQLite(t)

	_, err := repo.User.UpdateWhatsappNumber(context.Background(), "00000000-0000-0000-0000-000000000000", "01712345678")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepo_RecordProgress(t *testing.T) {
	repo := setupSQLite(t)
	user := seedUser(t, repo, "progress@example.com")
	at := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	require.NoError(t, repo.User.RecordProgress(context.Background(), user.UserID, 4, 2, at))

	got, err := repo.User.GetByID(context.Background(), user.UserID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentModuleNumber)
	require.NotNil(t, got.CurrentMilestoneNumber)
	require.NotNil(t, got.LastAttendanceAt)
	assert.Equal(t, 4, *got.CurrentModuleNumber)
	assert.Equal(t, 2, *got.CurrentMilestoneNumber)
	assert.True(t, got.LastAttendanceAt.Equal(at))
}

func TestUserRepo_Upsert(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	created, err := repo.User.Upsert(ctx, &model.User{Name: "First", Email: "roster@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	again := &model.User{Name: "Renamed", Email: "Roster@Example.com"}
	created, err = repo.User.Upsert(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.User.GetByEmail(ctx, "roster@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, got.UserID, again.UserID)
}

// ── Attendance ledger ──

func TestAttendanceRepo_CreateAndExists(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	user := seedUser(t, repo, "ledger@example.com")

	exists, err := repo.Attendance.Exists(ctx, user.UserID, "2024-05-10")
	require.NoError(t, err)
	assert.False(t, exists)

	record := newRecord(user.UserID, "2024-05-10")
	require.NoError(t, repo.Attendance.Create(ctx, record))
	assert.NotEmpty(t, record.AttendanceID)

	exists, err = repo.Attendance.Exists(ctx, user.UserID, "2024-05-10")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Attendance.Exists(ctx, user.UserID, "2024-05-11")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAttendanceRepo_Create_DuplicateDay(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	user := seedUser(t, repo, "twice@example.com")

	first := newRecord(user.UserID, "2024-05-10")
	require.NoError(t, repo.Attendance.Create(ctx, first))

	second := newRecord(user.UserID, "2024-05-10")
	second.LearningSummary = "a different summary"
	err := repo.Attendance.Create(ctx, second)
	assert.ErrorIs(t, err, pkgerrors.ErrDuplicateKey)

	stored, err := repo.Attendance.GetByUserAndDate(ctx, user.UserID, "2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, first.AttendanceID, stored.AttendanceID)
	assert.Equal(t, "closures and goroutines", stored.LearningSummary)
}

func TestAttendanceRepo_SameDayDifferentUsers(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	a := seedUser(t, repo, "a@example.com")
	b := seedUser(t, repo, "b@example.com")

	require.NoError(t, repo.Attendance.Create(ctx, newRecord(a.UserID, "2024-05-10")))
	require.NoError(t, repo.Attendance.Create(ctx, newRecord(b.UserID, "2024-05-10")))
}

func TestAttendanceRepo_ConcurrentCreate_ExactlyOneWins(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	user := seedUser(t, repo, "race@example.com")

	const attempts = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
		others     []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Attendance.Create(ctx, newRecord(user.UserID, "2024-05-10"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, pkgerrors.ErrDuplicateKey):
				duplicates++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)
}
