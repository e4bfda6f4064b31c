package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/campusmate/reminder-api/internal/models"
)

func newAdvisingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func advisingColumns() []string {
	return []string{"id", "user_id", "semester_key", "date", "start_time", "updated_at"}
}

func TestAdvisingRepositoryUpsertNewSlot(t *testing.T) {
	db, mock, cleanup := newAdvisingRepoMock(t)
	defer cleanup()

	repo := NewAdvisingRepository(db)
	// No existing row: slot gets a fresh id and the upsert runs.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, semester_key")).
		WithArgs("u1", "spring-2026").
		WillReturnRows(sqlmock.NewRows(advisingColumns()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO advising_slots")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	slot := &models.AdvisingSlot{UserID: "u1", SemesterKey: "spring-2026", Date: "10 March 2026", StartTime: "09:00 AM"}
	changed, err := repo.Upsert(context.Background(), slot)
	require.NoError(t, err)
	require.True(t, changed)
	require.NotEmpty(t, slot.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisingRepositoryUpsertIdenticalSlotIsUnchanged(t *testing.T) {
	db, mock, cleanup := newAdvisingRepoMock(t)
	defer cleanup()

	repo := NewAdvisingRepository(db)
	rows := sqlmock.NewRows(advisingColumns()).
		AddRow("slot-1", "u1", "spring-2026", "10 March 2026", "09:00 AM", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, semester_key")).
		WithArgs("u1", "spring-2026").
		WillReturnRows(rows)

	slot := &models.AdvisingSlot{UserID: "u1", SemesterKey: "spring-2026", Date: "10 March 2026", StartTime: "09:00 AM"}
	changed, err := repo.Upsert(context.Background(), slot)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "slot-1", slot.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisingRepositoryUpsertReplacesDifferentSlot(t *testing.T) {
	db, mock, cleanup := newAdvisingRepoMock(t)
	defer cleanup()

	repo := NewAdvisingRepository(db)
	rows := sqlmock.NewRows(advisingColumns()).
		AddRow("slot-1", "u1", "spring-2026", "10 March 2026", "09:00 AM", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, semester_key")).
		WithArgs("u1", "spring-2026").
		WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO advising_slots")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	slot := &models.AdvisingSlot{UserID: "u1", SemesterKey: "spring-2026", Date: "12 March 2026", StartTime: "11:00 AM"}
	changed, err := repo.Upsert(context.Background(), slot)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "slot-1", slot.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisingRepositoryGetByUserMissing(t *testing.T) {
	db, mock, cleanup := newAdvisingRepoMock(t)
	defer cleanup()

	repo := NewAdvisingRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, semester_key")).
		WithArgs("u1", "spring-2026").
		WillReturnRows(sqlmock.NewRows(advisingColumns()))

	slot, err := repo.GetByUser(context.Background(), "u1", "spring-2026")
	require.NoError(t, err)
	require.Nil(t, slot)
	require.NoError(t, mock.ExpectationsWereMet())
}
