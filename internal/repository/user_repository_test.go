package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func userColumns() []string {
	return []string{"id", "name", "delivery_token", "weekly_timetable", "created_at", "updated_at"}
}

const timetableJSON = `{"Tuesday":[{"title":"Intro to Programming","courseCode":"CSE110","startTime":"09:30 AM","endTime":"10:50 AM","room":"UB201"}]}`

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	rows := sqlmock.NewRows(userColumns()).
		AddRow("u1", "Rafi", "tok-1", []byte(timetableJSON), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, delivery_token, weekly_timetable")).
		WithArgs("u1").
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, user.Reachable())
	require.Len(t, user.WeeklyTimetable["Tuesday"], 1)
	require.Equal(t, "CSE110", user.WeeklyTimetable["Tuesday"][0].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, delivery_token, weekly_timetable")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	rows := sqlmock.NewRows(userColumns()).
		AddRow("u1", "Rafi", "tok-1", []byte(timetableJSON), time.Now(), time.Now()).
		AddRow("u2", "Mira", nil, []byte(`{}`), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, delivery_token, weekly_timetable")).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.True(t, users[0].Reachable())
	require.False(t, users[1].Reachable())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateTimetableNotFound(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET weekly_timetable")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTimetable(context.Background(), "missing", nil)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
