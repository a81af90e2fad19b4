package leads

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	apperrors "readiness-service/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func leadColumns() []string {
	return []string{"id", "name", "email", "phone", "overall_score", "band", "source", "created_at", "updated_at"}
}

func TestUpsertCreatesNewLead(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(findByContactQuery).
		WithArgs("asha@example.com", "").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectExec(insertQuery).
		WithArgs(sqlmock.AnyArg(), "Asha Patel", "asha@example.com", "", 75, "Good", "assessment", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := repo.Upsert(context.Background(), Lead{
		Name:         "Asha Patel",
		Email:        "asha@example.com",
		OverallScore: 75,
		Band:         "Good",
		Source:       "assessment",
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.False(t, result.Updated)
	assert.NotEmpty(t, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMergesExistingLead(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	// Same email resubmitted with a phone number: the stored record gains the
	// phone instead of a second lead being created.
	mock.ExpectQuery(findByContactQuery).
		WithArgs("asha@example.com", "+91 98765 43210").
		WillReturnRows(sqlmock.NewRows(leadColumns()).
			AddRow("lead-1", "Asha Patel", "asha@example.com", "", 70, "Good", "assessment", now, now))

	mock.ExpectExec(updateQuery).
		WithArgs("lead-1", "Asha Patel", "asha@example.com", "+91 98765 43210", 75, "Good", "assessment", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := repo.Upsert(context.Background(), Lead{
		Name:         "Asha Patel",
		Email:        "asha@example.com",
		Phone:        "+91 98765 43210",
		OverallScore: 75,
		Band:         "Good",
		Source:       "assessment",
	})
	require.NoError(t, err)

	assert.True(t, result.Updated)
	assert.False(t, result.Created)
	assert.Equal(t, "lead-1", result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMatchesByPhoneAlone(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(findByContactQuery).
		WithArgs("", "+91 98765 43210").
		WillReturnRows(sqlmock.NewRows(leadColumns()).
			AddRow("lead-2", "Rohan", "", "+91 98765 43210", 0, "", "manual", now, now))

	mock.ExpectExec(updateQuery).
		WithArgs("lead-2", "Rohan Mehta", "", "+91 98765 43210", 0, "", "manual", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := repo.Upsert(context.Background(), Lead{
		Name:  "Rohan Mehta",
		Phone: "+91 98765 43210",
	})
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertKeepsExistingFieldsWhenIncomingEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(findByContactQuery).
		WithArgs("asha@example.com", "").
		WillReturnRows(sqlmock.NewRows(leadColumns()).
			AddRow("lead-1", "Asha Patel", "asha@example.com", "+91 98765 43210", 75, "Good", "assessment", now, now))

	// Incoming empty phone/band/score do not erase the stored values.
	mock.ExpectExec(updateQuery).
		WithArgs("lead-1", "Asha Patel", "asha@example.com", "+91 98765 43210", 75, "Good", "assessment", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := repo.Upsert(context.Background(), Lead{
		Name:  "Asha Patel",
		Email: "asha@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSurfacesStoreFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(findByContactQuery).
		WithArgs("asha@example.com", "").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Upsert(context.Background(), Lead{Email: "asha@example.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePersistenceFailure))
}

func TestUpsertSurfacesInsertFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(findByContactQuery).
		WithArgs("asha@example.com", "").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(insertQuery).
		WillReturnError(errors.New("disk full"))

	_, err := repo.Upsert(context.Background(), Lead{Name: "Asha", Email: "asha@example.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePersistenceFailure))
}

func TestFindByContactNoMatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(findByContactQuery).
		WithArgs("missing@example.com", "").
		WillReturnError(sql.ErrNoRows)

	lead, err := repo.FindByContact(context.Background(), "missing@example.com", "")
	require.NoError(t, err)
	assert.Nil(t, lead)
}
