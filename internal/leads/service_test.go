package leads

import (
	"context"
	"database/sql"
	"testing"
	"time"

	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	leads []Lead
}

func (n *recordingNotifier) NotifyLeadCaptured(ctx context.Context, lead Lead) {
	n.leads = append(n.leads, lead)
}

type recordingPublisher struct {
	messages []string
	keys     []string
	err      error
}

func (p *recordingPublisher) PublishMessage(ctx context.Context, name, correlationKey string, variables map[string]interface{}) error {
	p.messages = append(p.messages, name)
	p.keys = append(p.keys, correlationKey)
	return p.err
}

func newCaptureService(t *testing.T, mockSetup func(sqlmock.Sqlmock)) (*Service, *recordingNotifier, *recordingPublisher) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mockSetup(mock)

	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	svc := NewService(NewRepository(db), ServiceOptions{
		Notifier: notifier,
		Workflow: publisher,
	}, logger.NewTestLogger(t))
	return svc, notifier, publisher
}

func TestCaptureNewLeadFansOut(t *testing.T) {
	svc, notifier, publisher := newCaptureService(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(findByContactQuery).WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	})

	result, err := svc.Capture(context.Background(), Lead{
		Name:  "Asha Patel",
		Email: "Asha@Example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	require.Len(t, notifier.leads, 1)
	assert.Equal(t, "asha@example.com", notifier.leads[0].Email)
	assert.Equal(t, []string{"lead-captured"}, publisher.messages)
	assert.Equal(t, []string{result.ID}, publisher.keys)
}

func TestCaptureUpdateSkipsNewLeadFanOut(t *testing.T) {
	svc, notifier, publisher := newCaptureService(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(findByContactQuery).
			WillReturnRows(sqlmock.NewRows(leadColumns()).
				AddRow("lead-1", "Asha Patel", "asha@example.com", "", 0, "", "", time.Now(), time.Now()))
		mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	})

	result, err := svc.Capture(context.Background(), Lead{
		Name:  "Asha Patel",
		Email: "asha@example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.Updated)
	assert.Empty(t, notifier.leads)
	assert.Empty(t, publisher.messages)
}

func TestCaptureRequiresContact(t *testing.T) {
	svc, _, _ := newCaptureService(t, func(mock sqlmock.Sqlmock) {})

	_, err := svc.Capture(context.Background(), Lead{Name: "Asha Patel"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}

func TestCaptureRejectsBadContact(t *testing.T) {
	svc, _, _ := newCaptureService(t, func(mock sqlmock.Sqlmock) {})

	_, err := svc.Capture(context.Background(), Lead{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	_, err = svc.Capture(context.Background(), Lead{Phone: "call-me"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}

func TestCaptureSurfacesPersistenceFailure(t *testing.T) {
	svc, notifier, publisher := newCaptureService(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(findByContactQuery).WillReturnError(sql.ErrConnDone)
	})

	_, err := svc.Capture(context.Background(), Lead{Email: "asha@example.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePersistenceFailure))
	assert.Empty(t, notifier.leads)
	assert.Empty(t, publisher.messages)
}

func TestCaptureSucceedsWhenWorkflowFails(t *testing.T) {
	svc, _, publisher := newCaptureService(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(findByContactQuery).WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	})
	publisher.err = apperrors.NewWorkflowPublishFailedError(sql.ErrConnDone)

	result, err := svc.Capture(context.Background(), Lead{Email: "asha@example.com", Name: "Asha"})
	require.NoError(t, err)
	assert.True(t, result.Created)
}

func TestSearchRequiresQuery(t *testing.T) {
	svc, _, _ := newCaptureService(t, func(mock sqlmock.Sqlmock) {})

	_, err := svc.Search(context.Background(), "  ", 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}
