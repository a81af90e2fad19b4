package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/leads"
)

type stubSES struct {
	inputs []*ses.SendRawEmailInput
	err    error
}

func (s *stubSES) SendRawEmail(ctx context.Context, input *ses.SendRawEmailInput) (*ses.SendRawEmailOutput, error) {
	s.inputs = append(s.inputs, input)
	return &ses.SendRawEmailOutput{}, s.err
}

type stubSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (s *stubSNS) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	s.inputs = append(s.inputs, input)
	return &sns.PublishOutput{}, s.err
}

func TestSendReportBuildsMultipartMessage(t *testing.T) {
	sesStub := &stubSES{}
	sender := NewEmailSender(sesStub, "reports@dvivid.example", logger.NewTestLogger(t))

	err := sender.SendReport(context.Background(), "asha@example.com", "Asha Patel",
		"study-abroad-report-asha-patel.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	require.Len(t, sesStub.inputs, 1)
	input := sesStub.inputs[0]
	assert.Equal(t, "reports@dvivid.example", *input.Source)
	assert.Equal(t, []string{"asha@example.com"}, input.Destinations)

	raw := string(input.RawMessage.Data)
	assert.Contains(t, raw, "Subject: Your Study Abroad Readiness Report")
	assert.Contains(t, raw, "multipart/mixed")
	assert.Contains(t, raw, `attachment; filename="study-abroad-report-asha-patel.pdf"`)
	assert.Contains(t, raw, "Dear Asha Patel")
	assert.Contains(t, raw, "application/pdf")
}

func TestSendReportSurfacesFailure(t *testing.T) {
	sender := NewEmailSender(&stubSES{err: errors.New("throttled")}, "reports@dvivid.example", logger.NewTestLogger(t))

	err := sender.SendReport(context.Background(), "asha@example.com", "Asha", "r.pdf", "application/pdf", []byte("x"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotificationSendFailed))
}

func TestSendReportRequiresRecipient(t *testing.T) {
	sender := NewEmailSender(&stubSES{}, "reports@dvivid.example", logger.NewTestLogger(t))

	err := sender.SendReport(context.Background(), "  ", "Asha", "r.pdf", "application/pdf", []byte("x"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotificationSendFailed))
}

func TestNotifyLeadCaptured(t *testing.T) {
	snsStub := &stubSNS{}
	notifier := NewDeskNotifier(snsStub, "+911234567890", "DVIVID", logger.NewTestLogger(t))

	notifier.NotifyLeadCaptured(context.Background(), leads.Lead{
		ID:           "lead-1",
		Name:         "Asha Patel",
		Email:        "asha@example.com",
		OverallScore: 75,
		Band:         "Good",
	})

	require.Len(t, snsStub.inputs, 1)
	input := snsStub.inputs[0]
	assert.Equal(t, "+911234567890", *input.PhoneNumber)
	assert.True(t, strings.Contains(*input.Message, "Asha Patel"))
	assert.True(t, strings.Contains(*input.Message, "asha@example.com"))
	assert.Equal(t, "DVIVID", *input.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue)
}

func TestNotifyLeadCapturedSwallowsFailure(t *testing.T) {
	snsStub := &stubSNS{err: errors.New("sms quota exceeded")}
	notifier := NewDeskNotifier(snsStub, "+911234567890", "", logger.NewTestLogger(t))

	// Must not panic or surface the error.
	notifier.NotifyLeadCaptured(context.Background(), leads.Lead{ID: "lead-1", Name: "Asha"})
	assert.Len(t, snsStub.inputs, 1)
}

func TestNotifyLeadCapturedSkipsWhenUnconfigured(t *testing.T) {
	snsStub := &stubSNS{}
	notifier := NewDeskNotifier(snsStub, "", "", logger.NewTestLogger(t))

	notifier.NotifyLeadCaptured(context.Background(), leads.Lead{ID: "lead-1"})
	assert.Empty(t, snsStub.inputs)
}
