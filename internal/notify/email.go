// Package notify delivers report emails and desk alerts. Every send is
// best-effort from the caller's perspective; failures are returned as
// notification errors and the caller decides whether they matter.
package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	awsclients "readiness-service/internal/common/aws"
	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
)

// RawEmailSender is the SES surface used for attachment emails.
type RawEmailSender interface {
	SendRawEmail(ctx context.Context, input *ses.SendRawEmailInput) (*ses.SendRawEmailOutput, error)
}

var _ RawEmailSender = (*awsclients.SESClient)(nil)

// EmailSender mails finished report artifacts to students.
type EmailSender struct {
	ses  RawEmailSender
	from string
	log  logger.Logger
}

// NewEmailSender builds a sender using the given verified from address.
func NewEmailSender(sesClient RawEmailSender, from string, log logger.Logger) *EmailSender {
	return &EmailSender{ses: sesClient, from: from, log: log}
}

// SendReport mails the report artifact as an attachment. The body carries a
// short note; the artifact filename and content type come from the caller so
// HTML fallback artifacts ship the same way PDFs do.
func (s *EmailSender) SendReport(ctx context.Context, to, studentName, filename, contentType string, artifact []byte) error {
	if s.ses == nil {
		return apperrors.NewNotificationSendFailedError("email", fmt.Errorf("email sender is not configured"))
	}
	if strings.TrimSpace(to) == "" {
		return apperrors.NewNotificationSendFailedError("email", fmt.Errorf("recipient address is empty"))
	}

	raw, err := buildRawMessage(s.from, to, studentName, filename, contentType, artifact)
	if err != nil {
		return apperrors.NewNotificationSendFailedError("email", err)
	}

	_, err = s.ses.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage:   &sestypes.RawMessage{Data: raw},
		Source:       &s.from,
		Destinations: []string{to},
	})
	if err != nil {
		return apperrors.NewNotificationSendFailedError("email", err)
	}

	s.log.Info("report email sent", map[string]interface{}{
		"to":       to,
		"filename": filename,
	})
	return nil
}

// buildRawMessage assembles the multipart MIME message SES expects for
// attachment sends.
func buildRawMessage(from, to, studentName, filename, contentType string, artifact []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: Your Study Abroad Readiness Report\r\n")
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", writer.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	body, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	fmt.Fprintf(body, "Dear %s,\r\n\r\nYour study abroad readiness report is attached.\r\n\r\nWarm regards,\r\nD-Vivid Consultant\r\n", studentName)

	attachment, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment part: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(artifact)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := attachment.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return nil, fmt.Errorf("failed to write attachment: %w", err)
		}
		encoded = encoded[n:]
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize message: %w", err)
	}
	return buf.Bytes(), nil
}
