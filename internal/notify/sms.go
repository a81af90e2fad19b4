package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	awsclients "readiness-service/internal/common/aws"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/leads"
)

// SMSPublisher is the SNS surface used for desk alerts.
type SMSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

var _ SMSPublisher = (*awsclients.SNSClient)(nil)

// DeskNotifier texts the counseling desk when a new lead lands. It implements
// leads.Notifier; delivery failures are logged and never surfaced, a missed
// text is not worth failing a captured lead over.
type DeskNotifier struct {
	sns        SMSPublisher
	deskNumber string
	senderID   string
	log        logger.Logger
}

var _ leads.Notifier = (*DeskNotifier)(nil)

// NewDeskNotifier builds a notifier for the given desk number in E.164 form.
func NewDeskNotifier(snsClient SMSPublisher, deskNumber, senderID string, log logger.Logger) *DeskNotifier {
	return &DeskNotifier{sns: snsClient, deskNumber: deskNumber, senderID: senderID, log: log}
}

// NotifyLeadCaptured sends a short summary of the new lead to the desk.
func (n *DeskNotifier) NotifyLeadCaptured(ctx context.Context, lead leads.Lead) {
	if n.sns == nil || n.deskNumber == "" {
		return
	}

	contact := lead.Email
	if contact == "" {
		contact = lead.Phone
	}
	message := fmt.Sprintf("New lead: %s (%s), readiness %d (%s)", lead.Name, contact, lead.OverallScore, lead.Band)

	input := &sns.PublishInput{
		PhoneNumber: aws.String(n.deskNumber),
		Message:     aws.String(message),
	}
	if n.senderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.senderID),
			},
		}
	}

	if _, err := n.sns.Publish(ctx, input); err != nil {
		n.log.Warn("desk sms failed", map[string]interface{}{
			"leadId": lead.ID,
			"error":  err.Error(),
		})
		return
	}

	n.log.Info("desk sms sent", map[string]interface{}{"leadId": lead.ID})
}
