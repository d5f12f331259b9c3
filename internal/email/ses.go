package email

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/devfinds/devfinds/internal/queue"
)

// sesAPI is the part of the SES client the sender uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender delivers queued jobs through AWS SES
type SESSender struct {
	client      sesAPI
	defaultFrom string
}

var _ queue.Sender = (*SESSender)(nil)

// NewSESSender loads the default AWS credential chain for region
func NewSESSender(region, defaultFrom string) (*SESSender, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESSender{
		client:      ses.NewFromConfig(cfg),
		defaultFrom: defaultFrom,
	}, nil
}

// Send delivers job as a plain-text e-mail
func (s *SESSender) Send(ctx context.Context, job queue.EmailJob) error {
	from := job.From
	if from == "" {
		from = s.defaultFrom
	}

	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{job.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(job.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(job.Body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email %s: %w", job.ID, err)
	}
	return nil
}
