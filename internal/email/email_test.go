package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, f.err
}

func TestSESSenderBuildsMessage(t *testing.T) {
	client := &fakeSES{}
	sender := &SESSender{client: client, defaultFrom: "no-reply@devfinds.dev"}

	job := queue.NewEmailJob("", "ada@example.com", "Hello", "Body text")
	require.NoError(t, sender.Send(context.Background(), job))

	require.NotNil(t, client.input)
	assert.Equal(t, "no-reply@devfinds.dev", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ada@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(client.input.Message.Subject.Data))
	assert.Equal(t, "Body text", aws.ToString(client.input.Message.Body.Text.Data))
}

func TestSESSenderWrapsErrors(t *testing.T) {
	sender := &SESSender{client: &fakeSES{err: errors.New("throttled")}}
	err := sender.Send(context.Background(), queue.NewEmailJob("a@x", "b@x", "s", "b"))
	assert.ErrorContains(t, err, "throttled")
}

type failingQueue struct{}

func (failingQueue) Enqueue(ctx context.Context, job queue.EmailJob) error {
	return errors.New("redis down")
}

func TestNotifierEnqueuesJobs(t *testing.T) {
	ctx := context.Background()
	q := queue.NewMemoryQueue(10)
	n := NewNotifier(q, "no-reply@devfinds.dev")

	ada := &models.User{Name: "Ada", Email: "ada@example.com"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com"}

	n.Welcome(ctx, ada)
	n.FriendRequest(ctx, ada, bob)
	n.RequestAccepted(ctx, bob, ada)

	want := []string{"ada@example.com", "bob@example.com", "ada@example.com"}
	for _, to := range want {
		job, err := q.Dequeue(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, to, job.To)
		assert.Equal(t, "no-reply@devfinds.dev", job.From)
	}
}

func TestNotifierSwallowsEnqueueFailures(t *testing.T) {
	n := NewNotifier(failingQueue{}, "no-reply@devfinds.dev")
	assert.NotPanics(t, func() {
		n.Welcome(context.Background(), &models.User{Name: "Ada", Email: "ada@example.com"})
	})

	var nilNotifier *Notifier
	assert.NotPanics(t, func() {
		nilNotifier.Welcome(context.Background(), &models.User{Email: "ada@example.com"})
	})
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), queue.NewEmailJob("a", "b", "c", "d")))
}
