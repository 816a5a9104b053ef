package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	err  error
	last *sns.PublishInput
}

func (c *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	c.last = params
	if c.err != nil {
		return nil, c.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSNSSenderSend(t *testing.T) {
	client := &fakeSNSClient{}
	sender := &awsSNSSender{
		topicARN: "arn:aws:sns:ap-south-1:123:harvest",
		client:   client,
		log:      ensureLogger(nil),
	}

	if err := sender.Send(context.Background(), testEvent()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if client.last == nil {
		t.Fatal("no message published")
	}
	if aws.ToString(client.last.TopicArn) != "arn:aws:sns:ap-south-1:123:harvest" {
		t.Errorf("TopicArn = %q", aws.ToString(client.last.TopicArn))
	}
	attr, ok := client.last.MessageAttributes["timeframe"]
	if !ok {
		t.Fatal("timeframe attribute missing")
	}
	if aws.ToString(attr.StringValue) != "7d" {
		t.Errorf("timeframe attribute = %q", aws.ToString(attr.StringValue))
	}
}

func TestSNSSenderSendError(t *testing.T) {
	sender := &awsSNSSender{
		topicARN: "arn:aws:sns:ap-south-1:123:harvest",
		client:   &fakeSNSClient{err: errors.New("denied")},
		log:      ensureLogger(nil),
	}
	if err := sender.Send(context.Background(), testEvent()); err == nil {
		t.Error("client error should propagate")
	}
}
