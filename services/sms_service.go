package services

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

type SMSService struct {
	sns *awssns.Client
}

func NewSMSService() (*SMSService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SMSService{sns: awssns.NewFromConfig(cfg)}, nil
}

// SendOTP delivers a login code to a phone number via SNS.
func (s *SMSService) SendOTP(phone, code string) error {
	msg := fmt.Sprintf("Your NutriChat login code is: %s", code)
	_, err := s.sns.Publish(context.TODO(), &awssns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(msg),
	})
	return err
}
