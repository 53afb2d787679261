package database

import (
	"context"
	"testing"

	"remodel_calc/internal/config"
)

func TestNewAWSConfig(t *testing.T) {
	cfg := config.Config{AWSRegion: "sa-east-1", AWSAccessKeyID: "local", AWSSecretAccessKey: "secret"}

	awsCfg, err := NewAWSConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awsCfg.Region != "sa-east-1" {
		t.Fatalf("expected region sa-east-1, got %q", awsCfg.Region)
	}
	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve credentials: %v", err)
	}
	if creds.AccessKeyID != "local" || creds.SecretAccessKey != "secret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestConnectDynamoDB_Endpoint(t *testing.T) {
	cfg := config.Config{AWSRegion: "us-east-1", AWSAccessKeyID: "local", AWSSecretAccessKey: "local", DynamoDBEndpoint: "http://localhost:8000"}

	client, err := ConnectDynamoDB(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ep := client.Options().BaseEndpoint; ep == nil || *ep != "http://localhost:8000" {
		t.Fatalf("expected local endpoint, got %v", ep)
	}
}
