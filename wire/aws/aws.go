// Package aws provides an AWS SNS/SQS wire backend. Each topic becomes an
// SNS topic fanned out to per-subscriber SQS queues; a custom endpoint
// (LocalStack) is supported for local development.
package aws

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-aws/sns"
	"github.com/ThreeDotsLabs/watermill-aws/sqs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	amazonsns "github.com/aws/aws-sdk-go-v2/service/sns"
	amazonsqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	smithyendpoints "github.com/aws/smithy-go/endpoints"

	"github.com/drblury/frameflow/wire"
)

// BackendName is the name used to register this backend.
const BackendName = "aws"

const (
	localstackAccountID = "000000000000"
	awsAccountIDLength  = 12
)

// DefaultConfigLoader allows overriding the AWS config loader for testing.
var DefaultConfigLoader = awsconfig.LoadDefaultConfig

// TopicResolverFactory allows overriding the topic resolver creation for testing.
var TopicResolverFactory = sns.NewGenerateArnTopicResolver

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg sns.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return sns.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg sns.SubscriberConfig, sqsCfg sqs.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return sns.NewSubscriber(cfg, sqsCfg, logger)
}

func init() {
	wire.RegisterWithCapabilities(BackendName, Build, wire.AWSCapabilities)
}

// Build creates new AWS SNS/SQS endpoints.
func Build(ctx context.Context, cfg wire.Config, logger watermill.LoggerAdapter) (wire.Endpoints, error) {
	awsCfg, err := createAWSConfig(ctx, cfg, logger)
	if err != nil {
		return wire.Endpoints{}, err
	}

	publisher, err := createPublisher(cfg, logger, awsCfg)
	if err != nil {
		return wire.Endpoints{}, err
	}

	subscriber, err := createSubscriber(cfg, logger, awsCfg)
	if err != nil {
		return wire.Endpoints{}, err
	}

	return wire.Endpoints{
		Publisher:  publisher,
		Subscriber: subscriber,
	}, nil
}

// Capabilities returns the capabilities of this backend.
func Capabilities() wire.Capabilities {
	return wire.AWSCapabilities
}

func createAWSConfig(ctx context.Context, cfg wire.Config, logger watermill.LoggerAdapter) (*aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if region := cfg.GetAWSRegion(); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if cfg.GetAWSAccessKeyID() != "" && cfg.GetAWSSecretAccessKey() != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			staticCredentialsProvider(cfg.GetAWSAccessKeyID(), cfg.GetAWSSecretAccessKey())))
	}

	awsCfg, err := DefaultConfigLoader(ctx, opts...)
	if err != nil {
		logger.Error("Failed to load AWS default config", err, nil)
		return nil, err
	}

	// Ensure region is set even if the loader ignores options
	if region := cfg.GetAWSRegion(); region != "" {
		awsCfg.Region = region
	}
	if endpoint := cfg.GetAWSEndpoint(); endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(endpoint)
	}

	return &awsCfg, nil
}

func createPublisher(cfg wire.Config, logger watermill.LoggerAdapter, awsCfg *aws.Config) (message.Publisher, error) {
	accountID, region := resolveAccountAndRegion(cfg, logger, awsCfg.Region)

	topicResolver, err := TopicResolverFactory(accountID, region)
	if err != nil {
		logger.Error("Failed to create SNS topic resolver", err, watermill.LogFields{
			"accountID": accountID,
			"region":    region,
		})
		return nil, err
	}

	publisherConfig := sns.PublisherConfig{
		TopicResolver: topicResolver,
		AWSConfig:     *awsCfg,
		Marshaler:     sns.DefaultMarshalerUnmarshaler{},
	}
	if endpoint := cfg.GetAWSEndpoint(); endpoint != "" {
		publisherConfig.OptFns = []func(*amazonsns.Options){
			func(o *amazonsns.Options) {
				o.BaseEndpoint = aws.String(endpoint)
			},
		}
	}

	return PublisherFactory(publisherConfig, logger)
}

func createSubscriber(cfg wire.Config, logger watermill.LoggerAdapter, awsCfg *aws.Config) (message.Subscriber, error) {
	accountID, region := resolveAccountAndRegion(cfg, logger, awsCfg.Region)

	topicResolver, err := TopicResolverFactory(accountID, region)
	if err != nil {
		return nil, err
	}

	snsOpts, sqsOpts, err := endpointOverrides(cfg)
	if err != nil {
		return nil, err
	}

	subscriberConfig := sns.SubscriberConfig{
		AWSConfig:     *awsCfg,
		OptFns:        snsOpts,
		TopicResolver: topicResolver,
		GenerateSqsQueueName: func(ctx context.Context, snsTopic sns.TopicArn) (string, error) {
			topic, err := sns.ExtractTopicNameFromTopicArn(snsTopic)
			if err != nil {
				return "", err
			}
			return string(topic), nil
		},
	}

	return SubscriberFactory(
		subscriberConfig,
		sqs.SubscriberConfig{
			AWSConfig: *awsCfg,
			OptFns:    sqsOpts,
		},
		logger,
	)
}

func endpointOverrides(cfg wire.Config) ([]func(*amazonsns.Options), []func(*amazonsqs.Options), error) {
	endpoint := cfg.GetAWSEndpoint()
	if endpoint == "" {
		return nil, nil, nil
	}

	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse AWS endpoint: %w", err)
	}

	snsOpts := []func(*amazonsns.Options){
		amazonsns.WithEndpointResolverV2(sns.OverrideEndpointResolver{
			Endpoint: smithyendpoints.Endpoint{URI: *parsedURL},
		}),
	}
	sqsOpts := []func(*amazonsqs.Options){
		amazonsqs.WithEndpointResolverV2(sqs.OverrideEndpointResolver{
			Endpoint: smithyendpoints.Endpoint{URI: *parsedURL},
		}),
	}
	return snsOpts, sqsOpts, nil
}

func resolveAccountAndRegion(cfg wire.Config, logger watermill.LoggerAdapter, fallbackRegion string) (string, string) {
	accountID := strings.Trim(cfg.GetAWSAccountID(), "\"' ")
	region := cfg.GetAWSRegion()
	if region == "" {
		region = fallbackRegion
	}

	// LocalStack accepts the well-known all-zero account.
	if cfg.GetAWSEndpoint() != "" && (accountID == "" || len(accountID) != awsAccountIDLength) {
		if accountID != "" {
			logger.Info("Invalid AWS account ID; falling back to LocalStack default", watermill.LogFields{"accountID": accountID})
		}
		accountID = localstackAccountID
	}

	return accountID, region
}

func staticCredentialsProvider(accessKeyID, secretAccessKey string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secretAccessKey,
		}, nil
	})
}
