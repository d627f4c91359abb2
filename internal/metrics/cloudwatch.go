package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const cloudwatchTimeoutSeconds = 5

// Client wraps a CloudWatch client for the corpus/rendering metrics.
// It is a no-op outside of production, matching the teacher's
// environment-gated behaviour.
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
	namespace   string
}

// NewClient creates a new CloudWatch metrics client, enabled only when
// environment == "production".
func NewClient(ctx context.Context, environment, namespace string) (*Client, error) {
	if environment != "production" {
		log.Printf("CloudWatch metrics: disabled (environment: %s)", environment)
		return &Client{enabled: false, environment: environment, namespace: namespace}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("CloudWatch metrics: enabled (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
		namespace:   namespace,
	}, nil
}

// RecordRenderLatency records how long a tune took to run through
// abc_to_ast + ast_to_svg.
func (m *Client) RecordRenderLatency(duration time.Duration) {
	if !m.enabled {
		return
	}
	go func() {
		dims := m.envDimensions()
		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(context.Background(), "RenderLatencyMs", latencyMs, types.StandardUnitMilliseconds, dims); err != nil {
			log.Printf("failed to record RenderLatencyMs metric: %v", err)
		}
	}()
}

// RecordLexErrors records how many lexical errors a tune's source
// produced.
func (m *Client) RecordLexErrors(count int) {
	if !m.enabled {
		return
	}
	go func() {
		dims := m.envDimensions()
		if err := m.putMetric(context.Background(), "LexErrorCount", float64(count), types.StandardUnitCount, dims); err != nil {
			log.Printf("failed to record LexErrorCount metric: %v", err)
		}
	}()
}

// RecordCorpusSize records the total number of tunes currently held by
// the tune cache, typically called after a reindex.
func (m *Client) RecordCorpusSize(size int) {
	if !m.enabled {
		return
	}
	go func() {
		dims := m.envDimensions()
		if err := m.putMetric(context.Background(), "CorpusSize", float64(size), types.StandardUnitCount, dims); err != nil {
			log.Printf("failed to record CorpusSize metric: %v", err)
		}
	}()
}

func (m *Client) envDimensions() []types.Dimension {
	return []types.Dimension{
		{Name: aws.String("Environment"), Value: aws.String(m.environment)},
	}
}

// putMetric sends a single metric datum to CloudWatch.
func (m *Client) putMetric(_ context.Context, metricName string, value float64, unit types.StandardUnit, dimensions []types.Dimension) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
