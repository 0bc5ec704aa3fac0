package aws

import (
	"context"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metric names published by the API.
const (
	MetricOrdersCreated  = "OrdersCreated"
	MetricIntakeFailures = "DocumentIntakeFailures"
)

// Metrics wraps a CloudWatch client and a namespace. Publishing is
// best-effort: failures are logged and never surfaced to request handlers.
// A nil *Metrics is a valid no-op publisher.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	Logger     *zap.Logger
}

// NewMetrics returns a Metrics publisher bound to a namespace.
func NewMetrics(cw CloudWatchAPI, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{
		CloudWatch: cw,
		Namespace:  namespace,
		Logger:     logger,
	}
}

// Count publishes a single count datapoint for the named metric.
func (m *Metrics) Count(ctx context.Context, name string, value float64) {
	if m == nil || m.CloudWatch == nil {
		return
	}
	input := &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(m.Namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String(name),
				Value:      sdkaws.Float64(value),
				Unit:       cwtypes.StandardUnitCount,
			},
		},
	}
	if _, err := m.CloudWatch.PutMetricData(ctx, input); err != nil {
		m.Logger.Warn("put metric data", zap.String("metric", name), zap.Error(err))
	}
}
