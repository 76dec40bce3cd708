package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/logger"
)

type fakePutter struct {
	bucket string
	key    string
	body   []byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3SnapshotExporter_Export(t *testing.T) {
	putter := &fakePutter{}
	exporter := NewS3SnapshotExporter(putter, "snapshots", "fusion", logger.NewNop())

	result := &entity.FusionResult{
		RunID:   "run-1",
		History: []entity.HistoryRow{{AssignedID: "pass_D1", FlightNumber: "SU100"}},
	}
	location, err := exporter.Export(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, "s3://snapshots/fusion/run-1.json", location)
	assert.Equal(t, "snapshots", putter.bucket)
	assert.Equal(t, "fusion/run-1.json", putter.key)

	var decoded entity.FusionResult
	require.NoError(t, json.Unmarshal(putter.body, &decoded))
	assert.Equal(t, result.History, decoded.History)
}

func TestS3SnapshotExporter_Errors(t *testing.T) {
	exporter := NewS3SnapshotExporter(&fakePutter{err: errors.New("denied")}, "b", "", logger.NewNop())

	_, err := exporter.Export(context.Background(), &entity.FusionResult{RunID: "r"})
	assert.ErrorContains(t, err, "denied")

	_, err = exporter.Export(context.Background(), &entity.FusionResult{})
	assert.ErrorIs(t, err, entity.ErrMalformedInput)
}
