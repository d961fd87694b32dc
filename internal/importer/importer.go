package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-metadata-registry/internal/adapter"
	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/logger"
	"github.com/feral-file/ff-metadata-registry/internal/metadata"
)

// Result summarizes an import run
type Result struct {
	Records          int // records read from the file
	Batches          int // batches the records were split into
	CompletedBatches int // batches registered without error
}

// Importer loads metadata records from a JSON file into the registry
type Importer interface {
	// Import reads a JSON array of records from filePath and registers them in batches.
	// It stops at the first failing batch; records of earlier batches stay registered.
	Import(ctx context.Context, filePath string) (Result, error)
}

type importer struct {
	registry  metadata.Registry
	fs        adapter.FileSystem
	json      adapter.JSON
	batchSize int
}

// NewImporter creates a new Importer. batchSize is clamped to 1..MAX_BULK_RECORDS.
func NewImporter(registry metadata.Registry, fs adapter.FileSystem, json adapter.JSON, batchSize int) Importer {
	if batchSize <= 0 || batchSize > domain.MAX_BULK_RECORDS {
		batchSize = domain.MAX_BULK_RECORDS
	}

	return &importer{
		registry:  registry,
		fs:        fs,
		json:      json,
		batchSize: batchSize,
	}
}

// Import reads the records file and submits it through BulkRegister batch by batch
func (i *importer) Import(ctx context.Context, filePath string) (Result, error) {
	data, err := i.fs.ReadFile(filePath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read records file: %w", err)
	}

	var records []domain.MetadataInput
	if err := i.json.Unmarshal(data, &records); err != nil {
		return Result{}, fmt.Errorf("failed to parse records JSON: %w", err)
	}

	result := Result{
		Records: len(records),
		Batches: (len(records) + i.batchSize - 1) / i.batchSize,
	}

	for start := 0; start < len(records); start += i.batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := min(start+i.batchSize, len(records))
		batch := records[start:end]

		if err := i.registry.BulkRegister(ctx, batch); err != nil {
			logger.WarnCtx(ctx, "Batch failed, stopping import",
				zap.Int("batch", result.CompletedBatches),
				zap.Int64("first_token_id", int64(batch[0].TokenID)),
				zap.Error(err),
			)
			return result, fmt.Errorf("failed to register batch %d: %w", result.CompletedBatches, err)
		}

		result.CompletedBatches++
		logger.DebugCtx(ctx, "Batch registered",
			zap.Int("batch", result.CompletedBatches-1),
			zap.Int("records", len(batch)),
		)
	}

	return result, nil
}
