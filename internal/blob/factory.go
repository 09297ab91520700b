package blob

import (
	"context"
	"fmt"

	"github.com/MonksterFX/fermentation-station/internal/config"
)

// Open selects a Store implementation from the blob configuration.
func Open(ctx context.Context, cfg config.BlobConfig) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverFilesystem:
		return NewFilesystem(cfg.BasePath)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Region:   cfg.Region,
			Bucket:   cfg.Bucket,
			Endpoint: cfg.Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
