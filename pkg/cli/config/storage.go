package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra/gcs"
	"github.com/urfave/cli/v3"
)

type CloudStorage struct {
	bucket types.GCSBucket
	prefix string
}

func (x *CloudStorage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket for image backups (optional)",
			Category:    "Cloud Storage",
			Destination: (*string)(&x.bucket),
			Sources:     cli.EnvVars("ASTRODASH_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix of image backups",
			Category:    "Cloud Storage",
			Value:       "backups",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("ASTRODASH_GCS_PREFIX"),
		},
	}
}

// NewClient returns nil when no bucket is configured.
func (x *CloudStorage) NewClient(ctx context.Context) (interfaces.ObjectStorage, error) {
	if x.bucket == "" {
		return nil, nil
	}
	client, err := gcs.New(ctx, x.bucket, x.prefix)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x CloudStorage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Bucket", x.bucket),
		slog.String("Prefix", x.prefix),
	)
}
