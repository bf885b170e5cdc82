package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/repository/firestore"
	"github.com/urfave/cli/v3"
)

type Firestore struct {
	projectID  types.GoogleProjectID
	databaseID string
	collection string
}

func (x *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID (required for the firestore session store)",
			Category:    "Firestore",
			Sources:     cli.EnvVars("ASTRODASH_FIRESTORE_PROJECT_ID"),
			Destination: (*string)(&x.projectID),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Firestore",
			Sources:     cli.EnvVars("ASTRODASH_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
			Destination: &x.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection holding sessions",
			Category:    "Firestore",
			Sources:     cli.EnvVars("ASTRODASH_FIRESTORE_COLLECTION"),
			Value:       "sessions",
			Destination: &x.collection,
		},
	}
}

func (x *Firestore) Enabled() bool {
	return x.projectID != ""
}

func (x *Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("databaseID", x.databaseID),
		slog.Any("collection", x.collection),
	)
}

func (x *Firestore) NewRepository(ctx context.Context) (interfaces.SessionRepository, error) {
	return firestore.New(ctx, x.projectID, x.databaseID, firestore.WithCollection(x.collection))
}
