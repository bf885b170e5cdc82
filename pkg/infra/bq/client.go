// Package bq writes the commit audit log to BigQuery through the Storage Write API.
package bq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/managedwriter"
	"cloud.google.com/go/bigquery/storage/managedwriter/adapt"
	"github.com/m-mizutani/astrodash/pkg/domain/interfaces"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/astrodash/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

type Client struct {
	bqClient *bigquery.Client
	mwClient *managedwriter.Client
	project  string
	dataset  string
	tableID  types.BQTableID

	schema     bigquery.Schema
	tableMutex sync.Mutex
	tableReady bool
}

var _ interfaces.AuditLog = (*Client)(nil)

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, options ...option.ClientOption) (*Client, error) {
	schema, err := AuditSchema()
	if err != nil {
		return nil, err
	}

	mwClient, err := managedwriter.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create bigquery client", goerr.V("projectID", projectID))
	}

	bqClient, err := bigquery.NewClient(ctx, string(projectID), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient: bqClient,
		mwClient: mwClient,
		project:  projectID.String(),
		dataset:  datasetID.String(),
		tableID:  tableID,
		schema:   schema,
	}, nil
}

// AuditSchema is inferred from model.AuditRecord.
func AuditSchema() (bigquery.Schema, error) {
	schema, err := bigquery.InferSchema(model.AuditRecord{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer audit schema")
	}
	return schema, nil
}

// ensureTable creates the audit table, partitioned by day on timestamp, when it does not exist yet.
func (x *Client) ensureTable(ctx context.Context) error {
	x.tableMutex.Lock()
	defer x.tableMutex.Unlock()
	if x.tableReady {
		return nil
	}

	table := x.bqClient.Dataset(x.dataset).Table(x.tableID.String())
	if _, err := table.Metadata(ctx); err != nil {
		var gErr *googleapi.Error
		if !errors.As(err, &gErr) || gErr.Code != http.StatusNotFound {
			return goerr.Wrap(err, "failed to get table metadata", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
		}

		md := &bigquery.TableMetadata{
			Name:   x.tableID.String(),
			Schema: x.schema,
			TimePartitioning: &bigquery.TimePartitioning{
				Type:  bigquery.DayPartitioningType,
				Field: "timestamp",
			},
		}
		if err := table.Create(ctx, md); err != nil {
			return goerr.Wrap(err, "failed to create table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
		}
		logging.From(ctx).Info("Created audit table", slog.String("dataset", x.dataset), slog.Any("table", x.tableID))
	}

	x.tableReady = true
	return nil
}

// Insert appends records to the audit table in a single request.
func (x *Client) Insert(ctx context.Context, records []*model.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := x.ensureTable(ctx); err != nil {
		return err
	}

	messageDescriptor, descriptorProto, err := buildDescriptor(x.schema)
	if err != nil {
		return err
	}

	rows := make([][]byte, 0, len(records))
	for _, record := range records {
		b, err := encodeRow(messageDescriptor, record)
		if err != nil {
			return err
		}
		rows = append(rows, b)
	}

	ms, err := x.mwClient.NewManagedStream(ctx,
		managedwriter.WithDestinationTable(
			managedwriter.TableParentFromParts(
				x.project,
				x.dataset,
				x.tableID.String(),
			),
		),
		managedwriter.WithSchemaDescriptor(descriptorProto),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create managed stream")
	}
	defer safe.Close(ctx, ms)

	arResult, err := ms.AppendRows(ctx, rows)
	if err != nil {
		return goerr.Wrap(err, "failed to append rows")
	}

	if _, err := arResult.FullResponse(ctx); err != nil {
		return goerr.Wrap(err, "failed to get append result", goerr.V("rows", len(rows)))
	}

	return nil
}

func buildDescriptor(schema bigquery.Schema) (protoreflect.MessageDescriptor, *descriptorpb.DescriptorProto, error) {
	convertedSchema, err := adapt.BQSchemaToStorageTableSchema(schema)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema")
	}

	descriptor, err := adapt.StorageSchemaToProto2Descriptor(convertedSchema, "root")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema to descriptor")
	}
	messageDescriptor, ok := descriptor.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, nil, goerr.New("adapted descriptor is not a message descriptor")
	}
	descriptorProto, err := adapt.NormalizeDescriptor(messageDescriptor)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to normalize descriptor")
	}

	return messageDescriptor, descriptorProto, nil
}

// toRow converts a record to the JSON shape of the storage proto. TIMESTAMP columns are epoch
// microseconds there.
func toRow(record *model.AuditRecord) map[string]any {
	return map[string]any{
		"id":         record.ID,
		"timestamp":  record.Timestamp.UnixMicro(),
		"user":       record.User,
		"repo":       record.Repo,
		"branch":     record.Branch,
		"path":       record.Path,
		"operation":  record.Operation,
		"commit_sha": record.CommitSHA,
		"message":    record.Message,
	}
}

func encodeRow(md protoreflect.MessageDescriptor, record *model.AuditRecord) ([]byte, error) {
	raw, err := json.Marshal(toRow(record))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal audit row", goerr.V("id", record.ID))
	}

	message := dynamicpb.NewMessage(md)
	if err := protojson.Unmarshal(raw, message); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal audit row", goerr.V("raw", string(raw)))
	}

	b, err := proto.Marshal(message)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal proto message")
	}
	return b, nil
}
