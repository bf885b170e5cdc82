package bq_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/infra/bq"
	"github.com/m-mizutani/astrodash/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

func TestAuditSchema(t *testing.T) {
	schema := gt.R1(bq.AuditSchema()).NoError(t)

	fieldTypes := map[string]bigquery.FieldType{}
	for _, f := range schema {
		fieldTypes[f.Name] = f.Type
	}
	gt.V(t, fieldTypes["timestamp"]).Equal(bigquery.TimestampFieldType)
	gt.V(t, fieldTypes["commit_sha"]).Equal(bigquery.StringFieldType)
	gt.V(t, len(schema)).Equal(9)
}

func TestEncodeRow(t *testing.T) {
	schema := gt.R1(bq.AuditSchema()).NoError(t)
	md, _, err := bq.BuildDescriptorForTest(schema)
	gt.NoError(t, err)

	record := &model.AuditRecord{
		ID:        "rec-1",
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		User:      "octocat",
		Repo:      "octo/blog",
		Branch:    "main",
		Path:      "src/content/blog/a.md",
		Operation: "upsert",
		CommitSHA: "c1",
		Message:   "update post",
	}
	raw := gt.R1(bq.EncodeRowForTest(md, record)).NoError(t)

	msg := dynamicpb.NewMessage(md)
	gt.NoError(t, proto.Unmarshal(raw, msg))
	gt.V(t, msg.Get(md.Fields().ByName("repo")).String()).Equal("octo/blog")
	gt.V(t, msg.Get(md.Fields().ByName("timestamp")).Int()).Equal(record.Timestamp.UnixMicro())
}

func TestClient(t *testing.T) {
	envs := testutil.EnvsOrSkip(t, "TEST_BIGQUERY_PROJECT_ID", "TEST_BIGQUERY_DATASET_ID")
	projectID, datasetID := envs[0], envs[1]

	ctx := context.Background()
	tblName := types.BQTableID(time.Now().Format("audit_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)

	gt.NoError(t, client.Insert(ctx, []*model.AuditRecord{
		{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			User:      "tester",
			Repo:      "octo/blog",
			Branch:    "main",
			Path:      "README.md",
			Operation: "upsert",
			CommitSHA: "deadbeef",
			Message:   "integration test",
		},
	}))
}
