package postgres

import (
	"context"
	"encoding/json"
	"maps"
	"time"

	"pharmanet/internal/domain/repository"
	"pharmanet/internal/infra/persistence/model"
	"pharmanet/internal/infra/persistence/postgres/query"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// recordStore implements repository.RecordStore on a single JSONB table.
type recordStore struct {
	db *gorm.DB
}

// NewRecordStore is the constructor for recordStore.
func NewRecordStore(db *gorm.DB) repository.RecordStore {
	return &recordStore{db: db}
}

// NewID allocates a random id; Postgres has no server-side document ids.
func (s *recordStore) NewID(string) string {
	return uuid.NewString()
}

// Create inserts a record. A taken key reports repository.ErrRecordExists.
func (s *recordStore) Create(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	if id == "" {
		id = s.NewID(collection)
	}

	if err := createRecord(ctx, query.Use(s.db), collection, id, fields); err != nil {
		return "", err
	}

	return id, nil
}

// Get returns a record or repository.ErrRecordNotFound.
func (s *recordStore) Get(ctx context.Context, collection, id string) (*repository.Record, error) {
	return getRecord(ctx, query.Use(s.db), collection, id)
}

// Query matches a top-level field with JSONB equality.
func (s *recordStore) Query(ctx context.Context, collection, field string, value any) ([]*repository.Record, error) {
	r := query.Use(s.db).RecordModel
	models, err := r.WithContext(ctx).
		Where(r.Collection.Eq(collection)).
		Where(gen.Cond(datatypes.JSONQuery("fields").Equals(value, field))...).
		Find()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s by %s", collection, field)
	}

	return toRecords(models), nil
}

// List returns every record of the collection.
func (s *recordStore) List(ctx context.Context, collection string) ([]*repository.Record, error) {
	r := query.Use(s.db).RecordModel
	models, err := r.WithContext(ctx).Where(r.Collection.Eq(collection)).Find()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", collection)
	}

	return toRecords(models), nil
}

// Merge shallow-merges partial using the JSONB concatenation operator.
func (s *recordStore) Merge(ctx context.Context, collection, id string, partial map[string]any) error {
	patch, err := json.Marshal(partial)
	if err != nil {
		return errors.Wrap(err, "failed to encode merge patch")
	}

	r := query.Use(s.db).RecordModel
	result, err := r.WithContext(ctx).
		Where(r.Collection.Eq(collection), r.ID.Eq(id)).
		Updates(map[string]any{
			"fields":     gorm.Expr("fields || ?::jsonb", string(patch)),
			"updated_at": time.Now().UTC(),
		})
	if err != nil {
		return errors.Wrapf(err, "failed to merge %s/%s", collection, id)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// RunInTransaction runs fn inside a database transaction.
func (s *recordStore) RunInTransaction(ctx context.Context, fn func(tx repository.RecordTx) error) error {
	return execute(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&recordTx{ctx: ctx, q: query.Use(tx)})
	})
}

// recordTx binds record reads and writes to one gorm transaction.
type recordTx struct {
	ctx context.Context
	q   *query.Query
}

func (t *recordTx) Get(collection, id string) (*repository.Record, error) {
	return getRecord(t.ctx, t.q, collection, id)
}

func (t *recordTx) Create(collection, id string, fields map[string]any) error {
	return createRecord(t.ctx, t.q, collection, id, fields)
}

func createRecord(ctx context.Context, q *query.Query, collection, id string, fields map[string]any) error {
	row := &model.RecordModel{
		Collection: collection,
		ID:         id,
		Fields:     datatypes.JSONMap(maps.Clone(fields)),
	}

	if err := q.RecordModel.WithContext(ctx).Create(row); err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrapf(repository.ErrRecordExists, "%s/%s", collection, id)
		}

		return errors.Wrapf(err, "failed to create %s/%s", collection, id)
	}

	return nil
}

func getRecord(ctx context.Context, q *query.Query, collection, id string) (*repository.Record, error) {
	r := q.RecordModel
	row, err := r.WithContext(ctx).Where(r.Collection.Eq(collection), r.ID.Eq(id)).Take()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrapf(err, "failed to get %s/%s", collection, id)
	}

	return toRecord(row), nil
}

func toRecord(row *model.RecordModel) *repository.Record {
	return &repository.Record{ID: row.ID, Fields: map[string]any(row.Fields)}
}

func toRecords(rows []*model.RecordModel) []*repository.Record {
	records := make([]*repository.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}

	return records
}
