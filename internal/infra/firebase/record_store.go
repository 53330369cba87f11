package firebase

import (
	"context"
	"log/slog"

	"pharmanet/internal/domain/repository"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// recordStore implements repository.RecordStore on Cloud Firestore.
// Collections and document ids map one to one.
type recordStore struct {
	client *firestore.Client
}

// RecordStoreParams holds dependencies for the Firestore record store, injected by Fx.
type RecordStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	App    *firebase.App
	Logger *slog.Logger
}

// NewRecordStore opens a Firestore client and closes it on shutdown.
func NewRecordStore(params RecordStoreParams) (repository.RecordStore, error) {
	client, err := params.App.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open firestore client")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return errors.WithStack(client.Close())
		},
	})

	return NewRecordStoreWithClient(client), nil
}

// NewRecordStoreWithClient wraps an existing client, e.g. one pointed at the emulator.
func NewRecordStoreWithClient(client *firestore.Client) repository.RecordStore {
	return &recordStore{client: client}
}

func (s *recordStore) NewID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

func (s *recordStore) Create(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	var doc *firestore.DocumentRef
	if id == "" {
		doc = s.client.Collection(collection).NewDoc()
	} else {
		doc = s.client.Collection(collection).Doc(id)
	}

	if _, err := doc.Create(ctx, fields); err != nil {
		return "", translateWriteError(err, collection, doc.ID)
	}

	return doc.ID, nil
}

func (s *recordStore) Get(ctx context.Context, collection, id string) (*repository.Record, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translateReadError(err, collection, id)
	}

	return toRecord(snap), nil
}

func (s *recordStore) Query(ctx context.Context, collection, field string, value any) ([]*repository.Record, error) {
	snaps, err := s.client.Collection(collection).
		WherePath(firestore.FieldPath{field}, "==", value).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s by %s", collection, field)
	}

	return toRecords(snaps), nil
}

func (s *recordStore) List(ctx context.Context, collection string) ([]*repository.Record, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", collection)
	}

	return toRecords(snaps), nil
}

// Merge replaces the listed top-level fields. Update fails on a missing
// document, which keeps Merge from creating records.
func (s *recordStore) Merge(ctx context.Context, collection, id string, partial map[string]any) error {
	if len(partial) == 0 {
		return nil
	}

	updates := make([]firestore.Update, 0, len(partial))
	for key, value := range partial {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{key}, Value: value})
	}

	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return translateReadError(err, collection, id)
	}

	return nil
}

// RunInTransaction maps onto a Firestore transaction. A create that collides
// surfaces at commit time and is reported as repository.ErrRecordExists.
func (s *recordStore) RunInTransaction(ctx context.Context, fn func(tx repository.RecordTx) error) error {
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return fn(&recordTx{client: s.client, tx: tx})
	})
	if err != nil {
		if status.Code(errors.Cause(err)) == codes.AlreadyExists {
			return errors.Wrap(repository.ErrRecordExists, "transaction commit")
		}

		return err
	}

	return nil
}

type recordTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *recordTx) Get(collection, id string) (*repository.Record, error) {
	snap, err := t.tx.Get(t.client.Collection(collection).Doc(id))
	if err != nil {
		return nil, translateReadError(err, collection, id)
	}

	return toRecord(snap), nil
}

func (t *recordTx) Create(collection, id string, fields map[string]any) error {
	return errors.Wrapf(t.tx.Create(t.client.Collection(collection).Doc(id), fields), "failed to stage %s/%s", collection, id)
}

func translateReadError(err error, collection, id string) error {
	if status.Code(err) == codes.NotFound {
		return repository.ErrRecordNotFound
	}

	return errors.Wrapf(err, "failed to read %s/%s", collection, id)
}

func translateWriteError(err error, collection, id string) error {
	if status.Code(err) == codes.AlreadyExists {
		return errors.Wrapf(repository.ErrRecordExists, "%s/%s", collection, id)
	}

	return errors.Wrapf(err, "failed to create %s/%s", collection, id)
}

func toRecord(snap *firestore.DocumentSnapshot) *repository.Record {
	return &repository.Record{ID: snap.Ref.ID, Fields: snap.Data()}
}

func toRecords(snaps []*firestore.DocumentSnapshot) []*repository.Record {
	records := make([]*repository.Record, 0, len(snaps))
	for _, snap := range snaps {
		records = append(records, toRecord(snap))
	}

	return records
}
