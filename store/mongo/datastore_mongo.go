// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package mongo

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	mstorev1 "github.com/mendersoftware/go-lib-micro/store"
	mstore "github.com/mendersoftware/go-lib-micro/store/v2"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	dconfig "github.com/mendersoftware/deviceregistry/config"
	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/store"
)

const (
	// DevicesCollectionName refers to the name of the collection of stored devices
	DevicesCollectionName = "devices"

	dbFieldID           = "_id"
	dbFieldPartitionKey = "partition_key"
	dbFieldRowKey       = "row_key"
	dbFieldUserName     = "user_name"
	dbFieldTimestamp    = "timestamp"
	dbFieldDeviceID     = "device_properties.device_id"
)

// SetupDataStore returns the mongo data store and optionally runs migrations
func SetupDataStore(automigrate bool) (*DataStoreMongo, error) {
	ctx := context.Background()
	dbClient, err := NewClient(ctx, config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}
	dataStore := NewDataStoreWithClient(dbClient, config.Config)
	err = dataStore.doMigrations(ctx, automigrate)
	if err != nil {
		_ = dataStore.Close()
		return nil, err
	}
	return dataStore, nil
}

func (db *DataStoreMongo) doMigrations(ctx context.Context, automigrate bool) error {
	dbs, err := migrate.GetTenantDbs(ctx, db.client, mstorev1.IsTenantDb(db.dbName))
	if err != nil {
		return errors.Wrap(err, "failed go retrieve tenant DBs")
	}
	dbs = append(dbs, db.dbName)

	for _, d := range dbs {
		err := db.Migrate(ctx, d, DbVersion, automigrate)
		if err != nil {
			return errors.Wrap(err, "failed to run migrations")
		}
	}
	return nil
}

// NewClient returns a mongo client
func NewClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {
	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: c.GetString(dconfig.SettingDbUsername),
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Acknowledge writes once they are committed to the journal
	clientOptions.SetWriteConcern(writeconcern.New(
		writeconcern.W(1), writeconcern.J(true),
	))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo is the data storage service
type DataStoreMongo struct {
	// client holds the reference to the client used to communicate with the
	// mongodb server.
	client *mongo.Client
	// dbName contains the name of the deviceregistry database.
	dbName string

	filters string
	clauses string
	jobs    string
}

// NewDataStoreWithClient initializes a DataStore object
func NewDataStoreWithClient(client *mongo.Client, c config.Reader) *DataStoreMongo {
	db := &DataStoreMongo{
		client:  client,
		dbName:  c.GetString(dconfig.SettingDbName),
		filters: c.GetString(dconfig.SettingFilterTableName),
		clauses: c.GetString(dconfig.SettingClauseTableName),
		jobs:    c.GetString(dconfig.SettingJobTableName),
	}
	if db.dbName == "" {
		db.dbName = DbName
	}
	if db.filters == "" {
		db.filters = dconfig.SettingFilterTableNameDefault
	}
	if db.clauses == "" {
		db.clauses = dconfig.SettingClauseTableNameDefault
	}
	if db.jobs == "" {
		db.jobs = dconfig.SettingJobTableNameDefault
	}
	return db
}

func (db *DataStoreMongo) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

// Ping verifies the connection to the database
func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(db.dbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

func keyQuery(q store.TableQuery) bson.D {
	doc := bson.D{}
	if q.PartitionKey != "" {
		doc = append(doc, bson.E{Key: dbFieldPartitionKey, Value: q.PartitionKey})
	}
	if q.RowKey != "" {
		doc = append(doc, bson.E{Key: dbFieldRowKey, Value: q.RowKey})
	}
	if q.UserName != "" {
		doc = append(doc, bson.E{Key: dbFieldUserName, Value: q.UserName})
	}
	return doc
}

func entityKey(partitionKey, rowKey string) bson.D {
	return bson.D{
		{Key: dbFieldPartitionKey, Value: partitionKey},
		{Key: dbFieldRowKey, Value: rowKey},
	}
}

// sharedContext scopes writes of records owned by any user. They are
// stored without tenant and visible to every tenant.
func sharedContext(ctx context.Context, userName string) context.Context {
	if userName == model.AnyUserName {
		return identity.WithContext(ctx, &identity.Identity{})
	}
	return ctx
}

// filterQuery matches the filters of the tenant in ctx and the shared ones
func filterQuery(ctx context.Context, q store.TableQuery) bson.D {
	tenantQuery := mstore.WithTenantID(ctx, keyQuery(q))
	if q.UserName != "" && q.UserName != model.AnyUserName {
		return tenantQuery
	}
	shared := keyQuery(store.TableQuery{
		PartitionKey: q.PartitionKey,
		RowKey:       q.RowKey,
	})
	shared = append(shared,
		bson.E{Key: mstore.FieldTenantID, Value: ""},
		bson.E{Key: dbFieldUserName, Value: model.AnyUserName},
	)
	return bson.D{{Key: "$or", Value: bson.A{tenantQuery, shared}}}
}

// InsertOrReplaceFilter upserts a filter keyed by id and stored name
func (db *DataStoreMongo) InsertOrReplaceFilter(
	ctx context.Context,
	filter *store.FilterEntity,
) error {
	ctx = sharedContext(ctx, filter.UserName)
	filter.Timestamp = time.Now().UTC()
	_, err := db.collection(db.filters).ReplaceOne(ctx,
		mstore.WithTenantID(ctx, entityKey(filter.PartitionKey, filter.RowKey)),
		mstore.WithTenantID(ctx, filter),
		mopts.Replace().SetUpsert(true),
	)
	return errors.Wrap(err, "mongo: failed to save filter")
}

// TouchFilter refreshes the timestamp of an existing filter
func (db *DataStoreMongo) TouchFilter(ctx context.Context, filter *store.FilterEntity) error {
	ctx = sharedContext(ctx, filter.UserName)
	now := time.Now().UTC()
	res, err := db.collection(db.filters).UpdateOne(ctx,
		mstore.WithTenantID(ctx, entityKey(filter.PartitionKey, filter.RowKey)),
		bson.D{{Key: "$set", Value: bson.D{{Key: dbFieldTimestamp, Value: now}}}},
	)
	if err != nil {
		return errors.Wrap(err, "mongo: failed to touch filter")
	} else if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	filter.Timestamp = now
	return nil
}

// DeleteFilter removes a filter; store.ErrNotFound if nothing matched
func (db *DataStoreMongo) DeleteFilter(ctx context.Context, partitionKey, rowKey string) error {
	res, err := db.collection(db.filters).DeleteOne(ctx,
		mstore.WithTenantID(ctx, entityKey(partitionKey, rowKey)),
	)
	if err != nil {
		return errors.Wrap(err, "mongo: failed to delete filter")
	} else if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// QueryFilters returns the filters matching q
func (db *DataStoreMongo) QueryFilters(
	ctx context.Context,
	q store.TableQuery,
) ([]store.FilterEntity, error) {
	cur, err := db.collection(db.filters).Find(ctx, filterQuery(ctx, q))
	if err != nil {
		return nil, errors.Wrap(err, "mongo: failed to query filters")
	}
	filters := []store.FilterEntity{}
	if err = cur.All(ctx, &filters); err != nil {
		return nil, errors.Wrap(err, "mongo: failed to decode filters")
	}
	return filters, nil
}

// QueryClauses returns the suggested clauses matching q
func (db *DataStoreMongo) QueryClauses(
	ctx context.Context,
	q store.TableQuery,
) ([]store.ClauseEntity, error) {
	cur, err := db.collection(db.clauses).Find(ctx,
		mstore.WithTenantID(ctx, keyQuery(q)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mongo: failed to query suggested clauses")
	}
	clauses := []store.ClauseEntity{}
	if err = cur.All(ctx, &clauses); err != nil {
		return nil, errors.Wrap(err, "mongo: failed to decode suggested clauses")
	}
	return clauses, nil
}

// InsertClause stores a new suggested clause; store.ErrConflict if the
// keys are taken.
func (db *DataStoreMongo) InsertClause(ctx context.Context, clause *store.ClauseEntity) error {
	clause.Timestamp = time.Now().UTC()
	_, err := db.collection(db.clauses).InsertOne(ctx,
		mstore.WithTenantID(ctx, clause),
	)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrConflict
	}
	return errors.Wrap(err, "mongo: failed to insert suggested clause")
}

// ReplaceClause overwrites an existing suggested clause
func (db *DataStoreMongo) ReplaceClause(ctx context.Context, clause *store.ClauseEntity) error {
	clause.Timestamp = time.Now().UTC()
	res, err := db.collection(db.clauses).ReplaceOne(ctx,
		mstore.WithTenantID(ctx, entityKey(clause.PartitionKey, clause.RowKey)),
		mstore.WithTenantID(ctx, clause),
	)
	if err != nil {
		return errors.Wrap(err, "mongo: failed to replace suggested clause")
	} else if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteClause removes a suggested clause; store.ErrNotFound if nothing
// matched
func (db *DataStoreMongo) DeleteClause(ctx context.Context, partitionKey, rowKey string) error {
	res, err := db.collection(db.clauses).DeleteOne(ctx,
		mstore.WithTenantID(ctx, entityKey(partitionKey, rowKey)),
	)
	if err != nil {
		return errors.Wrap(err, "mongo: failed to delete suggested clause")
	} else if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// InsertOrReplaceJob upserts the registry metadata of a job
func (db *DataStoreMongo) InsertOrReplaceJob(
	ctx context.Context,
	job *model.JobRepositoryModel,
) error {
	_, err := db.collection(db.jobs).ReplaceOne(ctx,
		mstore.WithTenantID(ctx, entityKey(job.JobID, job.FilterID)),
		mstore.WithTenantID(ctx, job),
		mopts.Replace().SetUpsert(true),
	)
	return errors.Wrap(err, "mongo: failed to save job")
}

// DeleteJob removes the metadata of a job
func (db *DataStoreMongo) DeleteJob(ctx context.Context, jobID, filterID string) error {
	res, err := db.collection(db.jobs).DeleteOne(ctx,
		mstore.WithTenantID(ctx, entityKey(jobID, filterID)),
	)
	if err != nil {
		return errors.Wrap(err, "mongo: failed to delete job")
	} else if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// QueryJobs returns the job metadata matching q
func (db *DataStoreMongo) QueryJobs(
	ctx context.Context,
	q store.TableQuery,
) ([]model.JobRepositoryModel, error) {
	cur, err := db.collection(db.jobs).Find(ctx,
		mstore.WithTenantID(ctx, keyQuery(q)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mongo: failed to query jobs")
	}
	jobs := []model.JobRepositoryModel{}
	if err = cur.All(ctx, &jobs); err != nil {
		return nil, errors.Wrap(err, "mongo: failed to decode jobs")
	}
	return jobs, nil
}

// QueryDevices returns every device of the tenant
func (db *DataStoreMongo) QueryDevices(ctx context.Context) ([]model.Device, error) {
	cur, err := db.collection(DevicesCollectionName).Find(ctx,
		mstore.WithTenantID(ctx, bson.D{}),
		mopts.Find().SetSort(bson.D{{Key: dbFieldID, Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mongo: failed to query devices")
	}
	devices := []model.Device{}
	if err = cur.All(ctx, &devices); err != nil {
		return nil, errors.Wrap(err, "mongo: failed to decode devices")
	}
	return devices, nil
}

// GetDevice returns the device with the given business key, or nil
func (db *DataStoreMongo) GetDevice(ctx context.Context, deviceID string) (*model.Device, error) {
	res := db.collection(DevicesCollectionName).FindOne(ctx,
		mstore.WithTenantID(ctx, bson.D{{Key: dbFieldDeviceID, Value: deviceID}}),
	)
	device := &model.Device{}
	if err := res.Decode(device); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Wrap(err, "mongo: failed to get device")
	}
	return device, nil
}

// SaveDevice upserts dev, assigning the storage identities when missing
func (db *DataStoreMongo) SaveDevice(ctx context.Context, dev *model.Device) (*model.Device, error) {
	if dev.ID == "" {
		dev.ID = uuid.NewString()
	}
	if dev.RID == "" {
		dev.RID = uuid.NewString()
	}
	_, err := db.collection(DevicesCollectionName).ReplaceOne(ctx,
		mstore.WithTenantID(ctx, bson.D{{Key: dbFieldID, Value: dev.ID}}),
		mstore.WithTenantID(ctx, dev),
		mopts.Replace().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return nil, store.ErrConflict
	} else if err != nil {
		return nil, errors.Wrap(err, "mongo: failed to save device")
	}
	return dev, nil
}

// DeleteDevice removes the device with the given storage id
func (db *DataStoreMongo) DeleteDevice(ctx context.Context, id string) error {
	res, err := db.collection(DevicesCollectionName).DeleteOne(ctx,
		mstore.WithTenantID(ctx, bson.D{{Key: dbFieldID, Value: id}}),
	)
	if err != nil {
		return errors.Wrap(err, "mongo: failed to delete device")
	} else if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Close disconnects the client
func (db *DataStoreMongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := db.client.Disconnect(ctx)
	if err != nil {
		log.NewEmpty().Warnf("mongo: failed to disconnect: %s", err)
	}
	return err
}

//nolint:unused
func (db *DataStoreMongo) dropDatabase() error {
	ctx := context.Background()
	err := db.client.Database(db.dbName).Drop(ctx)
	return err
}
