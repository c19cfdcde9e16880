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
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	mstore "github.com/mendersoftware/go-lib-micro/store/v2"

	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/store"
)

// migration_1_1_0 seeds the built-in filters shared by all tenants
type migration_1_1_0 struct {
	client  *mongo.Client
	db      string
	dbName  string
	filters string
}

func (m *migration_1_1_0) Up(from migrate.Version) error {
	if m.db != m.dbName {
		return nil
	}
	ctx := context.Background()
	coll := m.client.Database(m.dbName).Collection(m.filters)

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(model.BuiltInFilters()))
	for _, filter := range model.BuiltInFilters() {
		entity, err := store.NewFilterEntity(filter, filter.Name)
		if err != nil {
			return err
		}
		entity.Timestamp = now
		key := bson.D{
			{Key: mstore.FieldTenantID, Value: ""},
			{Key: dbFieldPartitionKey, Value: entity.PartitionKey},
			{Key: dbFieldRowKey, Value: entity.RowKey},
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(key).
			SetUpsert(true).
			SetReplacement(mstore.WithTenantID(ctx, entity)))
	}
	_, err := coll.BulkWrite(ctx, writes, mopts.BulkWrite().SetOrdered(false))
	return err
}

func (m *migration_1_1_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 1, 0)
}
