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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	mstorev1 "github.com/mendersoftware/go-lib-micro/store"
	mstore "github.com/mendersoftware/go-lib-micro/store/v2"
)

const (
	findBatchSize = 255

	indexNameKeys     = mstore.FieldTenantID + "_" + dbFieldPartitionKey + "_" + dbFieldRowKey
	indexNameUserName = mstore.FieldTenantID + "_" + dbFieldUserName
	indexNameRowKey   = mstore.FieldTenantID + "_" + dbFieldRowKey
	indexNameDeviceID = mstore.FieldTenantID + "_" + dbFieldDeviceID
)

// migration_1_0_0 creates the indexes of the shared database. Legacy
// per-tenant databases are folded into the shared database, stamping the
// tenant id on every document.
type migration_1_0_0 struct {
	client *mongo.Client
	db     string
	dbName string
	// tables are the filter, suggested clause and job collections
	tables []string
}

func keyIndexes(unique bool) []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys: bson.D{
			{Key: mstore.FieldTenantID, Value: 1},
			{Key: dbFieldPartitionKey, Value: 1},
			{Key: dbFieldRowKey, Value: 1},
		},
		Options: mopts.Index().
			SetName(indexNameKeys).
			SetUnique(unique),
	}, {
		Keys: bson.D{
			{Key: mstore.FieldTenantID, Value: 1},
			{Key: dbFieldUserName, Value: 1},
		},
		Options: mopts.Index().
			SetName(indexNameUserName),
	}, {
		Keys: bson.D{
			{Key: mstore.FieldTenantID, Value: 1},
			{Key: dbFieldRowKey, Value: 1},
		},
		Options: mopts.Index().
			SetName(indexNameRowKey),
	}}
}

func (m *migration_1_0_0) collections() map[string][]mongo.IndexModel {
	collections := map[string][]mongo.IndexModel{
		DevicesCollectionName: {{
			Keys: bson.D{
				{Key: mstore.FieldTenantID, Value: 1},
				{Key: dbFieldDeviceID, Value: 1},
			},
			Options: mopts.Index().
				SetName(indexNameDeviceID).
				SetUnique(true),
		}},
	}
	for _, table := range m.tables {
		collections[table] = keyIndexes(true)
	}
	return collections
}

func (m *migration_1_0_0) Up(from migrate.Version) error {
	ctx := context.Background()
	client := m.client

	tenantID := mstorev1.TenantFromDbName(m.db, m.dbName)
	ctx = identity.WithContext(ctx, &identity.Identity{
		Tenant: tenantID,
	})
	writes := make([]mongo.WriteModel, 0, findBatchSize)

	for collection, indexes := range m.collections() {
		collOut := client.Database(m.dbName).Collection(collection)
		if m.db == m.dbName {
			_, err := collOut.Indexes().CreateMany(ctx, indexes)
			if err != nil {
				return err
			}
			continue
		}

		writes = writes[:0]
		findOptions := mopts.Find().
			SetBatchSize(findBatchSize).
			SetSort(bson.D{{Key: dbFieldID, Value: 1}})
		coll := client.Database(m.db).Collection(collection)
		cur, err := coll.Find(ctx, bson.D{}, findOptions)
		if err != nil {
			return err
		}

		for cur.Next(ctx) {
			id := cur.Current.Lookup(dbFieldID)
			var item bson.D
			if err = cur.Decode(&item); err != nil {
				_ = cur.Close(ctx)
				return err
			}
			writes = append(writes, mongo.
				NewReplaceOneModel().
				SetFilter(bson.D{{Key: dbFieldID, Value: id}}).
				SetUpsert(true).
				SetReplacement(mstore.WithTenantID(ctx, item)))
			if len(writes) == findBatchSize {
				_, err = collOut.BulkWrite(ctx, writes)
				if err != nil {
					_ = cur.Close(ctx)
					return err
				}
				writes = writes[:0]
			}
		}
		_ = cur.Close(ctx)
		if len(writes) > 0 {
			_, err := collOut.BulkWrite(ctx, writes)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *migration_1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}
