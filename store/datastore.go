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

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mendersoftware/deviceregistry/model"
)

// DataStore interface for DataStore services
//
//nolint:lll - skip line length check for interface declaration.
//go:generate ../utils/mockgen.sh
type DataStore interface {
	Ping(ctx context.Context) error

	InsertOrReplaceFilter(ctx context.Context, filter *FilterEntity) error
	TouchFilter(ctx context.Context, filter *FilterEntity) error
	DeleteFilter(ctx context.Context, partitionKey, rowKey string) error
	QueryFilters(ctx context.Context, q TableQuery) ([]FilterEntity, error)

	QueryClauses(ctx context.Context, q TableQuery) ([]ClauseEntity, error)
	InsertClause(ctx context.Context, clause *ClauseEntity) error
	ReplaceClause(ctx context.Context, clause *ClauseEntity) error
	DeleteClause(ctx context.Context, partitionKey, rowKey string) error

	InsertOrReplaceJob(ctx context.Context, job *model.JobRepositoryModel) error
	DeleteJob(ctx context.Context, jobID, filterID string) error
	QueryJobs(ctx context.Context, q TableQuery) ([]model.JobRepositoryModel, error)

	QueryDevices(ctx context.Context) ([]model.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*model.Device, error)
	SaveDevice(ctx context.Context, dev *model.Device) (*model.Device, error)
	DeleteDevice(ctx context.Context, id string) error

	Close() error
}

var (
	// ErrNotFound is returned when a keyed write or delete matches no record
	ErrNotFound = errors.New("store: record not found")
	// ErrConflict is returned when an insert violates a unique key
	ErrConflict = errors.New("store: record already exists")
)

// TableQuery selects keyed records; empty fields do not constrain the result.
type TableQuery struct {
	PartitionKey string
	RowKey       string
	UserName     string
}

// FilterEntity is the stored form of a device list filter. The partition
// key is the filter id, the row key the stored (possibly namespaced) name.
type FilterEntity struct {
	PartitionKey string    `bson:"partition_key"`
	RowKey       string    `bson:"row_key"`
	Name         string    `bson:"name"`
	Clauses      string    `bson:"clauses"`
	SortColumn   string    `bson:"sort_column,omitempty"`
	SortOrder    string    `bson:"sort_order,omitempty"`
	SearchQuery  string    `bson:"search_query,omitempty"`
	IsTemporary  bool      `bson:"is_temporary"`
	UserName     string    `bson:"user_name,omitempty"`
	Timestamp    time.Time `bson:"timestamp"`
}

// ClauseEntity is the stored form of a suggested clause. The partition key
// combines column and operator, the row key value and data type.
type ClauseEntity struct {
	PartitionKey   string    `bson:"partition_key"`
	RowKey         string    `bson:"row_key"`
	ColumnName     string    `bson:"column_name"`
	ClauseType     string    `bson:"clause_type"`
	ClauseValue    string    `bson:"clause_value"`
	ClauseDataType string    `bson:"clause_data_type"`
	HitCounter     int       `bson:"hit_counter"`
	UserName       string    `bson:"user_name,omitempty"`
	Timestamp      time.Time `bson:"timestamp"`
}

// NewFilterEntity returns the stored form of filter under the stored name
// rowKey.
func NewFilterEntity(filter model.DeviceListFilter, rowKey string) (*FilterEntity, error) {
	clauses := filter.Clauses
	if clauses == nil {
		clauses = []model.Clause{}
	}
	b, err := json.Marshal(clauses)
	if err != nil {
		return nil, err
	}
	return &FilterEntity{
		PartitionKey: filter.ID,
		RowKey:       rowKey,
		Name:         filter.Name,
		Clauses:      string(b),
		SortColumn:   filter.SortColumn,
		SortOrder:    string(filter.SortOrder),
		SearchQuery:  filter.SearchQuery,
		IsTemporary:  filter.IsTemporary,
		UserName:     filter.UserName,
		Timestamp:    filter.Timestamp,
	}, nil
}

// DecodeClauses parses the stored clause list
func (e FilterEntity) DecodeClauses() ([]model.Clause, error) {
	clauses := []model.Clause{}
	if e.Clauses == "" {
		return clauses, nil
	}
	err := json.Unmarshal([]byte(e.Clauses), &clauses)
	if err != nil {
		return []model.Clause{}, err
	}
	return clauses, nil
}

// NewClauseEntity returns the stored form of a suggested clause
func NewClauseEntity(c model.Clause, hits int, userName string) *ClauseEntity {
	c = c.Normalize()
	return &ClauseEntity{
		PartitionKey:   c.PartitionKey(),
		RowKey:         c.RowKey(),
		ColumnName:     c.ColumnName,
		ClauseType:     string(c.ClauseType),
		ClauseValue:    c.ClauseValue,
		ClauseDataType: string(c.ClauseDataType),
		HitCounter:     hits,
		UserName:       userName,
	}
}

// Suggestion returns the clause suggestion held by the entity
func (e ClauseEntity) Suggestion() model.ClauseSuggestion {
	return model.ClauseSuggestion{
		Clause: model.Clause{
			ColumnName:     e.ColumnName,
			ClauseType:     model.ParseClauseType(e.ClauseType),
			ClauseValue:    e.ClauseValue,
			ClauseDataType: model.ParseClauseDataType(e.ClauseDataType),
		},
		HitCounter: e.HitCounter,
		Timestamp:  e.Timestamp,
	}
}
