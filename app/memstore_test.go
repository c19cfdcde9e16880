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

package app

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/store"
)

// memStore is an in-memory DataStore with the keyed semantics of the
// mongo implementation.
type memStore struct {
	mu      sync.Mutex
	filters []store.FilterEntity
	clauses []store.ClauseEntity
	jobs    []model.JobRepositoryModel
	devices []model.Device
}

func newMemStore() *memStore {
	return &memStore{}
}

func matchKeys(q store.TableQuery, pk, rk, user string) bool {
	return (q.PartitionKey == "" || q.PartitionKey == pk) &&
		(q.RowKey == "" || q.RowKey == rk) &&
		(q.UserName == "" || q.UserName == user || user == model.AnyUserName)
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) Close() error { return nil }

func (s *memStore) InsertOrReplaceFilter(_ context.Context, f *store.FilterEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.filters {
		if s.filters[i].PartitionKey == f.PartitionKey && s.filters[i].RowKey == f.RowKey {
			s.filters[i] = *f
			return nil
		}
	}
	s.filters = append(s.filters, *f)
	return nil
}

func (s *memStore) TouchFilter(_ context.Context, f *store.FilterEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.filters {
		if s.filters[i].PartitionKey == f.PartitionKey && s.filters[i].RowKey == f.RowKey {
			s.filters[i].Timestamp = s.filters[i].Timestamp.Add(1)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memStore) DeleteFilter(_ context.Context, pk, rk string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.filters {
		if s.filters[i].PartitionKey == pk && s.filters[i].RowKey == rk {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memStore) QueryFilters(_ context.Context, q store.TableQuery) ([]store.FilterEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []store.FilterEntity{}
	for _, f := range s.filters {
		if matchKeys(q, f.PartitionKey, f.RowKey, f.UserName) {
			res = append(res, f)
		}
	}
	return res, nil
}

func (s *memStore) QueryClauses(_ context.Context, q store.TableQuery) ([]store.ClauseEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []store.ClauseEntity{}
	for _, c := range s.clauses {
		if matchKeys(q, c.PartitionKey, c.RowKey, c.UserName) {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *memStore) InsertClause(_ context.Context, c *store.ClauseEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.clauses {
		if e.PartitionKey == c.PartitionKey && e.RowKey == c.RowKey {
			return store.ErrConflict
		}
	}
	s.clauses = append(s.clauses, *c)
	return nil
}

func (s *memStore) ReplaceClause(_ context.Context, c *store.ClauseEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clauses {
		if s.clauses[i].PartitionKey == c.PartitionKey && s.clauses[i].RowKey == c.RowKey {
			s.clauses[i] = *c
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memStore) DeleteClause(_ context.Context, pk, rk string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clauses {
		if s.clauses[i].PartitionKey == pk && s.clauses[i].RowKey == rk {
			s.clauses = append(s.clauses[:i], s.clauses[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memStore) InsertOrReplaceJob(_ context.Context, job *model.JobRepositoryModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].JobID == job.JobID && s.jobs[i].FilterID == job.FilterID {
			s.jobs[i] = *job
			return nil
		}
	}
	s.jobs = append(s.jobs, *job)
	return nil
}

func (s *memStore) DeleteJob(_ context.Context, jobID, filterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].JobID == jobID && s.jobs[i].FilterID == filterID {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memStore) QueryJobs(_ context.Context, q store.TableQuery) ([]model.JobRepositoryModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []model.JobRepositoryModel{}
	for _, j := range s.jobs {
		if (q.PartitionKey == "" || q.PartitionKey == j.JobID) &&
			(q.RowKey == "" || q.RowKey == j.FilterID) &&
			(q.UserName == "" || q.UserName == j.UserName) {
			res = append(res, j)
		}
	}
	return res, nil
}

// cloneDevice returns a deep copy so callers never share state with the
// stored record.
func cloneDevice(dev model.Device) model.Device {
	b, err := json.Marshal(dev)
	if err != nil {
		panic(err)
	}
	var out model.Device
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}

func (s *memStore) QueryDevices(context.Context) ([]model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]model.Device, 0, len(s.devices))
	for _, dev := range s.devices {
		res = append(res, cloneDevice(dev))
	}
	return res, nil
}

func (s *memStore) GetDevice(_ context.Context, deviceID string) (*model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dev := range s.devices {
		if dev.DeviceID() == deviceID {
			res := cloneDevice(dev)
			return &res, nil
		}
	}
	return nil, nil
}

func (s *memStore) SaveDevice(_ context.Context, dev *model.Device) (*model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev.ID == "" {
		dev.ID = uuid.NewString()
	}
	for i := range s.devices {
		switch {
		case s.devices[i].ID == dev.ID:
			s.devices[i] = cloneDevice(*dev)
			return dev, nil
		case s.devices[i].DeviceID() == dev.DeviceID():
			return nil, store.ErrConflict
		}
	}
	s.devices = append(s.devices, cloneDevice(*dev))
	return dev, nil
}

func (s *memStore) DeleteDevice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.devices {
		if s.devices[i].ID == id {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
