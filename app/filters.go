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
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/query"
	"github.com/mendersoftware/deviceregistry/scope"
	"github.com/mendersoftware/deviceregistry/store"
	"github.com/mendersoftware/deviceregistry/utils"
)

const (
	DefaultRecentFilters = 20
	DefaultFilterPage    = 1000
)

// FilterRegistry stores named device list filters and suggested clauses
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type FilterRegistry interface {
	InitializeDefaults(ctx context.Context) error
	CheckNameExists(ctx context.Context, sc scope.Scope, name string) (bool, error)
	Get(ctx context.Context, sc scope.Scope, id string) (*model.DeviceListFilter, error)
	Save(ctx context.Context, sc scope.Scope, filter model.DeviceListFilter, force bool) (*model.DeviceListFilter, error)
	Touch(ctx context.Context, sc scope.Scope, id string) (bool, error)
	Delete(ctx context.Context, sc scope.Scope, id string) error
	ListRecent(ctx context.Context, sc scope.Scope, max int, excludeTemporary bool) ([]model.DeviceListFilter, error)
	List(ctx context.Context, sc scope.Scope, skip, take int, excludeTemporary bool) ([]model.DeviceListFilter, error)
	ListSuggestedClauses(ctx context.Context, sc scope.Scope, skip, take int) ([]model.ClauseSuggestion, error)
	SaveSuggestedClauses(ctx context.Context, sc scope.Scope, clauses []model.Clause) (int, error)
	DeleteSuggestedClauses(ctx context.Context, sc scope.Scope, clauses []model.Clause) (int, error)
}

var (
	defaultsMu          sync.Mutex
	defaultsInitialized bool

	namespacePattern = regexp.MustCompile(`^__\S+__`)
)

type filterRegistry struct {
	store store.DataStore
	clock utils.Clock
}

// NewFilterRegistry returns the FilterRegistry backed by ds
func NewFilterRegistry(ds store.DataStore, clock utils.Clock) FilterRegistry {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &filterRegistry{
		store: ds,
		clock: clock,
	}
}

// InitializeDefaults writes the built-in filters once per process. The
// flag is set before the writes; a failed write is corrected by the
// next process start or by the migrate command.
func (r *filterRegistry) InitializeDefaults(ctx context.Context) error {
	defaultsMu.Lock()
	if defaultsInitialized {
		defaultsMu.Unlock()
		return nil
	}
	defaultsInitialized = true
	defaultsMu.Unlock()

	for _, filter := range model.BuiltInFilters() {
		entity, err := store.NewFilterEntity(filter, filter.Name)
		if err != nil {
			return errors.Wrap(err, "app: failed to encode built-in filter")
		}
		if err := r.store.InsertOrReplaceFilter(ctx, entity); err != nil {
			return withKind(ErrSaveFailed, err)
		}
	}
	return nil
}

// storedName namespaces name with the caller's short name when the
// caller is scoped.
func storedName(sc scope.Scope, name string) string {
	if sc.Active() {
		return "__" + sc.ShortName + "__" + name
	}
	return name
}

func displayName(sc scope.Scope, name string) string {
	if sc.MultiTenant {
		return namespacePattern.ReplaceAllString(name, "")
	}
	return name
}

func visible(sc scope.Scope, e store.FilterEntity) bool {
	return e.UserName == model.AnyUserName || sc.Owns(e.UserName)
}

func (r *filterRegistry) toModel(
	ctx context.Context,
	sc scope.Scope,
	e store.FilterEntity,
) model.DeviceListFilter {
	clauses, err := e.DecodeClauses()
	if err != nil {
		log.FromContext(ctx).
			Errorf("failed to decode the clauses of filter %s: %s", e.PartitionKey, err)
	}
	order, _ := model.ParseSortOrder(e.SortOrder)
	return model.DeviceListFilter{
		ID:          e.PartitionKey,
		Name:        displayName(sc, e.Name),
		Clauses:     clauses,
		SortColumn:  e.SortColumn,
		SortOrder:   order,
		SearchQuery: e.SearchQuery,
		UserName:    e.UserName,
		IsTemporary: e.IsTemporary,
		Timestamp:   e.Timestamp,
	}
}

// lookup returns the most recent record of filter id regardless of the
// caller's visibility.
func (r *filterRegistry) lookup(ctx context.Context, id string) (*store.FilterEntity, error) {
	if id == "" {
		return nil, nil
	}
	entities, err := r.store.QueryFilters(ctx, store.TableQuery{PartitionKey: id})
	if err != nil {
		return nil, storeError(err, "app: failed to look up filter")
	}
	var latest *store.FilterEntity
	for i := range entities {
		if latest == nil || entities[i].Timestamp.After(latest.Timestamp) {
			latest = &entities[i]
		}
	}
	return latest, nil
}

func (r *filterRegistry) nameTaken(
	ctx context.Context,
	sc scope.Scope,
	name, excludeID string,
) (bool, error) {
	entities, err := r.store.QueryFilters(ctx, store.TableQuery{
		RowKey: storedName(sc, name),
	})
	if err != nil {
		return false, storeError(err, "app: failed to check filter name")
	}
	for _, e := range entities {
		if e.PartitionKey != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *filterRegistry) CheckNameExists(
	ctx context.Context,
	sc scope.Scope,
	name string,
) (bool, error) {
	return r.nameTaken(ctx, sc, name, "")
}

// Get returns the filter with the given id, ErrNotFound if it does not
// exist or belongs to another user.
func (r *filterRegistry) Get(
	ctx context.Context,
	sc scope.Scope,
	id string,
) (*model.DeviceListFilter, error) {
	entity, err := r.lookup(ctx, id)
	if err != nil {
		return nil, err
	} else if entity == nil || !visible(sc, *entity) {
		return nil, ErrNotFound
	}
	filter := r.toModel(ctx, sc, *entity)
	return &filter, nil
}

func (r *filterRegistry) Save(
	ctx context.Context,
	sc scope.Scope,
	filter model.DeviceListFilter,
	force bool,
) (*model.DeviceListFilter, error) {
	if force && model.IsBuiltInFilterID(filter.ID) {
		return nil, ErrOperationNotAllowed
	}
	existing, err := r.lookup(ctx, filter.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		filter.ID = uuid.NewString()
		filter.UserName = sc.UserName
	} else {
		if !visible(sc, *existing) {
			return nil, ErrForbidden
		}
		if !force {
			prev := r.toModel(ctx, sc, *existing)
			return &prev, nil
		}
		filter.UserName = existing.UserName
	}

	rowKey := storedName(sc, filter.Name)
	if existing != nil && displayName(sc, existing.Name) == filter.Name {
		rowKey = existing.RowKey
	}
	renamed := existing == nil || existing.RowKey != rowKey
	if renamed && !filter.IsUnnamed() {
		taken, err := r.nameTaken(ctx, sc, filter.Name, filter.ID)
		if err != nil {
			return nil, err
		} else if taken {
			return nil, ErrDuplicateName
		}
	}

	filter.Timestamp = r.clock.Now()
	entity, err := store.NewFilterEntity(filter, rowKey)
	if err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	entity.Name = rowKey
	if err := r.store.InsertOrReplaceFilter(ctx, entity); err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	// The previous record goes only once the new one is written.
	if existing != nil && existing.RowKey != rowKey {
		err := r.store.DeleteFilter(ctx, existing.PartitionKey, existing.RowKey)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.FromContext(ctx).Warnf(
				"failed to remove the previous record of filter %s: %s",
				existing.PartitionKey, err,
			)
		}
	}
	saved := r.toModel(ctx, sc, *entity)
	return &saved, nil
}

func (r *filterRegistry) Touch(ctx context.Context, sc scope.Scope, id string) (bool, error) {
	entity, err := r.lookup(ctx, id)
	if err != nil {
		return false, err
	} else if entity == nil || !visible(sc, *entity) {
		return false, nil
	}
	err = r.store.TouchFilter(ctx, entity)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, withKind(ErrSaveFailed, err)
	}
	return true, nil
}

// Delete removes a filter. Filters that do not exist, or that the caller
// cannot see, are already deleted as far as the caller is concerned.
func (r *filterRegistry) Delete(ctx context.Context, sc scope.Scope, id string) error {
	if model.IsBuiltInFilterID(id) {
		return ErrOperationNotAllowed
	}
	entity, err := r.lookup(ctx, id)
	if err != nil {
		return err
	} else if entity == nil || !visible(sc, *entity) {
		return nil
	}
	err = r.store.DeleteFilter(ctx, entity.PartitionKey, entity.RowKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return withKind(ErrDeleteFailed, err)
	}
	return nil
}

func (r *filterRegistry) listable(
	ctx context.Context,
	sc scope.Scope,
	excludeTemporary bool,
) ([]model.DeviceListFilter, error) {
	entities, err := r.store.QueryFilters(ctx, store.TableQuery{})
	if err != nil {
		return nil, storeError(err, "app: failed to list filters")
	}
	filters := make([]model.DeviceListFilter, 0, len(entities))
	for _, e := range entities {
		if !visible(sc, e) || (excludeTemporary && e.IsTemporary) {
			continue
		}
		filter := r.toModel(ctx, sc, e)
		if filter.IsUnnamed() {
			continue
		}
		filters = append(filters, filter)
	}
	return filters, nil
}

// ListRecent returns the most recently used filters; "All Devices" is
// always first. max <= 0 returns every filter.
func (r *filterRegistry) ListRecent(
	ctx context.Context,
	sc scope.Scope,
	max int,
	excludeTemporary bool,
) ([]model.DeviceListFilter, error) {
	filters, err := r.listable(ctx, sc, excludeTemporary)
	if err != nil {
		return nil, err
	}
	now := r.clock.Now()
	for i := range filters {
		if filters[i].ID == model.DefaultFilterID {
			filters[i].Timestamp = now
		}
	}
	sort.SliceStable(filters, func(i, j int) bool {
		return filters[i].Timestamp.After(filters[j].Timestamp)
	})
	return query.Page(filters, 0, max), nil
}

// List returns the filters ordered by name
func (r *filterRegistry) List(
	ctx context.Context,
	sc scope.Scope,
	skip, take int,
	excludeTemporary bool,
) ([]model.DeviceListFilter, error) {
	filters, err := r.listable(ctx, sc, excludeTemporary)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(filters, func(i, j int) bool {
		return filters[i].Name < filters[j].Name
	})
	return query.Page(filters, skip, take), nil
}

// ListSuggestedClauses returns the suggestions by popularity, then recency
func (r *filterRegistry) ListSuggestedClauses(
	ctx context.Context,
	sc scope.Scope,
	skip, take int,
) ([]model.ClauseSuggestion, error) {
	entities, err := r.store.QueryClauses(ctx, store.TableQuery{})
	if err != nil {
		return nil, storeError(err, "app: failed to list suggested clauses")
	}
	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].HitCounter != entities[j].HitCounter {
			return entities[i].HitCounter > entities[j].HitCounter
		}
		return entities[i].Timestamp.After(entities[j].Timestamp)
	})
	suggestions := make([]model.ClauseSuggestion, 0, len(entities))
	for _, e := range query.Page(entities, skip, take) {
		suggestions = append(suggestions, e.Suggestion())
	}
	return suggestions, nil
}

// countSuggestion stores the clause with its hit counter incremented. The
// read and the write are separate store calls, so concurrent submissions
// of one clause may lose an increment.
func (r *filterRegistry) countSuggestion(
	ctx context.Context,
	sc scope.Scope,
	clause model.Clause,
) error {
	entity := store.NewClauseEntity(clause, 1, sc.UserName)
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := r.store.QueryClauses(ctx, store.TableQuery{
			PartitionKey: entity.PartitionKey,
			RowKey:       entity.RowKey,
		})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			entity.HitCounter = existing[0].HitCounter + 1
			err = r.store.ReplaceClause(ctx, entity)
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			entity.HitCounter = 1
		}
		err = r.store.InsertClause(ctx, entity)
		if !errors.Is(err, store.ErrConflict) {
			return err
		}
	}
	return errors.Errorf("app: suggested clause %s kept changing", entity.PartitionKey)
}

// SaveSuggestedClauses counts a hit for every clause and returns the
// number of clauses processed. Clauses failing to save are only logged.
func (r *filterRegistry) SaveSuggestedClauses(
	ctx context.Context,
	sc scope.Scope,
	clauses []model.Clause,
) (int, error) {
	_, err := fanOut(ctx, "save_suggested_clause", clauses,
		func(ctx context.Context, c model.Clause) error {
			return r.countSuggestion(ctx, sc, c)
		})
	if err != nil {
		return 0, err
	}
	return len(clauses), nil
}

// DeleteSuggestedClauses removes the suggestions matching clauses and
// returns the number actually deleted.
func (r *filterRegistry) DeleteSuggestedClauses(
	ctx context.Context,
	sc scope.Scope,
	clauses []model.Clause,
) (int, error) {
	return fanOut(ctx, "delete_suggested_clause", clauses,
		func(ctx context.Context, c model.Clause) error {
			c = c.Normalize()
			return r.store.DeleteClause(ctx, c.PartitionKey(), c.RowKey())
		})
}

// fanOut runs fn for every item concurrently and waits for all of them.
// Failed items are logged and left out of the returned count.
func fanOut[T any](
	ctx context.Context,
	operation string,
	items []T,
	fn func(context.Context, T) error,
) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	l := log.FromContext(ctx)
	results := make([]error, len(items))
	var eg errgroup.Group
	for i := range items {
		i := i
		eg.Go(func() error {
			results[i] = fn(ctx, items[i])
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, withKind(ErrCancelled, err)
	}
	var count int
	for i, err := range results {
		if err == nil {
			count++
			continue
		}
		BatchItemFailures.WithLabelValues(operation).Inc()
		l.Warnf("%s: item %d failed: %s", strings.ReplaceAll(operation, "_", " "), i, err)
	}
	return count, nil
}
