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

package twin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendersoftware/deviceregistry/model"
)

func tenantContext() context.Context {
	ctx := identity.WithContext(context.Background(), &identity.Identity{
		Subject: "alice@example.com",
		Tenant:  "tenant1",
	})
	return requestid.WithContext(ctx, "test")
}

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 1)
}

func TestGetTwin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name string

		Status int
		Body   string
		ETag   string

		Twin  *model.Twin
		Error string
	}{{
		Name: "ok",

		Status: http.StatusOK,
		Body:   `{"deviceId":"dev-1","tags":{"__UserName__":"alice"}}`,
		ETag:   "AAAA",

		Twin: &model.Twin{
			DeviceID: "dev-1",
			ETag:     "AAAA",
			Tags:     map[string]interface{}{model.OwnerTagName: "alice"},
		},
	}, {
		Name: "not found",

		Status: http.StatusNotFound,
	}, {
		Name: "error, internal",

		Status: http.StatusInternalServerError,
		Error:  "twin: unexpected HTTP status from twin service: 500 Internal Server Error",
	}, {
		Name: "error, bad body",

		Status: http.StatusOK,
		Body:   `{"deviceId":`,
		Error:  "twin: error parsing twin",
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t,
					"/api/internal/v1/devicetwin/tenants/tenant1/twins/dev-1",
					r.URL.Path)
				assert.Equal(t, "test", r.Header.Get(requestid.RequestIdHeader))
				if tc.ETag != "" {
					w.Header().Set("ETag", tc.ETag)
				}
				w.WriteHeader(tc.Status)
				_, _ = w.Write([]byte(tc.Body))
			})

			twin, err := client.GetTwin(tenantContext(), "dev-1")
			if tc.Error != "" {
				assert.ErrorContains(t, err, tc.Error)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Twin, twin)
		})
	}
}

func TestUpdateTwin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name string

		Twin   *model.Twin
		Status int

		IfMatch string
		Error   error
	}{{
		Name: "ok, wildcard etag",

		Twin:   model.NewTwin("dev-1"),
		Status: http.StatusNoContent,

		IfMatch: model.WildcardETag,
	}, {
		Name: "ok, explicit etag",

		Twin:   &model.Twin{DeviceID: "dev-1", ETag: "AAAB"},
		Status: http.StatusOK,

		IfMatch: "AAAB",
	}, {
		Name: "error, etag mismatch",

		Twin:   &model.Twin{DeviceID: "dev-1", ETag: "AAAB"},
		Status: http.StatusPreconditionFailed,

		IfMatch: "AAAB",
		Error:   ErrPreconditionFailed,
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPatch, r.Method)
				assert.Equal(t, tc.IfMatch, r.Header.Get("If-Match"))
				var twin model.Twin
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&twin))
				assert.Equal(t, "dev-1", twin.DeviceID)
				w.WriteHeader(tc.Status)
			})

			err := client.UpdateTwin(tenantContext(), "dev-1", tc.Twin)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQueryDevices(t *testing.T) {
	t.Parallel()

	var query queryRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t,
			"/api/internal/v1/devicetwin/tenants/tenant1/query",
			r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		_, _ = w.Write([]byte(`[{"deviceId":"dev-1"},{"deviceId":"dev-2"}]`))
	})

	twins, err := client.QueryDevices(tenantContext(), "tags.location = 'Oslo'")
	require.NoError(t, err)
	assert.Len(t, twins, 2)
	assert.Equal(t,
		"SELECT * FROM devices WHERE tags.location = 'Oslo'",
		query.Query)

	_, err = client.QueryDevices(tenantContext(), "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM devices", query.Query)
}

func TestDeviceCount(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/internal/v1/devicetwin/tenants/tenant1/count":
			_, _ = w.Write([]byte(`{"count":42}`))
		case "/api/internal/v1/devicetwin/tenants/tenant1/query":
			_, _ = w.Write([]byte(`[{"total":7}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	count, err := client.DeviceCount(tenantContext())
	assert.NoError(t, err)
	assert.Equal(t, 42, count)

	count, err = client.DeviceCountQuery(tenantContext(),
		"SELECT COUNT() AS total FROM devices", "total")
	assert.NoError(t, err)
	assert.Equal(t, 7, count)

	_, err = client.DeviceCountQuery(tenantContext(),
		"SELECT COUNT() AS total FROM devices", "other")
	assert.ErrorContains(t, err, `invalid "other" in count result`)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithCancel(tenantContext())
	cancel()

	_, err := client.GetTwin(ctx, "dev-1")
	assert.ErrorIs(t, err, context.Canceled)
}
