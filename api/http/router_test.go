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

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	app_mocks "github.com/mendersoftware/deviceregistry/app/mocks"
	"github.com/mendersoftware/deviceregistry/scope"
)

const (
	JWTAlice = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJhbGljZUBleGFtcGxlLmNvbSIsIm1lbmRlci51c2VyIjp0cnVlLCJtZW5kZXIudGVuYW50IjoiYWJjZCJ9." +
		"c2lnbmF0dXJl"
	JWTAdmin = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJhZG1pbkBleGFtcGxlLmNvbSIsIm1lbmRlci51c2VyIjp0cnVlLCJtZW5kZXIudGVuYW50IjoiYWJjZCJ9." +
		"c2lnbmF0dXJl"
	// JWTDevice carries a device identity
	JWTDevice = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiIxMjM0NTY3ODkwIiwibWVuZGVyLnRlbmFudCI6ImFiY2QiLCJtZW5kZXIuZGV2aWNlIjp0cnVlfQ." +
		"c2lnbmF0dXJl"

	JWTTenantID = "abcd"
	adminList   = "admin@example.com"
)

var (
	scopeAlice = scope.New("alice@example.com", adminList)
	scopeAdmin = scope.New("admin@example.com", adminList)
)

var contextMatcher = mock.MatchedBy(func(_ context.Context) bool {
	return true
})

type testRouter struct {
	*gin.Engine
	App     *app_mocks.App
	Filters *app_mocks.FilterRegistry
	Devices *app_mocks.DeviceRegistry
	Jobs    *app_mocks.JobRegistry
}

func newTestRouter(t *testing.T) *testRouter {
	r := &testRouter{
		App:     &app_mocks.App{},
		Filters: &app_mocks.FilterRegistry{},
		Devices: &app_mocks.DeviceRegistry{},
		Jobs:    &app_mocks.JobRegistry{},
	}
	r.App.On("Filters").Return(r.Filters).Maybe()
	r.App.On("Devices").Return(r.Devices).Maybe()
	r.App.On("Jobs").Return(r.Jobs).Maybe()
	r.Engine, _ = NewRouter(r.App, nil, &Config{SuperAdminList: adminList})
	t.Cleanup(func() {
		r.Filters.AssertExpectations(t)
		r.Devices.AssertExpectations(t)
		r.Jobs.AssertExpectations(t)
	})
	return r
}

// do serves a request authenticated with jwt; body is JSON encoded
// unless it is already a string.
func (r *testRouter) do(
	method, url, jwt string,
	body interface{},
) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, "http://localhost"+url, reader)
	if err != nil {
		panic(err)
	}
	if jwt != "" {
		req.Header.Set(headerAuthorization, "Bearer "+jwt)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		panic(err)
	}
	return v
}
