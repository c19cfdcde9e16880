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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "http://localhost/?"+rawQuery, nil)
	return c
}

func TestPaging(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name  string
		Query string

		Skip  int
		Take  int
		Error bool
	}{{
		Name: "defaults",
		Take: 25,
	}, {
		Name:  "decimal",
		Query: "skip=10&take=5",
		Skip:  10,
		Take:  5,
	}, {
		Name:  "leading zeros are decimal",
		Query: "skip=010&take=08",
		Skip:  10,
		Take:  8,
	}, {
		Name:  "hexadecimal",
		Query: "skip=0x10",
		Error: true,
	}, {
		Name:  "not a number",
		Query: "take=many",
		Error: true,
	}, {
		Name:  "negative",
		Query: "skip=-1",
		Error: true,
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			skip, take, err := paging(queryContext(tc.Query), 25)
			if tc.Error {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Skip, skip)
			assert.Equal(t, tc.Take, take)
		})
	}
}

func TestQueryBool(t *testing.T) {
	t.Parallel()

	v, err := queryBool(queryContext(""), ParamForce, true)
	assert.NoError(t, err)
	assert.True(t, v)
	v, err = queryBool(queryContext("force=0"), ParamForce, true)
	assert.NoError(t, err)
	assert.False(t, v)
	_, err = queryBool(queryContext("force=please"), ParamForce, false)
	assert.Error(t, err)
}
