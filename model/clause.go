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

package model

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ClauseType is the comparison operator of a filter clause
type ClauseType string

// Supported clause operators
const (
	ClauseEQ         ClauseType = "EQ"
	ClauseNE         ClauseType = "NE"
	ClauseLT         ClauseType = "LT"
	ClauseLE         ClauseType = "LE"
	ClauseGT         ClauseType = "GT"
	ClauseGE         ClauseType = "GE"
	ClauseIN         ClauseType = "IN"
	ClauseCONTAINS   ClauseType = "CONTAINS"
	ClauseSTARTSWITH ClauseType = "STARTSWITH"
	ClauseENDSWITH   ClauseType = "ENDSWITH"
)

var clauseTypes = []ClauseType{
	ClauseEQ, ClauseNE, ClauseLT, ClauseLE, ClauseGT, ClauseGE,
	ClauseIN, ClauseCONTAINS, ClauseSTARTSWITH, ClauseENDSWITH,
}

// ParseClauseType parses s case-insensitively; unknown values degrade to
// ClauseEQ.
func ParseClauseType(s string) ClauseType {
	s = strings.TrimSpace(s)
	for _, t := range clauseTypes {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return ClauseEQ
}

// UnmarshalJSON decodes a clause type without ever failing on unknown
// values.
func (t *ClauseType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ClauseEQ
		return nil
	}
	*t = ParseClauseType(s)
	return nil
}

// ClauseDataType is the type the clause value is coerced to when evaluated
type ClauseDataType string

// Supported clause data types
const (
	DataTypeString   ClauseDataType = "String"
	DataTypeNumber   ClauseDataType = "Number"
	DataTypeBoolean  ClauseDataType = "Boolean"
	DataTypeDateTime ClauseDataType = "DateTime"
)

var clauseDataTypes = []ClauseDataType{
	DataTypeString, DataTypeNumber, DataTypeBoolean, DataTypeDateTime,
}

// ParseClauseDataType parses s case-insensitively; unknown values degrade
// to DataTypeString.
func ParseClauseDataType(s string) ClauseDataType {
	s = strings.TrimSpace(s)
	for _, t := range clauseDataTypes {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return DataTypeString
}

// UnmarshalJSON decodes a data type without ever failing on unknown values.
func (t *ClauseDataType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = DataTypeString
		return nil
	}
	*t = ParseClauseDataType(s)
	return nil
}

// columnNamePattern accepts dotted identifier paths only
var columnNamePattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[\w$]+)*$`)

// IsValidColumnName returns true if name is a dotted identifier path
func IsValidColumnName(name string) bool {
	return columnNamePattern.MatchString(name)
}

// Clause is a single predicate of a device list filter
type Clause struct {
	ColumnName     string         `json:"columnName" bson:"column_name"`
	ClauseType     ClauseType     `json:"clauseType" bson:"clause_type"`
	ClauseValue    string         `json:"clauseValue" bson:"clause_value"`
	ClauseDataType ClauseDataType `json:"clauseDataType" bson:"clause_data_type"`
}

// Validate checks the clause is usable
func (c Clause) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ColumnName,
			validation.Required,
			validation.Match(columnNamePattern),
		),
	)
}

// Normalize returns a copy of c with the enum values replaced by their
// canonical (or default) form.
func (c Clause) Normalize() Clause {
	c.ClauseType = ParseClauseType(string(c.ClauseType))
	c.ClauseDataType = ParseClauseDataType(string(c.ClauseDataType))
	return c
}

// ClauseSuggestion is a clause remembered for auto-completion together
// with the number of times it has been submitted.
type ClauseSuggestion struct {
	Clause
	HitCounter int       `json:"hitCounter"`
	Timestamp  time.Time `json:"timestamp"`
}

// PartitionKey groups suggestions by column and operator
func (c Clause) PartitionKey() string {
	c = c.Normalize()
	return c.ColumnName + "__" + string(c.ClauseType)
}

// RowKey identifies a suggestion inside its partition
func (c Clause) RowKey() string {
	c = c.Normalize()
	return c.ClauseValue + "__" + string(c.ClauseDataType)
}
