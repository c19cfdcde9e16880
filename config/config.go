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

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingListen is the config key for the listen address
	SettingListen = "listen"
	// SettingListenDefault is the default value for the listen address
	SettingListenDefault = ":8080"

	// SettingNatsURI is the config key for the nats uri
	SettingNatsURI = "nats_uri"
	// SettingNatsURIDefault is the default value for the nats uri
	SettingNatsURIDefault = "nats://localhost:4222"

	// SettingMongo is the config key for the mongo URL
	SettingMongo = "mongo_url"
	// SettingMongoDefault is the default value for the mongo URL
	SettingMongoDefault = "mongodb://mender-mongo:27017"

	// SettingDbName is the config key for the mongo database name
	SettingDbName = "mongo_dbname"
	// SettingDbNameDefault is the default value for the mongo database name
	SettingDbNameDefault = "deviceregistry"

	// SettingDbSSL is the config key for the mongo SSL setting
	SettingDbSSL = "mongo_ssl"
	// SettingDbSSLDefault is the default value for the mongo SSL setting
	SettingDbSSLDefault = false

	// SettingDbSSLSkipVerify is the config key for the mongo SSL skip verify setting
	SettingDbSSLSkipVerify = "mongo_ssl_skipverify"
	// SettingDbSSLSkipVerifyDefault is the default value for the mongo SSL skip verify setting
	SettingDbSSLSkipVerifyDefault = false

	// SettingDbUsername is the config key for the mongo username
	SettingDbUsername = "mongo_username"

	// SettingDbPassword is the config key for the mongo password
	SettingDbPassword = "mongo_password"

	// SettingDebugLog is the config key for the turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log enabling
	SettingDebugLogDefault = false

	// SettingSuperAdminList is the config key for the list of super
	// administrators. A non-empty list turns on multi-tenant isolation
	// of devices, filters and jobs.
	SettingSuperAdminList = "super_admin_list"
	// SettingSuperAdminListDefault disables multi-tenancy
	SettingSuperAdminListDefault = ""

	// SettingRequireJobCreator is the config key for stamping and
	// filtering jobs by their creator, independently of multi-tenancy
	SettingRequireJobCreator = "require_job_creator"
	// SettingRequireJobCreatorDefault is the default value for job
	// creator stamping
	SettingRequireJobCreatorDefault = false

	// SettingTwinServiceURL is the config key for the device twin
	// service; when empty the registry runs in single-store mode
	SettingTwinServiceURL = "twin_service_url"
	// SettingTwinServiceURLDefault is the default twin service URL
	SettingTwinServiceURLDefault = ""

	// SettingJobServiceURL is the config key for the device job service
	SettingJobServiceURL = "job_service_url"
	// SettingJobServiceURLDefault is the default job service URL
	SettingJobServiceURLDefault = "http://mender-iot-jobs:8080"

	// SettingWorkflowsURL is the config key for the workflows url
	SettingWorkflowsURL = "workflows_url"
	// SettingWorkflowsURLDefault is the default value for the workflows url
	SettingWorkflowsURLDefault = "http://mender-workflows-server:8080"

	// SettingEnableAuditLogs is the config key for submitting audit logs
	SettingEnableAuditLogs = "enable_audit"
	// SettingEnableAuditLogsDefault is the default value for audit logs
	SettingEnableAuditLogsDefault = false

	// SettingHTTPClientTimeout is the timeout in seconds for outgoing
	// requests to the twin and job services
	SettingHTTPClientTimeout = "http_client_timeout"
	// SettingHTTPClientTimeoutDefault is the default client timeout
	SettingHTTPClientTimeoutDefault = 10

	// SettingFilterTableName is the config key for the filter collection
	SettingFilterTableName = "filter_table_name"
	// SettingFilterTableNameDefault is the default filter collection
	SettingFilterTableNameDefault = "filters"

	// SettingClauseTableName is the config key for the suggested clause
	// collection
	SettingClauseTableName = "suggested_clause_table_name"
	// SettingClauseTableNameDefault is the default suggested clause
	// collection
	SettingClauseTableNameDefault = "suggested_clauses"

	// SettingJobTableName is the config key for the job collection
	SettingJobTableName = "job_table_name"
	// SettingJobTableNameDefault is the default job collection
	SettingJobTableNameDefault = "jobs"

	// SettingWSAllowedOrigins is the config key for the origins allowed
	// to open the device event stream
	SettingWSAllowedOrigins = "ws_allowed_origins"
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingListen, Value: SettingListenDefault},
		{Key: SettingNatsURI, Value: SettingNatsURIDefault},
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
		{Key: SettingSuperAdminList, Value: SettingSuperAdminListDefault},
		{Key: SettingRequireJobCreator, Value: SettingRequireJobCreatorDefault},
		{Key: SettingTwinServiceURL, Value: SettingTwinServiceURLDefault},
		{Key: SettingJobServiceURL, Value: SettingJobServiceURLDefault},
		{Key: SettingWorkflowsURL, Value: SettingWorkflowsURLDefault},
		{Key: SettingEnableAuditLogs, Value: SettingEnableAuditLogsDefault},
		{Key: SettingHTTPClientTimeout, Value: SettingHTTPClientTimeoutDefault},
		{Key: SettingFilterTableName, Value: SettingFilterTableNameDefault},
		{Key: SettingClauseTableName, Value: SettingClauseTableNameDefault},
		{Key: SettingJobTableName, Value: SettingJobTableNameDefault},
	}
)
