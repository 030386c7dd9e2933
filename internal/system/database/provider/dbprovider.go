/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"path"
	"sync"

	"github.com/asgardeo/mdq/internal/system/config"
	"github.com/asgardeo/mdq/internal/system/database/client"
	"github.com/asgardeo/mdq/internal/system/database/model"
	"github.com/asgardeo/mdq/internal/system/log"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	metadataClient client.DBClientInterface
	metadataMutex  sync.RWMutex
	cacheClient    client.DBClientInterface
	cacheMutex     sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
// Not required to close the returned client manually since it manages its own connection pool.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case "metadata":
		metadataDBConfig := config.GetMDQRuntime().Config.Database.Metadata
		return d.getOrInitClient(&d.metadataClient, &d.metadataMutex, metadataDBConfig)
	case "cache":
		cacheDBConfig := config.GetMDQRuntime().Config.Database.Cache
		return d.getOrInitClient(&d.cacheClient, &d.cacheMutex, cacheDBConfig)
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// getOrInitClient gets or initializes a DB client with locking.
func (d *DBProvider) getOrInitClient(
	clientPtr *client.DBClientInterface,
	mutex *sync.RWMutex,
	dataSource config.DataSource,
) (client.DBClientInterface, error) {
	mutex.RLock()
	if *clientPtr != nil {
		defer mutex.RUnlock()
		return *clientPtr, nil
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if *clientPtr != nil {
		return *clientPtr, nil
	}

	dbClient, err := newDBClient(dataSource)
	if err != nil {
		return nil, err
	}
	*clientPtr = dbClient
	return dbClient, nil
}

// newDBClient opens a database connection for the given data source.
func newDBClient(dataSource config.DataSource) (client.DBClientInterface, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))

	driverName, dsn, err := resolveDSN(dataSource)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		logger.Error("Failed to open database connection", log.Error(err),
			log.String("type", dataSource.Type))
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return client.NewDBClient(model.NewDB(db), dataSource.Type), nil
}

// resolveDSN builds the driver name and DSN for the given data source.
func resolveDSN(dataSource config.DataSource) (string, string, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Name,
			dataSource.Username, dataSource.Password, dataSource.SSLMode)
		return "postgres", dsn, nil
	case dataSourceTypeSQLite:
		dsn := path.Join(config.GetMDQRuntime().MDQHome, dataSource.Path)
		if dataSource.Options != "" {
			dsn = dsn + "?" + dataSource.Options
		}
		return "sqlite", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}
}
