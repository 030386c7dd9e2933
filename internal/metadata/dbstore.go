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

package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/asgardeo/mdq/internal/system/database/provider"
	"github.com/asgardeo/mdq/internal/system/log"
)

// dbBasedStore serves entity metadata from the metadata database. Each row holds
// the full entity record as a JSON document alongside its lookup columns.
type dbBasedStore struct {
	dbProvider provider.DBProviderInterface
}

func newDBBasedStore() (*dbBasedStore, error) {
	return &dbBasedStore{
		dbProvider: provider.GetDBProvider(),
	}, nil
}

// ListEntities returns all entities of the given metadata set ordered by entity ID.
func (s *dbBasedStore) ListEntities(metadataSet string) ([]Entity, error) {
	dbClient, err := s.dbProvider.GetDBClient("metadata")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetEntityList, metadataSet)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return buildEntitiesFromResultSet(results)
}

// GetEntity returns the entity with the given entity ID from the given metadata set.
func (s *dbBasedStore) GetEntity(entityID, metadataSet string) (*Entity, error) {
	dbClient, err := s.dbProvider.GetDBClient("metadata")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetEntityByID, entityID, metadataSet)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEntityNotFound
	}
	if len(results) > 1 {
		return nil, fmt.Errorf("unexpected number of results for entity ID: %s", entityID)
	}

	entity, err := buildEntityFromResultRow(results[0])
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// ListHostedSPs returns the service providers hosted by this deployment.
func (s *dbBasedStore) ListHostedSPs() ([]Entity, error) {
	dbClient, err := s.dbProvider.GetDBClient("metadata")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetHostedSPList)
	if err != nil {
		return nil, fmt.Errorf("failed to list hosted SPs: %w", err)
	}
	return buildEntitiesFromResultSet(results)
}

func buildEntitiesFromResultSet(results []map[string]interface{}) ([]Entity, error) {
	entities := make([]Entity, 0, len(results))
	for _, row := range results {
		entity, err := buildEntityFromResultRow(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}

func buildEntityFromResultRow(row map[string]interface{}) (*Entity, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBMetadataStore"))

	var data []byte
	switch v := row["data"].(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, fmt.Errorf("failed to parse data field in result row")
	}

	var entity Entity
	if err := json.Unmarshal(data, &entity); err != nil {
		logger.Error("Failed to unmarshal entity record", log.Error(err))
		return nil, fmt.Errorf("failed to unmarshal entity record: %w", err)
	}

	if entityID, ok := row["entity_id"].(string); ok && entity.EntityID == "" {
		entity.EntityID = entityID
	}
	if metadataSet, ok := row["metadata_set"].(string); ok && entity.MetadataSet == "" {
		entity.MetadataSet = metadataSet
	}
	return &entity, nil
}
