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
	"os"
	"path/filepath"

	"github.com/asgardeo/mdq/internal/system/config"
	"github.com/asgardeo/mdq/internal/system/log"
)

const defaultHostedSPFile = "saml20-sp-hosted.json"

// fileBasedStore serves entity metadata from JSON files, one file per metadata set.
// The files are loaded once at construction and kept in memory in file order, so
// repeated listings iterate the entities in the same order.
type fileBasedStore struct {
	sets     map[string][]Entity
	hosted   []Entity
	setOrder []string
}

func newFileBasedStore(mdConfig config.MetadataConfig) (*fileBasedStore, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FileMetadataStore"))

	directory := mdConfig.Directory
	if directory == "" {
		directory = filepath.Join(config.GetMDQRuntime().MDQHome, "repository", "metadata")
	}
	if info, err := os.Stat(directory); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("metadata directory %s is not accessible", directory)
	}

	store := &fileBasedStore{
		sets: make(map[string][]Entity),
	}
	for _, set := range mdConfig.Sets {
		entities, err := loadEntityFile(filepath.Join(directory, set+".json"), set)
		if err != nil {
			return nil, fmt.Errorf("failed to load metadata set %s: %w", set, err)
		}
		store.sets[set] = entities
		store.setOrder = append(store.setOrder, set)
		logger.Debug("Loaded metadata set", log.String("metadataSet", set),
			log.Int("entityCount", len(entities)))
	}

	hostedFile := mdConfig.HostedSPFile
	if hostedFile == "" {
		hostedFile = defaultHostedSPFile
	}
	hostedPath := filepath.Join(directory, hostedFile)
	if _, err := os.Stat(hostedPath); err == nil {
		hosted, err := loadEntityFile(hostedPath, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load hosted SP metadata: %w", err)
		}
		store.hosted = hosted
	}

	return store, nil
}

func loadEntityFile(path, metadataSet string) ([]Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entities []Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, err
	}
	for i := range entities {
		if entities[i].MetadataSet == "" {
			entities[i].MetadataSet = metadataSet
		}
	}
	return entities, nil
}

// ListEntities returns all entities of the given metadata set in file order.
func (s *fileBasedStore) ListEntities(metadataSet string) ([]Entity, error) {
	entities, ok := s.sets[metadataSet]
	if !ok {
		return nil, nil
	}
	result := make([]Entity, len(entities))
	copy(result, entities)
	return result, nil
}

// GetEntity returns the entity with the given entity ID from the given metadata set.
func (s *fileBasedStore) GetEntity(entityID, metadataSet string) (*Entity, error) {
	for _, entity := range s.sets[metadataSet] {
		if entity.EntityID == entityID {
			found := entity
			return &found, nil
		}
	}
	return nil, ErrEntityNotFound
}

// ListHostedSPs returns the service providers hosted by this deployment.
func (s *fileBasedStore) ListHostedSPs() ([]Entity, error) {
	result := make([]Entity, len(s.hosted))
	copy(result, s.hosted)
	return result, nil
}
