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
	"errors"
	"fmt"

	"github.com/asgardeo/mdq/internal/system/config"
)

// ErrEntityNotFound is returned when no entity with the given identifier exists
// in the requested metadata set.
var ErrEntityNotFound = errors.New("entity not found")

// StoreInterface defines the operations for reading entity metadata.
type StoreInterface interface {
	// ListEntities returns all entities of the given metadata set in a stable order.
	ListEntities(metadataSet string) ([]Entity, error)

	// GetEntity returns the entity with the given entity ID from the given metadata
	// set, or ErrEntityNotFound.
	GetEntity(entityID, metadataSet string) (*Entity, error)

	// ListHostedSPs returns the service providers hosted by this deployment.
	ListHostedSPs() ([]Entity, error)
}

const (
	sourceTypeFile     = "file"
	sourceTypeDatabase = "database"
)

// NewStore creates the metadata store configured for this deployment.
func NewStore() (StoreInterface, error) {
	mdConfig := config.GetMDQRuntime().Config.Metadata
	switch mdConfig.Source {
	case sourceTypeFile, "":
		return newFileBasedStore(mdConfig)
	case sourceTypeDatabase:
		return newDBBasedStore()
	default:
		return nil, fmt.Errorf("metadata source must be one of %s", "{file, database}")
	}
}
