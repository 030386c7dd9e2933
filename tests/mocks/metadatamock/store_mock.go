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

// Package metadatamock provides a mock implementation of the metadata store for testing.
package metadatamock

import (
	"github.com/asgardeo/mdq/internal/metadata"
)

// MockStore is a mock implementation of the metadata StoreInterface.
type MockStore struct {
	// MockListEntities defines the behavior for the ListEntities method.
	MockListEntities func(metadataSet string) ([]metadata.Entity, error)

	// MockGetEntity defines the behavior for the GetEntity method.
	MockGetEntity func(entityID, metadataSet string) (*metadata.Entity, error)

	// MockListHostedSPs defines the behavior for the ListHostedSPs method.
	MockListHostedSPs func() ([]metadata.Entity, error)

	// ListEntitiesCalls tracks the metadata sets passed to ListEntities.
	ListEntitiesCalls []string

	// GetEntityCalls tracks the arguments passed to GetEntity.
	GetEntityCalls []struct {
		EntityID    string
		MetadataSet string
	}

	// ListHostedSPsCalls tracks the calls to ListHostedSPs.
	ListHostedSPsCalls int
}

// ListEntities mocks the ListEntities method of the StoreInterface.
func (m *MockStore) ListEntities(metadataSet string) ([]metadata.Entity, error) {
	m.ListEntitiesCalls = append(m.ListEntitiesCalls, metadataSet)

	if m.MockListEntities != nil {
		return m.MockListEntities(metadataSet)
	}
	return nil, nil
}

// GetEntity mocks the GetEntity method of the StoreInterface.
func (m *MockStore) GetEntity(entityID, metadataSet string) (*metadata.Entity, error) {
	m.GetEntityCalls = append(m.GetEntityCalls, struct {
		EntityID    string
		MetadataSet string
	}{entityID, metadataSet})

	if m.MockGetEntity != nil {
		return m.MockGetEntity(entityID, metadataSet)
	}
	return nil, metadata.ErrEntityNotFound
}

// ListHostedSPs mocks the ListHostedSPs method of the StoreInterface.
func (m *MockStore) ListHostedSPs() ([]metadata.Entity, error) {
	m.ListHostedSPsCalls++
	if m.MockListHostedSPs != nil {
		return m.MockListHostedSPs()
	}
	return nil, nil
}
