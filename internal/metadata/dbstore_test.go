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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/mdq/internal/system/database/client"
	"github.com/asgardeo/mdq/internal/system/database/model"
	"github.com/asgardeo/mdq/tests/mocks/databasemock"
)

type DBStoreTestSuite struct {
	suite.Suite
	dbClient   *databasemock.MockDBClient
	dbProvider *databasemock.MockDBProvider
	store      *dbBasedStore
}

func TestDBStoreSuite(t *testing.T) {
	suite.Run(t, new(DBStoreTestSuite))
}

func (suite *DBStoreTestSuite) SetupTest() {
	suite.dbClient = &databasemock.MockDBClient{}
	suite.dbProvider = &databasemock.MockDBProvider{
		MockGetDBClient: func(dbName string) (client.DBClientInterface, error) {
			return suite.dbClient, nil
		},
	}
	suite.store = &dbBasedStore{dbProvider: suite.dbProvider}
}

func (suite *DBStoreTestSuite) TestListEntities() {
	t := suite.T()

	suite.dbClient.MockQuery = func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		assert.Equal(t, queryGetEntityList.ID, query.ID)
		assert.Equal(t, []interface{}{"saml20-idp-remote"}, args)
		return []map[string]interface{}{
			{
				"entity_id":    "https://idp.example.net/shibboleth",
				"metadata_set": "saml20-idp-remote",
				"data":         `{"entity_id": "https://idp.example.net/shibboleth"}`,
			},
			{
				"entity_id":    "https://idp.example.org/shibboleth",
				"metadata_set": "saml20-idp-remote",
				"data":         `{"entity_id": "https://idp.example.org/shibboleth", "display_name": {"en": "Example IdP"}}`,
			},
		}, nil
	}

	entities, err := suite.store.ListEntities("saml20-idp-remote")
	assert.NoError(t, err)
	if !assert.Len(t, entities, 2) {
		return
	}
	assert.Equal(t, "https://idp.example.net/shibboleth", entities[0].EntityID)
	assert.Equal(t, "saml20-idp-remote", entities[0].MetadataSet)
	assert.Equal(t, "Example IdP", entities[1].DisplayName["en"])
	assert.Equal(t, []string{"metadata"}, suite.dbProvider.GetDBClientCalls)
}

func (suite *DBStoreTestSuite) TestListEntitiesEmptySet() {
	t := suite.T()

	entities, err := suite.store.ListEntities("saml20-sp-remote")
	assert.NoError(t, err)
	assert.Empty(t, entities)
}

func (suite *DBStoreTestSuite) TestGetEntity() {
	t := suite.T()

	suite.dbClient.MockQuery = func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		assert.Equal(t, queryGetEntityByID.ID, query.ID)
		assert.Equal(t, []interface{}{"https://idp.example.org/shibboleth", "saml20-idp-remote"}, args)
		return []map[string]interface{}{
			{
				"entity_id":    "https://idp.example.org/shibboleth",
				"metadata_set": "saml20-idp-remote",
				// Drivers may report the document column as raw bytes.
				"data": []byte(`{"entity_id": "https://idp.example.org/shibboleth", "scope": ["example.org"]}`),
			},
		}, nil
	}

	entity, err := suite.store.GetEntity("https://idp.example.org/shibboleth", "saml20-idp-remote")
	assert.NoError(t, err)
	if assert.NotNil(t, entity) {
		assert.Equal(t, "https://idp.example.org/shibboleth", entity.EntityID)
		assert.Equal(t, []string{"example.org"}, entity.Scope)
		assert.Equal(t, "saml20-idp-remote", entity.MetadataSet)
	}
}

func (suite *DBStoreTestSuite) TestGetEntityNotFound() {
	t := suite.T()

	entity, err := suite.store.GetEntity("https://unknown.example.org/shibboleth", "saml20-idp-remote")
	assert.ErrorIs(t, err, ErrEntityNotFound)
	assert.Nil(t, entity)
}

func (suite *DBStoreTestSuite) TestGetEntityDuplicateRowsIsAnError() {
	t := suite.T()

	row := map[string]interface{}{
		"entity_id":    "https://idp.example.org/shibboleth",
		"metadata_set": "saml20-idp-remote",
		"data":         `{"entity_id": "https://idp.example.org/shibboleth"}`,
	}
	suite.dbClient.MockQuery = func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{row, row}, nil
	}

	entity, err := suite.store.GetEntity("https://idp.example.org/shibboleth", "saml20-idp-remote")
	assert.Error(t, err)
	assert.Nil(t, entity)
}

func (suite *DBStoreTestSuite) TestGetEntityQueryError() {
	t := suite.T()

	suite.dbClient.MockQuery = func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		return nil, errors.New("connection lost")
	}

	_, err := suite.store.GetEntity("https://idp.example.org/shibboleth", "saml20-idp-remote")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEntityNotFound)
}

func (suite *DBStoreTestSuite) TestListHostedSPs() {
	t := suite.T()

	suite.dbClient.MockQuery = func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		assert.Equal(t, queryGetHostedSPList.ID, query.ID)
		assert.Empty(t, args)
		return []map[string]interface{}{
			{
				"entity_id":    "https://proxy.example.org/module.php/saml/sp/metadata.php/default-sp",
				"metadata_set": "saml20-sp-hosted",
				"data":         `{}`,
			},
		}, nil
	}

	hosted, err := suite.store.ListHostedSPs()
	assert.NoError(t, err)
	if assert.Len(t, hosted, 1) {
		// Lookup columns backfill fields the document itself omits.
		assert.Equal(t, "https://proxy.example.org/module.php/saml/sp/metadata.php/default-sp",
			hosted[0].EntityID)
		assert.Equal(t, "saml20-sp-hosted", hosted[0].MetadataSet)
	}
}

func (suite *DBStoreTestSuite) TestUnparsableDocumentIsAnError() {
	t := suite.T()

	suite.dbClient.MockQuery = func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{
			{"entity_id": "https://idp.example.org/shibboleth", "data": "{not json"},
		}, nil
	}

	_, err := suite.store.ListEntities("saml20-idp-remote")
	assert.Error(t, err)
}

func (suite *DBStoreTestSuite) TestClientErrorIsPropagated() {
	t := suite.T()

	suite.dbProvider.MockGetDBClient = func(dbName string) (client.DBClientInterface, error) {
		return nil, errors.New("datasource not configured")
	}

	_, err := suite.store.ListEntities("saml20-idp-remote")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database client")
}
