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

package mdq

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/mdq/internal/metadata"
	"github.com/asgardeo/mdq/internal/system/config"
	"github.com/asgardeo/mdq/tests/mocks/metadatamock"
)

const (
	testIdPOne    = "https://idp1.example.org/idp"
	testIdPTwo    = "https://another.example.net/idp"
	testSPOne     = "https://sp.example.org/shibboleth"
	testSPTwo     = "https://another-sp.example.org/shibboleth"
	testHostedSP  = "https://hosted-sp.example.org/module.php/saml/sp/metadata.php/default-sp"
	testSirtfiURI = "https://refeds.org/sirtfi"
)

type MDQServiceTestSuite struct {
	suite.Suite
	store   *metadatamock.MockStore
	service MDQServiceInterface
}

func TestMDQServiceSuite(t *testing.T) {
	suite.Run(t, new(MDQServiceTestSuite))
}

func (suite *MDQServiceTestSuite) SetupTest() {
	suite.initService(0)
}

func (suite *MDQServiceTestSuite) TearDownTest() {
	config.ResetMDQRuntime()
}

func (suite *MDQServiceTestSuite) initService(maxResults int) {
	mockConfig := &config.Config{
		Cache: config.CacheConfig{
			Type: "inmemory",
		},
		Language: config.LanguageConfig{
			Current:  "en",
			Fallback: "en",
		},
		Search: config.SearchConfig{
			MaxResults: maxResults,
		},
	}
	config.ResetMDQRuntime()
	err := config.InitializeMDQRuntime("/test/mdq/home", mockConfig)
	if err != nil {
		suite.T().Fatal("Failed to initialize MDQRuntime:", err)
	}

	suite.store = newFixtureStore()
	suite.service, err = NewMDQService(suite.store)
	if err != nil {
		suite.T().Fatal("Failed to initialize MDQ service:", err)
	}
}

// newFixtureStore builds a 4-entity catalogue plus one hosted SP. The first SP
// carries a strict sirtfi profile selecting on assurance certification.
func newFixtureStore() *metadatamock.MockStore {
	profileDocument := base64.StdEncoding.EncodeToString([]byte(
		`{"profiles":{"sirtfi":{"strict":true,"entities":[` +
			`{"match":"assurance_certification","select":"` + testSirtfiURI + `"}]}}}`))

	idps := []metadata.Entity{
		{
			EntityID:    testIdPOne,
			MetadataSet: MetadataSetIdPRemote,
			DisplayName: metadata.LocalizedString{"en": "Example IdP One"},
			Scope:       []string{"example.org"},
			EntityAttributes: map[string][]string{
				AttributeAssuranceCertification: {testSirtfiURI},
			},
		},
		{
			EntityID:    testIdPTwo,
			MetadataSet: MetadataSetIdPRemote,
			DisplayName: metadata.LocalizedString{"en": "Another IdP"},
			Scope:       []string{"another.example.net"},
		},
	}
	sps := []metadata.Entity{
		{
			EntityID:    testSPOne,
			MetadataSet: MetadataSetSPRemote,
			DisplayName: metadata.LocalizedString{"en": "Example Service"},
			EntityAttributes: map[string][]string{
				AttributeSelectionProfile: {profileDocument},
			},
		},
		{
			EntityID:    testSPTwo,
			MetadataSet: MetadataSetSPRemote,
			DisplayName: metadata.LocalizedString{"en": "Another Service"},
		},
	}
	hosted := []metadata.Entity{
		{
			EntityID:    testHostedSP,
			MetadataSet: "saml20-sp-hosted",
			DisplayName: metadata.LocalizedString{"en": "Hosted Service"},
		},
	}

	sets := map[string][]metadata.Entity{
		MetadataSetIdPRemote: idps,
		MetadataSetSPRemote:  sps,
	}

	return &metadatamock.MockStore{
		MockListEntities: func(metadataSet string) ([]metadata.Entity, error) {
			return sets[metadataSet], nil
		},
		MockGetEntity: func(entityID, metadataSet string) (*metadata.Entity, error) {
			for i := range sets[metadataSet] {
				if sets[metadataSet][i].EntityID == entityID {
					return &sets[metadataSet][i], nil
				}
			}
			return nil, metadata.ErrEntityNotFound
		},
		MockListHostedSPs: func() ([]metadata.Entity, error) {
			return hosted, nil
		},
	}
}

func (suite *MDQServiceTestSuite) TestGetEntityByEntityID() {
	t := suite.T()

	record, svcErr := suite.service.GetEntity(testIdPOne)
	assert.Nil(t, svcErr)
	assert.Equal(t, testIdPOne, record.EntityID)
	assert.Equal(t, "Example IdP One", record.Title)
	assert.Equal(t, "idp", record.Type)
}

func (suite *MDQServiceTestSuite) TestGetEntityStripsJSONSuffix() {
	t := suite.T()

	record, svcErr := suite.service.GetEntity(testIdPOne + ".json")
	assert.Nil(t, svcErr)
	assert.Equal(t, testIdPOne, record.EntityID)
}

func (suite *MDQServiceTestSuite) TestGetEntityRepairsCollapsedScheme() {
	t := suite.T()

	record, svcErr := suite.service.GetEntity("https:/idp1.example.org/idp")
	assert.Nil(t, svcErr)
	assert.Equal(t, testIdPOne, record.EntityID)
}

func (suite *MDQServiceTestSuite) TestGetEntityByTransformedIdentifier() {
	t := suite.T()

	record, svcErr := suite.service.GetEntity(testIdPOne)
	assert.Nil(t, svcErr)
	assert.NotEmpty(t, record.ID)

	resolved, svcErr := suite.service.GetEntity(record.ID)
	assert.Nil(t, svcErr)
	assert.Equal(t, testIdPOne, resolved.EntityID)
}

func (suite *MDQServiceTestSuite) TestGetEntityNotFound() {
	t := suite.T()

	_, svcErr := suite.service.GetEntity("https://unknown.example.org/idp")
	assert.NotNil(t, svcErr)
	assert.Equal(t, ErrorEntityNotFound.Code, svcErr.Code)
}

func (suite *MDQServiceTestSuite) TestGetEntityUnsupportedAlgorithm() {
	t := suite.T()

	_, svcErr := suite.service.GetEntity("{SHA3}deadbeef")
	assert.NotNil(t, svcErr)
	assert.Equal(t, ErrorUnsupportedAlgorithm.Code, svcErr.Code)
}

func (suite *MDQServiceTestSuite) TestGetEntityMalformedBracePrefixIsNotFound() {
	t := suite.T()

	// A bare or malformed brace prefix is not a transformed identifier; it is
	// looked up as a plain entity ID and misses.
	for _, identifier := range []string{"{SHA1}", "{unclosed"} {
		_, svcErr := suite.service.GetEntity(identifier)
		assert.NotNil(t, svcErr)
		assert.Equal(t, ErrorEntityNotFound.Code, svcErr.Code)
	}
}

func (suite *MDQServiceTestSuite) TestGetEntityPrefersHostedSPs() {
	t := suite.T()

	record, svcErr := suite.service.GetEntity(testHostedSP)
	assert.Nil(t, svcErr)
	assert.Equal(t, testHostedSP, record.EntityID)
	assert.Empty(t, suite.store.GetEntityCalls,
		"a hosted SP lookup should not touch the remote sets")
}

func (suite *MDQServiceTestSuite) TestSearchReturnsWholeCatalogue() {
	t := suite.T()

	records, svcErr := suite.service.SearchEntities("", "")
	assert.Nil(t, svcErr)
	assert.Len(t, records, 5, "hosted SPs should be part of the search candidate set")
	assert.Equal(t, testHostedSP, records[0].EntityID,
		"hosted SPs come before the remote sets")
}

func (suite *MDQServiceTestSuite) TestSearchFilterComposition() {
	t := suite.T()

	records, svcErr := suite.service.SearchEntities("another", "sp")
	assert.Nil(t, svcErr)
	assert.Len(t, records, 1, "both the role filter and the query must hold")
	assert.Equal(t, testSPTwo, records[0].EntityID)
}

func (suite *MDQServiceTestSuite) TestSearchStripsRolePrefixFromFilter() {
	t := suite.T()

	records, svcErr := suite.service.SearchEntities("", rolePrefix+"idp")
	assert.Nil(t, svcErr)
	assert.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, "idp", record.Type)
	}
}

func (suite *MDQServiceTestSuite) TestSearchAddressQueryUsesDomainPart() {
	t := suite.T()

	records, svcErr := suite.service.SearchEntities("student@another.example.net", "idp")
	assert.Nil(t, svcErr)
	assert.Len(t, records, 1)
	assert.Equal(t, testIdPTwo, records[0].EntityID, "scope should match the part after the @")
}

func (suite *MDQServiceTestSuite) TestSearchQueryEndingInSeparatorMatchesNothing() {
	t := suite.T()

	// "user@" must not collapse to an empty query that matches the catalogue.
	records, svcErr := suite.service.SearchEntities("user@", "idp")
	assert.Nil(t, svcErr)
	assert.Empty(t, records)
}

func (suite *MDQServiceTestSuite) TestSearchHonorsMaxResults() {
	t := suite.T()

	suite.initService(2)
	records, svcErr := suite.service.SearchEntities("", "")
	assert.Nil(t, svcErr)
	assert.Len(t, records, 2)
}

func (suite *MDQServiceTestSuite) TestSearchWithSirtfiProfile() {
	t := suite.T()

	records, svcErr := suite.service.SearchEntitiesWithProfile("", "idp", testSPOne, "sirtfi")
	assert.Nil(t, svcErr)
	assert.Len(t, records, 1,
		"the strict sirtfi profile should leave exactly the certified IdP")
	assert.Equal(t, testIdPOne, records[0].EntityID)
}

func (suite *MDQServiceTestSuite) TestSearchWithUnknownProfileIsPassThrough() {
	t := suite.T()

	records, svcErr := suite.service.SearchEntitiesWithProfile("", "idp", testSPOne, "no-such-profile")
	assert.Nil(t, svcErr)
	assert.Len(t, records, 2)
}

func (suite *MDQServiceTestSuite) TestGetEntityWithProfileExcludesUncertifiedIdP() {
	t := suite.T()

	record, svcErr := suite.service.GetEntityWithProfile(testIdPOne, testSPOne, "sirtfi")
	assert.Nil(t, svcErr)
	assert.Equal(t, testIdPOne, record.EntityID)

	_, svcErr = suite.service.GetEntityWithProfile(testIdPTwo, testSPOne, "sirtfi")
	assert.NotNil(t, svcErr)
	assert.Equal(t, ErrorEntityNotFound.Code, svcErr.Code)
}

func (suite *MDQServiceTestSuite) TestGetEntityWithUnknownRelyingPartyIsPassThrough() {
	t := suite.T()

	record, svcErr := suite.service.GetEntityWithProfile(testIdPTwo,
		"https://unknown-sp.example.org/shibboleth", "sirtfi")
	assert.Nil(t, svcErr)
	assert.Equal(t, testIdPTwo, record.EntityID)
}
