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

import dbmodel "github.com/asgardeo/mdq/internal/system/database/model"

var (
	// queryGetEntityList retrieves all entities of a metadata set.
	queryGetEntityList = dbmodel.DBQuery{
		ID: "MDQ-ENTITY-01",
		Query: "SELECT ENTITY_ID, METADATA_SET, DATA FROM MDQ_ENTITY WHERE METADATA_SET = $1 " +
			"AND HOSTED = 0 ORDER BY ENTITY_ID",
	}

	// queryGetEntityByID retrieves a single entity by entity ID and metadata set.
	queryGetEntityByID = dbmodel.DBQuery{
		ID: "MDQ-ENTITY-02",
		Query: "SELECT ENTITY_ID, METADATA_SET, DATA FROM MDQ_ENTITY WHERE ENTITY_ID = $1 " +
			"AND METADATA_SET = $2 AND HOSTED = 0",
	}

	// queryGetHostedSPList retrieves the service providers hosted by this deployment.
	queryGetHostedSPList = dbmodel.DBQuery{
		ID:    "MDQ-ENTITY-03",
		Query: "SELECT ENTITY_ID, METADATA_SET, DATA FROM MDQ_ENTITY WHERE HOSTED = 1 ORDER BY ENTITY_ID",
	}
)
