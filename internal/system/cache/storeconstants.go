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

package cache

import "github.com/asgardeo/mdq/internal/system/database/model"

var (
	// queryCreateCacheTable is the query to create the cache table if it does not exist.
	queryCreateCacheTable = model.DBQuery{
		ID: "CCQ-CACHE-01",
		Query: "CREATE TABLE IF NOT EXISTS MDQ_CACHE (CACHE_NAME VARCHAR(128) NOT NULL, " +
			"CACHE_KEY VARCHAR(512) NOT NULL, VALUE TEXT NOT NULL, EXPIRY_TIME BIGINT NOT NULL, " +
			"PRIMARY KEY (CACHE_NAME, CACHE_KEY))",
	}
	// queryUpsertCacheEntry is the query to insert or replace a cache entry.
	queryUpsertCacheEntry = model.DBQuery{
		ID: "CCQ-CACHE-02",
		Query: "INSERT INTO MDQ_CACHE (CACHE_NAME, CACHE_KEY, VALUE, EXPIRY_TIME) VALUES ($1, $2, $3, $4) " +
			"ON CONFLICT (CACHE_NAME, CACHE_KEY) DO UPDATE SET VALUE = EXCLUDED.VALUE, " +
			"EXPIRY_TIME = EXCLUDED.EXPIRY_TIME",
	}
	// queryGetCacheEntry is the query to get an unexpired cache entry.
	queryGetCacheEntry = model.DBQuery{
		ID:    "CCQ-CACHE-03",
		Query: "SELECT VALUE FROM MDQ_CACHE WHERE CACHE_NAME = $1 AND CACHE_KEY = $2 AND EXPIRY_TIME >= $3",
	}
	// queryDeleteCacheEntry is the query to delete a cache entry.
	queryDeleteCacheEntry = model.DBQuery{
		ID:    "CCQ-CACHE-04",
		Query: "DELETE FROM MDQ_CACHE WHERE CACHE_NAME = $1 AND CACHE_KEY = $2",
	}
	// queryClearCacheEntries is the query to delete all entries of a cache.
	queryClearCacheEntries = model.DBQuery{
		ID:    "CCQ-CACHE-05",
		Query: "DELETE FROM MDQ_CACHE WHERE CACHE_NAME = $1",
	}
	// queryCleanupCacheEntries is the query to delete all expired entries of a cache.
	queryCleanupCacheEntries = model.DBQuery{
		ID:    "CCQ-CACHE-06",
		Query: "DELETE FROM MDQ_CACHE WHERE CACHE_NAME = $1 AND EXPIRY_TIME < $2",
	}
)
