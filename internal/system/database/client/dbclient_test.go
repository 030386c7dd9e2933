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

package client

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/asgardeo/mdq/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	db := model.NewDB(suite.mockDB)
	suite.dbClient = NewDBClient(db, "mock")
}

func (suite *DBClientTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	testQuery := model.DBQuery{
		ID:    "test_query_success",
		Query: "SELECT ENTITY_ID, METADATA_SET FROM MDQ_ENTITY WHERE METADATA_SET = ?",
	}
	args := []interface{}{"edugain"}
	mockArgs := []driver.Value{"edugain"}

	columns := []string{"ENTITY_ID", "METADATA_SET"}
	rows := sqlmock.NewRows(columns).
		AddRow("https://idp.example.org/shibboleth", "edugain").
		AddRow("https://idp.example.net/shibboleth", "edugain")
	suite.mock.ExpectQuery("SELECT ENTITY_ID, METADATA_SET FROM MDQ_ENTITY WHERE METADATA_SET = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)

	// Column names are normalized to lowercase regardless of how the driver reports them.
	assert.Equal(suite.T(), "https://idp.example.org/shibboleth", results[0]["entity_id"])
	assert.Equal(suite.T(), "edugain", results[0]["metadata_set"])
	assert.Equal(suite.T(), "https://idp.example.net/shibboleth", results[1]["entity_id"])
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	testQuery := model.DBQuery{
		ID:    "test_query_empty",
		Query: "SELECT ENTITY_ID FROM MDQ_ENTITY WHERE ENTITY_ID = ?",
	}
	args := []interface{}{"https://unknown.example.org/shibboleth"}
	mockArgs := []driver.Value{"https://unknown.example.org/shibboleth"}

	rows := sqlmock.NewRows([]string{"ENTITY_ID"})
	suite.mock.ExpectQuery("SELECT ENTITY_ID FROM MDQ_ENTITY WHERE ENTITY_ID = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_query_error",
		Query: "SELECT ENTITY_ID FROM NON_EXISTENT_TABLE",
	}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery("SELECT ENTITY_ID FROM NON_EXISTENT_TABLE").
		WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(testQuery)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryUsesDriverSpecificVariant() {
	testQuery := model.DBQuery{
		ID:            "test_query_variant",
		Query:         "SELECT ENTITY_ID FROM MDQ_ENTITY WHERE ENTITY_ID = ?",
		PostgresQuery: "SELECT ENTITY_ID FROM MDQ_ENTITY WHERE ENTITY_ID = $1",
	}
	args := []interface{}{"https://idp.example.org/shibboleth"}
	mockArgs := []driver.Value{"https://idp.example.org/shibboleth"}

	db := model.NewDB(suite.mockDB)
	pgClient := NewDBClient(db, "postgres")

	rows := sqlmock.NewRows([]string{"ENTITY_ID"}).
		AddRow("https://idp.example.org/shibboleth")
	suite.mock.ExpectQuery("SELECT ENTITY_ID FROM MDQ_ENTITY WHERE ENTITY_ID = \\$1").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := pgClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteSuccess() {
	testQuery := model.DBQuery{
		ID:    "test_execute_success",
		Query: "DELETE FROM MDQ_CACHE WHERE CACHE_NAME = ? AND CACHE_KEY = ?",
	}
	args := []interface{}{"transformedIDCache", "{SHA1}abc"}
	mockArgs := []driver.Value{"transformedIDCache", "{SHA1}abc"}

	suite.mock.ExpectExec("DELETE FROM MDQ_CACHE WHERE CACHE_NAME = \\? AND CACHE_KEY = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteMultipleRowsAffected() {
	testQuery := model.DBQuery{
		ID:    "test_execute_multiple",
		Query: "DELETE FROM MDQ_CACHE WHERE CACHE_NAME = ?",
	}
	args := []interface{}{"transformedIDCache"}
	mockArgs := []driver.Value{"transformedIDCache"}

	suite.mock.ExpectExec("DELETE FROM MDQ_CACHE WHERE CACHE_NAME = ?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 5))

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_db_error",
		Query: "DELETE FROM NON_EXISTENT_TABLE WHERE CACHE_KEY = ?",
	}
	args := []interface{}{"{SHA1}abc"}
	mockArgs := []driver.Value{"{SHA1}abc"}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectExec("DELETE FROM NON_EXISTENT_TABLE WHERE CACHE_KEY = \\?").
		WithArgs(mockArgs...).
		WillReturnError(expectedErr)

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteRowsAffectedError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_rows_error",
		Query: "INSERT INTO MDQ_CACHE (CACHE_KEY) VALUES (?)",
	}
	args := []interface{}{"{SHA1}abc"}
	mockArgs := []driver.Value{"{SHA1}abc"}

	result := sqlmock.NewErrorResult(errors.New("rows affected error"))
	suite.mock.ExpectExec("INSERT INTO MDQ_CACHE \\(CACHE_KEY\\) VALUES \\(\\?\\)").
		WithArgs(mockArgs...).
		WillReturnResult(result)

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "rows affected error")
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxSuccess() {
	suite.mock.ExpectBegin()

	tx, err := suite.dbClient.BeginTx()

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), tx)
	assert.Implements(suite.T(), (*model.TxInterface)(nil), tx)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxError() {
	expectedErr := errors.New("transaction error")
	suite.mock.ExpectBegin().WillReturnError(expectedErr)

	tx, err := suite.dbClient.BeginTx()

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), tx)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestPing() {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}
	dbClient := NewDBClient(model.NewDB(mockDB), "mock")

	mock.ExpectPing()

	assert.NoError(suite.T(), dbClient.Ping())
	assert.NoError(suite.T(), mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestCloseSuccess() {
	suite.mock.ExpectClose()

	err := suite.dbClient.Close()

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
