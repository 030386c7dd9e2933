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

import "github.com/asgardeo/mdq/internal/system/error/serviceerror"

// Client errors for metadata query operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request is malformed.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Code:             "MDQ-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "The request is malformed or contains invalid data",
	}
	// ErrorEntityNotFound is the error returned when the requested entity does not exist.
	ErrorEntityNotFound = serviceerror.ServiceError{
		Code:             "MDQ-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Entity not found",
		ErrorDescription: "No entity matches the requested identifier",
	}
	// ErrorUnsupportedAlgorithm is the error returned for unknown hash algorithms.
	ErrorUnsupportedAlgorithm = serviceerror.ServiceError{
		Code:             "MDQ-1004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Unsupported hash algorithm",
		ErrorDescription: "The hash algorithm in the transformed identifier is not supported",
	}
	// ErrorNotAcceptable is the error returned when the client does not accept JSON responses.
	ErrorNotAcceptable = serviceerror.ServiceError{
		Code:             "MDQ-1006",
		Type:             serviceerror.ClientErrorType,
		Error:            "Not acceptable",
		ErrorDescription: "The endpoint only produces application/json responses",
	}
)

// Server errors for metadata query operations.
var (
	// ErrorInternalServerError is the generic error returned for unexpected failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "MDQ-5001",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
	// ErrorMetadataUnavailable is the error returned when the metadata store cannot be read.
	ErrorMetadataUnavailable = serviceerror.ServiceError{
		Code:             "MDQ-5002",
		Type:             serviceerror.ServerErrorType,
		Error:            "Metadata unavailable",
		ErrorDescription: "The metadata store could not be read",
	}
)
