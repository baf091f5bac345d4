package errors

import "net/http"

// ErrorCode is a string identifier for a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeMessagingError     ErrorCode = "COMMON_014"
	ErrCodeUnknown            ErrorCode = "COMMON_015"

	// CodeOK is the sentinel returned by GetCode for a nil error.
	CodeOK ErrorCode = "OK"
)

// Claim module error codes.
const (
	ErrCodeClaimNotFound      ErrorCode = "CLAIM_001"
	ErrCodeClaimAlreadyExists ErrorCode = "CLAIM_002"
	ErrCodeClaimTypeInvalid   ErrorCode = "CLAIM_003"
	ErrCodeClaimStatusInvalid ErrorCode = "CLAIM_004"
)

// Clause-library module error codes.
const (
	ErrCodeClauseNotFound      ErrorCode = "CLAUSE_001"
	ErrCodeClauseAlreadyExists ErrorCode = "CLAUSE_002"
	ErrCodeClauseTextEmpty     ErrorCode = "CLAUSE_003"
)

// Recommendation engine error codes.
const (
	ErrCodeRecommendationFailed       ErrorCode = "REC_001"
	ErrCodeRecommendationUnavailable  ErrorCode = "REC_002"
	ErrCodePrecedentQueryFailed       ErrorCode = "REC_003"
	ErrCodeClauseLibraryQueryFailed   ErrorCode = "REC_004"
)

// HTTPStatus maps an ErrorCode to the HTTP status used by the API layer.
// Unknown codes map to 500.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeClaimTypeInvalid, ErrCodeClaimStatusInvalid, ErrCodeClauseTextEmpty:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound, ErrCodeClaimNotFound, ErrCodeClauseNotFound:
		return http.StatusNotFound
	case ErrCodeConflict, ErrCodeClaimAlreadyExists, ErrCodeClauseAlreadyExists:
		return http.StatusConflict
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrCodeServiceUnavailable, ErrCodeRecommendationUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
