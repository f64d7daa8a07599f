package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"jobkit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// int64Param reads a positive numeric path parameter.
func int64Param(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

// bindJSON decodes the body into v. Field validation happens in the usecases.
func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.BadRequest("Request body is required")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return apperror.BadRequest("Malformed JSON body")
		case errors.As(err, &typeErr):
			return apperror.FieldError(typeErr.Field, "Invalid value type.")
		default:
			return apperror.New(http.StatusBadRequest, "Invalid request body", err)
		}
	}
	return nil
}

// ownerParam reads :user_id, the account that owns the nested resource.
func ownerParam(c *gin.Context) (int64, error) {
	return int64Param(c, "user_id")
}

// ownerAndID reads :user_id and :id.
func ownerAndID(c *gin.Context) (int64, int64, error) {
	owner, err := ownerParam(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := int64Param(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return owner, id, nil
}
