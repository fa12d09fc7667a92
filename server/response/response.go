package response

import (
	"github.com/gin-gonic/gin"

	apiError "github.com/lqitha/lqitha-backend/errors"
)

// JSON writes the uniform response envelope. Every response carries a success
// flag; errors never leak stack traces or internal identifiers.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	body := gin.H{
		"success": status < 400,
	}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	if err != nil {
		body["error"] = errMessage(err)
	}
	c.JSON(status, body)
}

// HandleErrors maps an error to its status code and responds.
func HandleErrors(c *gin.Context, err error) {
	JSON(c, "", apiError.StatusOf(err), nil, err)
}

func errMessage(err error) string {
	if apiErr, ok := err.(*apiError.Error); ok {
		return apiErr.Message
	}
	return err.Error()
}
