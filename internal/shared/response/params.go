package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParamUUID parses a UUID path parameter. On failure it writes a 400 and
// returns false.
func ParamUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		BadRequest(c, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}
