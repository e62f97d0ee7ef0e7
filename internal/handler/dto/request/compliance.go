package request

import (
	"strconv"
	"time"

	"github.com/coastalprograms/swms-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseFilter reads the optional compliance export query params. Malformed
// values are dropped rather than rejected; exports are best-effort reads.
func ParseFilter(c *gin.Context) queries.Filter {
	var f queries.Filter

	if v := c.Query("job_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.JobID = &id
		}
	}
	if v := c.Query("contractor_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.ContractorID = &id
		}
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.To = &t
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			f.Limit = int32(n)
		}
	}
	return f
}
