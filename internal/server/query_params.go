package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// optionalIDParam parses an optional snowflake query parameter. A present
// but malformed value is a validation error, not an absent filter.
func optionalIDParam(c *gin.Context, name string) (*snowflake.ID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, newValidationError(name, "invalid_id", "invalid identifier")
	}
	return &id, nil
}

func requiredIDPath(c *gin.Context, name string) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, newValidationError(name, "invalid_id", "invalid identifier")
	}
	return id, nil
}

// timeRangeParams parses the required start/end query parameters as RFC3339
// timestamps.
func timeRangeParams(c *gin.Context) (time.Time, time.Time, error) {
	start, err := timeParam(c, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timeParam(c, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func timeParam(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, newValidationError(name, "missing_parameter", "parameter is required")
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, newValidationError(name, "invalid_timestamp", "expected RFC3339 timestamp")
	}
	return parsed, nil
}
