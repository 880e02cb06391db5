package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func int64Query(c *gin.Context, key string, def int64) int64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func int64QueryPtr(c *gin.Context, key string) *int64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func stringQuery(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
