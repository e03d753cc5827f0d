package controller

import (
	"strconv"
	"time"

	"supervision_backend/internal/model"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

var timeNow = time.Now

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseAreaQuery reads an optional ?area= filter. ok=false means the value
// was present but unknown.
func parseAreaQuery(ctx *gin.Context) (*model.Area, bool) {
	raw := ctx.Query("area")
	if raw == "" {
		return nil, true
	}
	area := model.Area(raw)
	if !area.Valid() {
		return nil, false
	}
	return &area, true
}

func parseShiftQuery(ctx *gin.Context) (*model.Shift, bool) {
	raw := ctx.Query("shift")
	if raw == "" {
		return nil, true
	}
	sh := model.Shift(raw)
	if !sh.Valid() {
		return nil, false
	}
	return &sh, true
}

func parseDateQuery(ctx *gin.Context, key string) (time.Time, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
