package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/leasedesk/rental-portal/internal/business/performance"
	"github.com/leasedesk/rental-portal/internal/business/units"
	"github.com/leasedesk/rental-portal/internal/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeError maps domain errors to status codes and records the error on the context.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrUnitNotFound),
		errors.Is(err, repository.ErrLeaseNotFound),
		errors.Is(err, repository.ErrSnapshotNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, units.ErrInvalidFolder):
		status = http.StatusBadRequest
	case errors.Is(err, performance.ErrSnapshotsDisabled):
		status = http.StatusServiceUnavailable
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (r *Router) listUnits(c *gin.Context) {
	rows, err := r.units.TableRows(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (r *Router) unitsOverview(c *gin.Context) {
	overview, err := r.units.Overview(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (r *Router) availableUnits(c *gin.Context) {
	items, err := r.units.Available(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (r *Router) unitPhotos(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	urls, err := r.units.Photos(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unitId": id, "photos": urls})
}

type photoFolderReq struct {
	Folder string `json:"folder" binding:"required"`
}

func (r *Router) setPhotoFolder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req photoFolderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := r.units.SetPhotoFolder(c.Request.Context(), id, req.Folder); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unitId": id, "folder": req.Folder})
}

func (r *Router) listListings(c *gin.Context) {
	items, err := r.units.Listings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (r *Router) performanceReport(c *gin.Context) {
	rows, err := r.performance.Report(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (r *Router) exportPerformance(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx or csv"})
		return
	}
	rows, err := r.performance.Report(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv"
	if format == "xlsx" {
		contentType = xlsxContentType
		err = performance.WriteXLSX(&buf, rows)
	} else {
		err = performance.WriteCSV(&buf, rows)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=property_performance.%s", format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (r *Router) createSnapshot(c *gin.Context) {
	snap, saved, err := r.performance.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if saved {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"saved": saved, "snapshot": snap})
}

func (r *Router) latestSnapshot(c *gin.Context) {
	snap, err := r.performance.Latest(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (r *Router) listLeases(c *gin.Context) {
	rows, err := r.leases.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

type terminateReq struct {
	Reason string `json:"reason"`
}

func (r *Router) terminateLease(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req terminateReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}
	lease, err := r.leases.Terminate(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lease)
}

func (r *Router) deleteLease(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := r.leases.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
