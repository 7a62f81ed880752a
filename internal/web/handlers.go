package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/debrief"
)

type runResponse struct {
	RunID      string            `json:"run_id"`
	Date       string            `json:"date"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Delivered  int               `json:"delivered"`
	Skipped    int               `json:"skipped"`
	Failed     int               `json:"failed"`
	Error      string            `json:"error,omitempty"`
	Entries    []outcomeResponse `json:"entries"`
}

type outcomeResponse struct {
	UserID  string `json:"user_id"`
	Outcome string `json:"outcome"`
	Stage   string `json:"stage,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRuns(c *gin.Context) {
	limit := s.limit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	reports, err := debrief.LoadRecent(s.historyDir, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]runResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, toRunResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{"runs": resp, "count": len(resp)})
}

func (s *Server) handleLatestRun(c *gin.Context) {
	reports, err := debrief.LoadRecent(s.historyDir, 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(reports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no runs recorded"})
		return
	}

	c.JSON(http.StatusOK, toRunResponse(reports[0]))
}

func toRunResponse(r *debrief.RunReport) runResponse {
	delivered, skipped, failed := r.Counts()

	entries := make([]outcomeResponse, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, outcomeResponse{
			UserID:  e.UserID,
			Outcome: string(e.Outcome),
			Stage:   string(e.Stage),
			Reason:  e.Reason,
		})
	}

	return runResponse{
		RunID:      r.RunID,
		Date:       r.Date,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Delivered:  delivered,
		Skipped:    skipped,
		Failed:     failed,
		Error:      r.Err,
		Entries:    entries,
	}
}
