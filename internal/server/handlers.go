package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quantrail/edascan/internal/analysis"
	"github.com/quantrail/edascan/internal/dataset"
	"github.com/quantrail/edascan/internal/quality"
)

// QualityRequest is the JSON payload for /quality: a pre-computed summary
// (and optionally its missing table), no raw dataset required. Absent
// thresholds fall back to the server defaults.
type QualityRequest struct {
	Summary analysis.DatasetSummary `json:"summary"`
	Missing []analysis.MissingEntry `json:"missing"`

	MinMissingShare       *float64 `json:"min_missing_share"`
	HighCardinalityUnique *int     `json:"high_cardinality_unique"`
	HighCardinalityShare  *float64 `json:"high_cardinality_share"`
}

// QualityResponse mirrors what the scoring endpoints return.
type QualityResponse struct {
	OKForModel   bool           `json:"ok_for_model"`
	QualityScore float64        `json:"quality_score"`
	LatencyMS    int64          `json:"latency_ms"`
	Flags        *quality.Flags `json:"flags"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleQuality(c *gin.Context) {
	start := time.Now()
	var req QualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid payload: %v", err)})
		return
	}
	if len(req.Summary.Columns) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "summary has no columns"})
		return
	}
	t := s.defaults
	if req.MinMissingShare != nil {
		t.MinMissingShare = *req.MinMissingShare
	}
	if req.HighCardinalityUnique != nil {
		t.HighCardinalityUnique = *req.HighCardinalityUnique
	}
	if req.HighCardinalityShare != nil {
		t.HighCardinalityShare = *req.HighCardinalityShare
	}

	missing := req.Missing
	if len(missing) == 0 {
		missing = missingFromSummary(&req.Summary)
	}
	flags, err := quality.Evaluate(&req.Summary, missing, t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, QualityResponse{
		OKForModel:   flags.OKForModel(),
		QualityScore: flags.QualityScore,
		LatencyMS:    time.Since(start).Milliseconds(),
		Flags:        flags,
	})
}

func (s *Server) handleQualityFromCSV(c *gin.Context) {
	start := time.Now()
	flags, ok := s.flagsFromUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, QualityResponse{
		OKForModel:   flags.OKForModel(),
		QualityScore: flags.QualityScore,
		LatencyMS:    time.Since(start).Milliseconds(),
		Flags:        flags,
	})
}

func (s *Server) handleQualityFlagsFromCSV(c *gin.Context) {
	start := time.Now()
	flags, ok := s.flagsFromUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"latency_ms": time.Since(start).Milliseconds(),
		"flags":      flags,
	})
}

// flagsFromUpload parses the multipart CSV upload and threshold query
// parameters shared by the two *-from-csv endpoints. On failure it writes the
// error response itself and returns ok=false.
func (s *Server) flagsFromUpload(c *gin.Context) (*quality.Flags, bool) {
	t, err := s.thresholdsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("open upload: %v", err)})
		return nil, false
	}
	defer f.Close()

	opt := dataset.DefaultLoadOptions()
	opt.MissingTokens = s.missing
	d, err := dataset.LoadCSVReader(f, fh.Filename, opt)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	flags, err := quality.EvaluateDataset(d, t)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return flags, true
}

func (s *Server) thresholdsFromQuery(c *gin.Context) (quality.Thresholds, error) {
	t := s.defaults
	if v := c.Query("min_missing_share"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return t, fmt.Errorf("min_missing_share: %w", err)
		}
		t.MinMissingShare = f
	}
	if v := c.Query("high_cardinality_unique"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return t, fmt.Errorf("high_cardinality_unique: %w", err)
		}
		t.HighCardinalityUnique = n
	}
	if v := c.Query("high_cardinality_share"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return t, fmt.Errorf("high_cardinality_share: %w", err)
		}
		t.HighCardinalityShare = f
	}
	return t, nil
}

// missingFromSummary reconstructs the missing table a summary already
// implies, keeping /quality usable with the summary payload alone.
func missingFromSummary(sum *analysis.DatasetSummary) []analysis.MissingEntry {
	out := make([]analysis.MissingEntry, 0, len(sum.Columns))
	for _, c := range sum.Columns {
		out = append(out, analysis.MissingEntry{
			Column:       c.Name,
			MissingCount: c.Missing,
			MissingShare: c.MissingShare,
		})
	}
	return out
}

// respondError maps engine error kinds onto HTTP statuses. Caller input
// problems are 400s; anything else is a 500.
func respondError(c *gin.Context, err error) {
	var (
		thrErr *quality.InvalidThresholdError
		dsErr  *dataset.InvalidDatasetError
		inErr  *dataset.MalformedInputError
		encErr *dataset.UnsupportedEncodingError
	)
	switch {
	case errors.As(err, &thrErr), errors.As(err, &dsErr), errors.As(err, &inErr), errors.As(err, &encErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
