package api

import (
	"fmt"
	"path/filepath"
	"strconv"

	"menurank/internal/domain"
	"menurank/internal/util"

	"github.com/gin-gonic/gin"
)

// query-parameter helpers; invalid values abort with 400 up front so
// handlers only ever see validated inputs

func parseOptionalDate(c *gin.Context, key string) (*string, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	if !util.ValidDate(raw) {
		returnErrorJsonCode(fmt.Errorf("%s must be formatted YYYY-MM-DD, got %q", key, raw), c, 400)
		return nil, false
	}
	return &raw, true
}

func parseRequiredDate(c *gin.Context, key string) (string, bool) {
	raw := c.Query(key)
	if raw == "" {
		returnErrorJsonCode(fmt.Errorf("%s is required", key), c, 400)
		return "", false
	}
	if !util.ValidDate(raw) {
		returnErrorJsonCode(fmt.Errorf("%s must be formatted YYYY-MM-DD, got %q", key, raw), c, 400)
		return "", false
	}
	return raw, true
}

func parseTopK(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("top_k")
	if raw == "" {
		return fallback, true
	}
	topK, err := strconv.Atoi(raw)
	if err != nil || topK < 1 || topK > 100 {
		returnErrorJsonCode(fmt.Errorf("top_k must be an integer in [1, 100], got %q", raw), c, 400)
		return 0, false
	}
	return topK, true
}

func parseNormalize(c *gin.Context) (bool, bool) {
	raw := c.Query("normalize")
	if raw == "" {
		return false, true
	}
	normalize, err := strconv.ParseBool(raw)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("normalize must be a boolean, got %q", raw), c, 400)
		return false, false
	}
	return normalize, true
}

func (m ApiHandler) getRanking(c *gin.Context) {
	start, ok := parseOptionalDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseOptionalDate(c, "end_date")
	if !ok {
		return
	}
	topK, ok := parseTopK(c, 20)
	if !ok {
		return
	}
	normalize, ok := parseNormalize(c)
	if !ok {
		return
	}

	ranked, err := m.RankingService.Rank(domain.NewSpan(start, end), topK, normalize)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, ranked)
}

func (m ApiHandler) rankingByDay(c *gin.Context) {
	day, ok := parseRequiredDate(c, "day")
	if !ok {
		return
	}
	topK, ok := parseTopK(c, 20)
	if !ok {
		return
	}
	normalize, ok := parseNormalize(c)
	if !ok {
		return
	}

	ranked, err := m.RankingService.RankForDay(day, topK, normalize)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, ranked)
}

func (m ApiHandler) exportRanking(c *gin.Context) {
	start, ok := parseRequiredDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseRequiredDate(c, "end_date")
	if !ok {
		return
	}
	topK, ok := parseTopK(c, 50)
	if !ok {
		return
	}
	normalize, ok := parseNormalize(c)
	if !ok {
		return
	}

	path, rows, err := m.RankingService.ExportCSV(start, end, topK, normalize)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	if rows == 0 {
		c.JSON(200, gin.H{"saved": false, "reason": "no data in range"})
		return
	}
	c.JSON(200, gin.H{"saved": true, "file": path, "rows": rows})
}

func (m ApiHandler) report(c *gin.Context) {
	start, ok := parseRequiredDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseRequiredDate(c, "end_date")
	if !ok {
		return
	}
	topK, ok := parseTopK(c, 20)
	if !ok {
		return
	}
	normalize, ok := parseNormalize(c)
	if !ok {
		return
	}

	path, rows, err := m.RankingService.ReportPDF(start, end, topK, normalize)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	if rows == 0 {
		c.JSON(200, gin.H{"saved": false, "reason": "no data in range"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (m ApiHandler) series(c *gin.Context) {
	rawID := c.Query("product_id")
	productID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("product_id must be an integer, got %q", rawID), c, 400)
		return
	}
	start, ok := parseRequiredDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseRequiredDate(c, "end_date")
	if !ok {
		return
	}

	points, err := m.RankingService.Series(productID, domain.NewSpan(&start, &end))
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, points)
}

func (m ApiHandler) share(c *gin.Context) {
	start, ok := parseRequiredDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseRequiredDate(c, "end_date")
	if !ok {
		return
	}
	topK, ok := parseTopK(c, 10)
	if !ok {
		return
	}

	shares, err := m.RankingService.Share(domain.NewSpan(&start, &end), topK)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, shares)
}
