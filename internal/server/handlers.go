package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ginjaninja78/quota-data-transformer/internal/converter"
	"github.com/ginjaninja78/quota-data-transformer/internal/csvparser"
	"github.com/ginjaninja78/quota-data-transformer/internal/export"
	"github.com/ginjaninja78/quota-data-transformer/internal/labels"
	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

var errNoInput = errors.New(`request has neither a "file" nor a "text" field`)

// transformResponse is the body of a successful /api/transform call.
type transformResponse struct {
	*types.Result
	Table export.Rendered `json:"table"`
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleTransform(c *gin.Context) {
	locale, ok := s.locale(c)
	if !ok {
		return
	}

	res, ok := s.parse(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, transformResponse{
		Result: res,
		Table:  export.UnifiedTable(res.Records).Render(locale),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	locale, ok := s.locale(c)
	if !ok {
		return
	}

	format := s.cfg.ExportFormat()
	if q := c.Query("format"); q != "" {
		f, err := export.ParseFormat(q)
		if err != nil {
			s.sendJSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		format = f
	}

	view, err := export.ParseView(c.Query("view"))
	if err != nil {
		s.sendJSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	res, ok := s.parse(c)
	if !ok {
		return
	}

	tables := export.BuildTables(res, view)
	var buf bytes.Buffer
	if err := export.Write(&buf, format, tables, locale); err != nil {
		s.sendJSONError(c, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	title := export.DefaultTitle
	if len(tables) == 1 {
		title = tables[0].Title
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(title, locale, format)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleSheets(c *gin.Context) {
	s.limitBody(c)

	fh, err := c.FormFile("file")
	if err != nil {
		s.sendError(c, err)
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		s.sendError(c, err)
		return
	}

	sheets, err := converter.ListSheets(data)
	if err != nil {
		s.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": sheets})
}

// =============================================================================
// INPUT
// =============================================================================

// parse reads the request input and runs the pipeline. On failure the error
// response has been written and ok is false.
func (s *Server) parse(c *gin.Context) (*types.Result, bool) {
	text, err := s.readSource(c)
	if err != nil {
		s.sendError(c, err)
		return nil, false
	}

	opts := s.cfg.PipelineOptions(s.logger.With(zap.String("request_id", requestID(c))))
	if legacy, _ := strconv.ParseBool(c.Query("legacy")); legacy {
		opts.HeaderStrategy = csvparser.StrategyLegacy
	}

	res, err := converter.Transform(text, opts)
	if err != nil {
		s.sendError(c, err)
		return nil, false
	}
	return res, true
}

// readSource returns the pipeline input text of the request.
func (s *Server) readSource(c *gin.Context) (string, error) {
	s.limitBody(c)

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		return converter.DecodeText(data)
	}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		data, err := readUpload(fh)
		if err != nil {
			return "", err
		}
		return converter.LoadSourceBytes(fh.Filename, data, c.PostForm("sheet"))
	case errors.Is(err, http.ErrMissingFile):
		if text, ok := c.GetPostForm("text"); ok {
			return text, nil
		}
		return "", errNoInput
	default:
		return "", err
	}
}

func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes())
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) locale(c *gin.Context) (labels.Locale, bool) {
	l, err := labels.ParseLocale(c.DefaultQuery("locale", s.cfg.Locale))
	if err != nil {
		s.sendJSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return "", false
	}
	return l, true
}

// =============================================================================
// ERRORS
// =============================================================================

// sendError maps err to a status code and writes the JSON error body.
//
// STATUS CODES:
//   - 409: a multi-sheet workbook was uploaded without a sheet choice
//   - 413: the body exceeds the upload limit
//   - 422: the pipeline rejected the input
//   - 400: the source could not be read (format, corrupt file, no table)
func (s *Server) sendError(c *gin.Context, err error) {
	var (
		selection *converter.SheetSelectionError
		pipeline  types.PipelineError
		tooLarge  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &selection):
		s.logger.Info("sheet selection required", zap.String("request_id", requestID(c)))
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":   true,
			"kind":    "sheet_selection_required",
			"message": err.Error(),
			"sheets":  selection.Sheets,
		})
	case errors.As(err, &pipeline):
		s.sendJSONError(c, http.StatusUnprocessableEntity, pipeline.Kind(), err.Error())
	case errors.As(err, &tooLarge):
		s.sendJSONError(c, http.StatusRequestEntityTooLarge, "too_large", err.Error())
	default:
		s.sendJSONError(c, http.StatusBadRequest, "invalid_source", err.Error())
	}
}

func (s *Server) sendJSONError(c *gin.Context, status int, kind, message string) {
	s.logger.Warn("request error",
		zap.String("kind", kind),
		zap.String("error", message),
		zap.Int("status_code", status),
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	c.AbortWithStatusJSON(status, gin.H{
		"error":   true,
		"kind":    kind,
		"message": message,
	})
}
