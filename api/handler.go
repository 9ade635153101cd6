package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"pdftoolkit/config"
	"pdftoolkit/task"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	runner *task.Runner
	status *Status
	cfg    *config.Config
}

func NewHandler(runner *task.Runner, status *Status, cfg *config.Config) *Handler {
	return &Handler{
		runner: runner,
		status: status,
		cfg:    cfg,
	}
}

// TaskRequest is the flat creation payload; Kind decides which fields apply.
type TaskRequest struct {
	Kind string `json:"kind" binding:"required"`

	// Single-input tasks (search, number, extract, convert).
	PDFPath string `json:"pdfPath"`

	// Search. Query is a quote-aware expression split into search texts;
	// Queries, when present, wins over Query.
	Query         string   `json:"query"`
	Queries       []string `json:"queries"`
	CaseSensitive bool     `json:"caseSensitive"`
	RequireAll    bool     `json:"requireAll"`

	// Number. Missing numeric fields take the classic defaults below.
	StartNumber *int   `json:"startNumber"`
	StartPage   *int   `json:"startPage"`
	UseInitial  *bool  `json:"useInitial"`
	X           *int   `json:"x"`
	Y           *int   `json:"y"`
	Prefix      string `json:"prefix"`

	// Merge.
	Files      []string `json:"files"`
	OutputName string   `json:"outputName"`

	// Extract.
	Ranges string `json:"ranges"`
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func (req TaskRequest) params() (task.Params, error) {
	switch task.Kind(req.Kind) {
	case task.KindSearch:
		queries := req.Queries
		if len(queries) == 0 && req.Query != "" {
			var err error
			queries, err = task.SplitQueries(req.Query)
			if err != nil {
				return nil, err
			}
		}
		return task.SearchParams{
			PDFPath:       req.PDFPath,
			Queries:       queries,
			CaseSensitive: req.CaseSensitive,
			RequireAll:    req.RequireAll,
		}, nil

	case task.KindNumber:
		useInitial := true
		if req.UseInitial != nil {
			useInitial = *req.UseInitial
		}
		return task.NumberParams{
			PDFPath:     req.PDFPath,
			StartNumber: intOr(req.StartNumber, 1),
			StartPage:   intOr(req.StartPage, 1),
			UseInitial:  useInitial,
			X:           intOr(req.X, 50),
			Y:           intOr(req.Y, 50),
			Prefix:      req.Prefix,
		}, nil

	case task.KindMerge:
		return task.MergeParams{
			Files:      req.Files,
			OutputName: req.OutputName,
		}, nil

	case task.KindExtract:
		return task.ExtractParams{
			PDFPath: req.PDFPath,
			Ranges:  req.Ranges,
		}, nil

	case task.KindConvert:
		return task.ConvertParams{
			PDFPath: req.PDFPath,
		}, nil

	default:
		return nil, fmt.Errorf("unknown task kind %q", req.Kind)
	}
}

// handleCreateTask starts a task; exactly one can run at a time.
func (h *Handler) handleCreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := req.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spec := task.NewSpec(params)
	if err := h.runner.Start(spec); err != nil {
		if errors.Is(err, task.ErrTaskRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, task.ErrLowResources) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.status.TaskStarted(spec)
	c.JSON(http.StatusAccepted, gin.H{"taskId": spec.ID})
}

// handleGetActiveTask serves the consumer loop's latest snapshot.
func (h *Handler) handleGetActiveTask(c *gin.Context) {
	c.JSON(http.StatusOK, h.status.Snapshot())
}

// handleCancelTask requests cancellation of the active task. The engine-level
// Cancel is a no-op when idle; the HTTP layer reports that case explicitly.
func (h *Handler) handleCancelTask(c *gin.Context) {
	if !h.runner.IsRunning() {
		c.JSON(http.StatusConflict, gin.H{"error": "no task is running"})
		return
	}
	h.runner.Cancel()
	c.JSON(http.StatusOK, gin.H{"message": "task cancellation requested"})
}

// handleGetFile serves a generated output from the result folder.
func (h *Handler) handleGetFile(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.resultFilePath(filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.File(path)
}

// resultFilePath resolves a download name inside the result folder.
func (h *Handler) resultFilePath(filename string) (string, error) {
	// Security: prevent path traversal.
	clean := filepath.Base(filename)
	if clean != filename {
		return "", fmt.Errorf("invalid filename")
	}

	path := filepath.Join(h.cfg.ResultFolder, clean)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found")
	}
	return path, nil
}
