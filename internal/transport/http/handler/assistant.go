package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"edubot/internal/ai"
	"edubot/internal/app"
	"edubot/internal/rag"
	"edubot/internal/transport/http/response"
)

// Assistant is what the chatbot endpoints need from *app.AssistantService.
type Assistant interface {
	Ask(ctx context.Context, input app.AskInput) (*rag.AnswerEnvelope, error)
	Refresh(ctx context.Context) (*app.RefreshResult, error)
	RequestRefresh(ctx context.Context, reason string) (string, error)
	Stats() app.IndexStats
}

type AssistantHandler struct {
	assistant      Assistant
	refreshTimeout time.Duration
}

type QueryRequest struct {
	Query   string        `json:"query" binding:"required"`
	UserID  string        `json:"userId"`
	Context *QueryContext `json:"context"`
}

type QueryContext struct {
	UserRole string `json:"userRole"`
}

type FeedbackRequest struct {
	ResponseID string `json:"response_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"max=2000"`
}

type refreshAck struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ChunkCount     int    `json:"chunk_count,omitempty"`
	SkippedRecords int    `json:"skipped_records,omitempty"`
	DroppedChunks  int    `json:"dropped_chunks,omitempty"`
	BuiltAt        string `json:"built_at,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

// NewAssistantHandler bounds synchronous refreshes by refreshTimeout; zero
// leaves them bounded only by the request.
func NewAssistantHandler(assistant Assistant, refreshTimeout time.Duration) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, refreshTimeout: refreshTimeout}
}

func (h *AssistantHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	input := app.AskInput{Query: req.Query, UserID: req.UserID}
	if req.Context != nil {
		input.Role = req.Context.UserRole
	}

	envelope, err := h.assistant.Ask(c.Request.Context(), input)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	response.OK(c, envelope)
}

// writeQueryError keeps the three completion failures distinguishable by
// status and code.
func writeQueryError(c *gin.Context, err error) {
	var (
		timeoutErr   *ai.TimeoutError
		upstreamErr  *ai.UpstreamError
		malformedErr *ai.MalformedResponseError
	)
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.As(err, &timeoutErr):
		response.Error(c, http.StatusGatewayTimeout, response.CodeUpstreamTimeout, err.Error())
	case errors.As(err, &upstreamErr):
		var detail interface{}
		if upstreamErr.StatusCode != 0 {
			detail = gin.H{"status_code": upstreamErr.StatusCode, "detail": upstreamDetail(upstreamErr)}
		}
		response.ErrorWithData(c, http.StatusBadGateway, response.CodeUpstreamError, err.Error(), detail)
	case errors.As(err, &malformedErr):
		response.Error(c, http.StatusBadGateway, response.CodeMalformedResponse, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "Error processing query: "+err.Error())
	}
}

func upstreamDetail(err *ai.UpstreamError) interface{} {
	if err.Detail != nil {
		return err.Detail
	}
	return err.Body
}

func (h *AssistantHandler) RefreshKnowledge(c *gin.Context) {
	async, _ := strconv.ParseBool(c.DefaultQuery("async", "false"))
	if async {
		id, err := h.assistant.RequestRefresh(c.Request.Context(), "api")
		if err != nil {
			if errors.Is(err, app.ErrRebuildQueueDown) {
				response.Error(c, http.StatusServiceUnavailable, response.CodeQueueUnavailable, err.Error())
				return
			}
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "Error refreshing knowledge base: "+err.Error())
			return
		}
		c.JSON(http.StatusAccepted, response.APIResponse{
			Code:    response.CodeOK,
			Message: "accepted",
			Data:    refreshAck{Success: true, Message: "Knowledge base refresh queued", RequestID: id},
		})
		return
	}

	ctx := c.Request.Context()
	if h.refreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.refreshTimeout)
		defer cancel()
	}
	result, err := h.assistant.Refresh(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		response.Error(c, http.StatusGatewayTimeout, response.CodeRefreshTimeout,
			fmt.Sprintf("knowledge refresh exceeded %s, retry with ?async=true", h.refreshTimeout))
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "Error refreshing knowledge base: "+err.Error())
		return
	}
	response.OK(c, refreshAck{
		Success:        true,
		Message:        "Knowledge base refreshed successfully",
		ChunkCount:     result.ChunkCount,
		SkippedRecords: result.SkippedRecords,
		DroppedChunks:  result.DroppedChunks,
		BuiltAt:        result.BuiltAt.Format(timeLayout),
	})
}

func (h *AssistantHandler) SuggestQueries(c *gin.Context) {
	response.OK(c, app.SuggestQueries(c.Query("context")))
}

func (h *AssistantHandler) Feedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	receipt, err := app.AcknowledgeFeedback(app.FeedbackInput{
		ResponseID: req.ResponseID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}
	response.OK(c, receipt)
}

func (h *AssistantHandler) IndexStats(c *gin.Context) {
	response.OK(c, h.assistant.Stats())
}
