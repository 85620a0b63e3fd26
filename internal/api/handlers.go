package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"daily-journal/internal/model"
	"daily-journal/internal/service"
)

type generateRequest struct {
	Date string `json:"date"`
}

type createTaskRequest struct {
	Date    string `json:"date"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Symbol  string `json:"symbol"`
	Pattern string `json:"recurrencePattern"`
}

type recurrenceRequest struct {
	Pattern *string `json:"pattern"`
}

type stateRequest struct {
	Symbol string `json:"symbol"`
}

type completionRequest struct {
	TaskID    uint   `json:"taskId"`
	Date      string `json:"date"`
	Completed *bool  `json:"completed"`
}

type moodRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Mood string `json:"mood"`
	Note string `json:"note"`
}

type collectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type applyRequest struct {
	TemplateID string `json:"templateId"`
	StartDate  string `json:"startDate"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	res, err := s.svc.Occurrences.Generate(c.Request.Context(), userID(c), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Date == "" {
		req.Date = model.FormatDate(s.svc.Clock.Today())
	}

	task, err := s.svc.Tasks.CreateTask(c.Request.Context(), userID(c), service.TaskInput{
		Date:      req.Date,
		EntryType: model.EntryType(req.Type),
		Content:   req.Content,
		Symbol:    model.TaskSymbol(req.Symbol),
		Pattern:   req.Pattern,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleTaskDetail(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	detail, err := s.svc.Tasks.Detail(c.Request.Context(), userID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleSetRecurrence(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	var req recurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	pattern := ""
	if req.Pattern != nil {
		pattern = *req.Pattern
	}

	res, err := s.svc.Tasks.SetRecurrence(c.Request.Context(), userID(c), id, pattern)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleSetState(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	res, err := s.svc.Tasks.SetState(c.Request.Context(), userID(c), id, req.Symbol)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}
	if err := s.svc.Tasks.Delete(c.Request.Context(), userID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRecordCompletion(c *gin.Context) {
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	row, err := s.svc.Completions.Record(c.Request.Context(), userID(c), req.TaskID, req.Date, completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *Server) handleListCompletions(c *gin.Context) {
	id, ok := taskIDQuery(c)
	if !ok {
		return
	}
	start, end := c.Query("startDate"), c.Query("endDate")

	var (
		rows []model.TaskCompletion
		err  error
	)
	switch {
	case start == "" && end == "":
		rows, err = s.svc.Completions.List(c.Request.Context(), userID(c), id)
	case start == "" || end == "":
		badRequest(c, "startDate and endDate must be given together")
		return
	default:
		rows, err = s.svc.Completions.ListRange(c.Request.Context(), userID(c), id, start, end)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if rows == nil {
		rows = []model.TaskCompletion{}
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleDeleteCompletion(c *gin.Context) {
	id, ok := taskIDQuery(c)
	if !ok {
		return
	}
	if err := s.svc.Completions.Delete(c.Request.Context(), userID(c), id, c.Query("date")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.svc.Stats.Get(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleRecordMood(c *gin.Context) {
	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	mood, err := s.svc.Moods.Record(c.Request.Context(), userID(c), service.MoodInput{
		Date: req.Date,
		Time: req.Time,
		Mood: req.Mood,
		Note: req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mood)
}

func (s *Server) handleListMoods(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = model.FormatDate(s.svc.Clock.Today())
	}
	moods, err := s.svc.Moods.ListByDate(c.Request.Context(), userID(c), date)
	if err != nil {
		respondError(c, err)
		return
	}
	if moods == nil {
		moods = []model.MoodEntry{}
	}
	c.JSON(http.StatusOK, moods)
}

func (s *Server) handleCreateCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	collection, err := s.svc.Collections.Create(c.Request.Context(), userID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collection)
}

func (s *Server) handleListCollections(c *gin.Context) {
	collections, err := s.svc.Collections.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if collections == nil {
		collections = []model.Collection{}
	}
	c.JSON(http.StatusOK, collections)
}

func (s *Server) handleListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Templates.List())
}

func (s *Server) handleApplyTemplate(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.StartDate == "" {
		req.StartDate = model.FormatDate(s.svc.Clock.Today())
	}

	res, err := s.svc.Templates.Apply(c.Request.Context(), userID(c), req.TemplateID, req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func taskIDParam(c *gin.Context) (uint, bool) {
	return parseID(c, c.Param("id"), "task id")
}

func taskIDQuery(c *gin.Context) (uint, bool) {
	return parseID(c, c.Query("taskId"), "taskId")
}

func parseID(c *gin.Context, raw, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
