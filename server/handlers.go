package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/teachlens/teachlens-pipeline/auth"
	"github.com/teachlens/teachlens-pipeline/errs"
	"github.com/teachlens/teachlens-pipeline/orchestrator"
	"github.com/teachlens/teachlens-pipeline/report"
	"github.com/teachlens/teachlens-pipeline/store"
)

func (s *Server) health(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

func (s *Server) register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	t := &store.Teacher{
		Email:            req.Email,
		PasswordHash:     hash,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		EducationDetails: req.EducationDetails,
	}
	if err := s.store.CreateTeacher(t); err != nil {
		if errors.Is(err, errs.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "email_taken", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": t.ID})
}

func (s *Server) login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	t, err := s.store.TeacherByEmail(req.Email)
	if err != nil && !errors.Is(err, errs.ErrTeacherNotFound) {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	ok := false
	if t != nil {
		if ok, err = auth.CheckPassword(req.Password, t.PasswordHash); err != nil {
			s.log.WithError(err).WithField("teacher_id", t.ID).Warn("stored password hash unreadable")
		}
	}
	if !ok {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", errs.ErrInvalidCredentials)
		return
	}
	token, err := s.tokens.Issue(t.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	respondOK(c, gin.H{"token": token})
}

type evaluateRequest struct {
	Text         string  `json:"text"`
	AudioSeconds float64 `json:"audio_seconds"`
}

func (s *Server) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	respondOK(c, s.eval.Evaluate(req.Text, req.AudioSeconds))
}

func (s *Server) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes())
	fh, err := c.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "too_large", err)
			return
		}
		respondError(c, http.StatusBadRequest, "missing_file", errors.New("no video file provided"))
		return
	}
	name := filepath.Base(fh.Filename)
	if fh.Filename == "" || name == "." || name == string(filepath.Separator) {
		respondError(c, http.StatusBadRequest, "missing_file", errors.New("empty filename"))
		return
	}
	if fh.Size == 0 {
		respondError(c, http.StatusBadRequest, "empty_file", errs.ErrEmptyUpload)
		return
	}

	teacher, err := s.store.TeacherByID(teacherID(c))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	if dir := s.cfg.Paths.Uploads; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			respondError(c, http.StatusInternalServerError, "internal", err)
			return
		}
	}
	tmp, err := os.MkdirTemp(s.cfg.Paths.Uploads, "upload-*")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	defer os.RemoveAll(tmp)
	dst := filepath.Join(tmp, name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	info := teacher.Info()
	b, err := s.runner.Run(c.Request.Context(), dst, orchestrator.Meta{Source: name, Teacher: &info})
	if err != nil {
		if errors.Is(err, errs.ErrUnsupportedMedia) {
			respondError(c, http.StatusBadRequest, "unsupported_media", err)
			return
		}
		s.log.WithError(err).WithField("source", name).Error("pipeline failed")
		respondError(c, http.StatusInternalServerError, "pipeline_failed", err)
		return
	}

	pdf, err := report.PDF(b.Document())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "render_failed", err)
		return
	}
	rec := &store.Report{
		ID:         b.ID,
		Filename:   name,
		Timestamp:  b.GeneratedAt,
		Rubric:     b.Result,
		Transcript: b.Transcript,
		PDFData:    pdf,
		TeacherID:  teacher.ID,
	}
	if err := s.store.SaveReport(rec); err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	s.log.WithFields(logrus.Fields{"report_id": rec.ID, "teacher_id": teacher.ID}).Info("upload evaluated")
	respondOK(c, gin.H{"message": "Report generated", "report_id": rec.ID})
}

func (s *Server) listReports(c *gin.Context) {
	list, err := s.store.ListReports(teacherID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	respondOK(c, list)
}

func (s *Server) getReport(c *gin.Context) {
	r, err := s.store.GetReport(teacherID(c), c.Param("id"))
	if errors.Is(err, errs.ErrReportNotFound) {
		respondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	disp := mime.FormatMediaType("attachment", map[string]string{"filename": fmt.Sprintf("%s_Evaluation.pdf", r.Filename)})
	c.Header("Content-Disposition", disp)
	c.Data(http.StatusOK, "application/pdf", r.PDFData)
}
