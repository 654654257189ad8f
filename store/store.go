package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/teachlens/teachlens-pipeline/errs"
)

type Store struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// Open connects to the sqlite file at path and migrates the schema.
func Open(path string, logg logrus.FieldLogger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Teacher{}, &Report{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &Store{db: db, log: logg.WithField("component", "store")}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (s *Store) CreateTeacher(t *Teacher) error {
	t.Email = normEmail(t.Email)
	if _, err := s.TeacherByEmail(t.Email); err == nil {
		return errs.ErrEmailTaken
	} else if !errors.Is(err, errs.ErrTeacherNotFound) {
		return err
	}
	if err := s.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrEmailTaken
		}
		return fmt.Errorf("create teacher: %w", err)
	}
	s.log.WithField("teacher_id", t.ID).Info("teacher registered")
	return nil
}

func (s *Store) TeacherByEmail(email string) (*Teacher, error) {
	var t Teacher
	err := s.db.Where("email = ?", normEmail(email)).First(&t).Error
	return s.teacherResult(&t, err)
}

func (s *Store) TeacherByID(id uint) (*Teacher, error) {
	var t Teacher
	err := s.db.First(&t, id).Error
	return s.teacherResult(&t, err)
}

func (s *Store) teacherResult(t *Teacher, err error) (*Teacher, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrTeacherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load teacher: %w", err)
	}
	return t, nil
}

// SaveReport fills in a missing id and timestamp before inserting.
func (s *Store) SaveReport(r *Report) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	if r.PDFData == nil {
		r.PDFData = []byte{}
	}
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	s.log.WithFields(logrus.Fields{"report_id": r.ID, "teacher_id": r.TeacherID}).Info("report saved")
	return nil
}

// ListReports returns the teacher's reports, newest first.
func (s *Store) ListReports(teacherID uint) ([]ReportSummary, error) {
	out := []ReportSummary{}
	err := s.db.Model(&Report{}).
		Select("id", "filename", "timestamp").
		Where("teacher_id = ?", teacherID).
		Order("timestamp DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

// GetReport only returns reports owned by teacherID.
func (s *Store) GetReport(teacherID uint, id string) (*Report, error) {
	var r Report
	err := s.db.Where("id = ? AND teacher_id = ?", id, teacherID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &r, nil
}
