package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/errs"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	log, _ := test.NewNullLogger()
	s, err := Open(filepath.Join(t.TempDir(), "data", "teachlens.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTeacher(email string) *Teacher {
	return &Teacher{Email: email, PasswordHash: "hash", FirstName: "Grace", LastName: "Hopper", EducationDetails: "BSc Computer Science"}
}

func TestTeachers(t *testing.T) {
	req := require.New(t)
	s := openTest(t)

	tch := newTeacher("  Grace@School.test ")
	req.NoError(s.CreateTeacher(tch))
	req.NotZero(tch.ID)
	req.Equal("grace@school.test", tch.Email)

	// When the same address registers again in another case
	req.ErrorIs(s.CreateTeacher(newTeacher("GRACE@school.test")), errs.ErrEmailTaken)

	got, err := s.TeacherByEmail("grace@SCHOOL.test")
	req.NoError(err)
	req.Equal(tch.ID, got.ID)
	req.Equal("Grace Hopper", got.Info().Name())

	got, err = s.TeacherByID(tch.ID)
	req.NoError(err)
	req.Equal("BSc Computer Science", got.EducationDetails)

	_, err = s.TeacherByEmail("nobody@school.test")
	req.ErrorIs(err, errs.ErrTeacherNotFound)
	_, err = s.TeacherByID(9999)
	req.ErrorIs(err, errs.ErrTeacherNotFound)
}

func TestReports(t *testing.T) {
	req := require.New(t)
	s := openTest(t)

	a, b := newTeacher("a@school.test"), newTeacher("b@school.test")
	req.NoError(s.CreateTeacher(a))
	req.NoError(s.CreateTeacher(b))

	rubric := analysis.DefaultRubric().Score(
		analysis.SentimentScores{Neutral: 0.9, Positive: 0.1, Compound: 0.3},
		analysis.Metrics{WordsPerMinute: 130, FillerCount: 9, LexicalDiversity: 0.41},
	)
	old := &Report{Filename: "monday.mp4", Timestamp: time.Now().Add(-time.Hour).UTC(), Rubric: rubric, Transcript: "um okay", PDFData: []byte("%PDF-1.3"), TeacherID: a.ID}
	fresh := &Report{Filename: "tuesday.mp4", Rubric: rubric, Transcript: "so", TeacherID: a.ID}
	other := &Report{Filename: "b.mp4", Rubric: rubric, Transcript: "x", TeacherID: b.ID}
	for _, r := range []*Report{old, fresh, other} {
		req.NoError(s.SaveReport(r))
		req.Len(r.ID, 36)
		req.False(r.Timestamp.IsZero())
	}

	list, err := s.ListReports(a.ID)
	req.NoError(err)
	req.Len(list, 2)
	req.Equal("tuesday.mp4", list[0].Filename)
	req.Equal(old.ID, list[1].ID)

	got, err := s.GetReport(a.ID, old.ID)
	req.NoError(err)
	req.Equal(rubric, got.Rubric)
	req.Equal([]byte("%PDF-1.3"), got.PDFData)

	// Then another teacher's report is invisible
	_, err = s.GetReport(a.ID, other.ID)
	req.ErrorIs(err, errs.ErrReportNotFound)
	_, err = s.GetReport(a.ID, "missing")
	req.ErrorIs(err, errs.ErrReportNotFound)

	empty, err := s.ListReports(12345)
	req.NoError(err)
	req.NotNil(empty)
	req.Empty(empty)
}
