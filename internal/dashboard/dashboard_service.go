package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go-school/internal/alert"
	"go-school/internal/attendance"
	"go-school/internal/geo"
	"go-school/internal/gpsattendance"
	"go-school/internal/teacher"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const heatmapLimit = 20

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Snapshot(ctx context.Context, schoolID string, date time.Time) (Snapshot, error)
}

type service struct {
	attendance attendance.Repository
	gps        gpsattendance.Repository
	alerts     alert.Repository
	teachers   teacher.Repository
	logger     *zap.Logger
}

func NewService(
	attendanceRepo attendance.Repository,
	gpsRepo gpsattendance.Repository,
	alertRepo alert.Repository,
	teacherRepo teacher.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		attendance: attendanceRepo,
		gps:        gpsRepo,
		alerts:     alertRepo,
		teachers:   teacherRepo,
		logger:     l,
	}
}

// Snapshot assembles the principal dashboard for one school day. All sources
// are plain reads; a school with no data that day gets zeros and empty
// slices, not an error.
func (s *service) Snapshot(ctx context.Context, schoolID string, date time.Time) (Snapshot, error) {
	snap := Snapshot{
		ClasswiseData:  []ClasswiseEntry{},
		GpsHeatmapData: []HeatmapPoint{},
		LastUpdated:    time.Now().UTC().Format(time.RFC3339),
	}

	students, err := s.attendance.FindStudentsBySchool(ctx, schoolID)
	if err != nil {
		return Snapshot{}, err
	}
	records, err := s.attendance.FindRecordsByDate(ctx, schoolID, date)
	if err != nil {
		return Snapshot{}, err
	}

	snap.TotalStudents = len(students)
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			snap.PresentStudents++
		case attendance.StatusAbsent:
			snap.AbsentStudents++
		case attendance.StatusLate:
			snap.LateStudents++
		}
	}
	snap.AttendancePercentage = percentage(snap.PresentStudents+snap.LateStudents, snap.TotalStudents)

	snap.TotalTeachers, err = s.teachers.CountBySchool(ctx, schoolID)
	if err != nil {
		return Snapshot{}, err
	}

	checkIns, err := s.gps.FindCheckInsByDate(ctx, schoolID, date)
	if err != nil {
		return Snapshot{}, err
	}
	s.fillTeacherZones(&snap, checkIns)
	snap.GpsHeatmapData = heatmap(checkIns)

	alerts, err := s.alerts.FindByDate(ctx, schoolID, date)
	if err != nil {
		return Snapshot{}, err
	}
	snap.AlertsGenerated = len(alerts)
	for _, a := range alerts {
		if a.Severity == alert.SeverityHigh || a.Severity == alert.SeverityCritical {
			snap.CriticalAlerts++
		}
	}

	snap.ClasswiseData, err = s.classwise(ctx, schoolID, students, records)
	if err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

// fillTeacherZones counts each teacher once by their latest zone of the day.
// Check-ins arrive ordered newest first, so the first row seen per teacher
// wins.
func (s *service) fillTeacherZones(snap *Snapshot, checkIns []gpsattendance.GpsCheckIn) {
	seen := make(map[uuid.UUID]bool, len(checkIns))
	for _, ci := range checkIns {
		if seen[ci.TeacherID] {
			continue
		}
		seen[ci.TeacherID] = true
		snap.TeachersPresent++
		switch ci.ZoneStatus {
		case geo.ZoneGreen:
			snap.TeachersInRange++
		case geo.ZoneOrange:
			snap.TeachersNearRange++
		case geo.ZoneRed:
			snap.TeachersOutOfRange++
		}
	}
}

func heatmap(checkIns []gpsattendance.GpsCheckIn) []HeatmapPoint {
	points := make([]HeatmapPoint, 0, heatmapLimit)
	for _, ci := range checkIns {
		if len(points) == heatmapLimit {
			break
		}
		points = append(points, HeatmapPoint{
			Lat:       ci.Latitude,
			Lng:       ci.Longitude,
			Zone:      ci.ZoneStatus,
			TeacherID: ci.TeacherID.String(),
			MarkedAt:  ci.MarkedAt.Format(time.RFC3339),
		})
	}
	return points
}

func (s *service) classwise(ctx context.Context, schoolID string, students []attendance.Student, records []attendance.Record) ([]ClasswiseEntry, error) {
	classes, err := s.attendance.FindClassesBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	rosterSize := make(map[uuid.UUID]int, len(classes))
	for _, st := range students {
		if st.ClassID != nil {
			rosterSize[*st.ClassID]++
		}
	}

	present := make(map[uuid.UUID]int, len(classes))
	absent := make(map[uuid.UUID]int, len(classes))
	for _, rec := range records {
		if rec.ClassID == nil {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusLate:
			present[*rec.ClassID]++
		case attendance.StatusAbsent:
			absent[*rec.ClassID]++
		}
	}

	entries := make([]ClasswiseEntry, 0, len(classes))
	for _, cls := range classes {
		total := rosterSize[cls.ID]
		entries = append(entries, ClasswiseEntry{
			ClassID:       cls.ID.String(),
			ClassName:     className(cls),
			TotalStudents: total,
			Present:       present[cls.ID],
			Absent:        absent[cls.ID],
			Percentage:    percentage(present[cls.ID], total),
		})
	}
	return entries, nil
}

func className(cls attendance.Class) string {
	if strings.TrimSpace(cls.Section) == "" {
		return cls.Name
	}
	return fmt.Sprintf("%s %s", cls.Name, cls.Section)
}

func percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part) / float64(total) * 100)
}
