package dashboard

import "go-school/internal/geo"

// Snapshot keys stay camelCase; the principal dashboard frontend consumes
// this payload as-is.
type Snapshot struct {
	TotalStudents        int     `json:"totalStudents"`
	PresentStudents      int     `json:"presentStudents"`
	AbsentStudents       int     `json:"absentStudents"`
	LateStudents         int     `json:"lateStudents"`
	AttendancePercentage float64 `json:"attendancePercentage"`

	TotalTeachers      int64 `json:"totalTeachers"`
	TeachersPresent    int   `json:"teachersPresent"`
	TeachersInRange    int   `json:"teachersInRange"`
	TeachersNearRange  int   `json:"teachersNearRange"`
	TeachersOutOfRange int   `json:"teachersOutOfRange"`

	AlertsGenerated int `json:"alertsGenerated"`
	CriticalAlerts  int `json:"criticalAlerts"`

	ClasswiseData  []ClasswiseEntry `json:"classwiseData"`
	GpsHeatmapData []HeatmapPoint   `json:"gpsHeatmapData"`

	LastUpdated string `json:"lastUpdated"`
}

type ClasswiseEntry struct {
	ClassID       string  `json:"classId"`
	ClassName     string  `json:"className"`
	TotalStudents int     `json:"totalStudents"`
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	Percentage    float64 `json:"percentage"`
}

type HeatmapPoint struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Zone      geo.Zone `json:"zone"`
	TeacherID string   `json:"teacherId"`
	MarkedAt  string   `json:"markedAt"`
}
