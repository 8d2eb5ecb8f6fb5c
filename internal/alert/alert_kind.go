package alert

import (
	"fmt"
	"time"

	"go-school/internal/geo"

	"github.com/google/uuid"
)

// Kind tags each alert variant with its fixed title, keeping message wording
// out of the recording control flow.
type Kind string

const (
	KindGpsOutOfRange      Kind = "gps_out_of_range"
	KindLateArrival        Kind = "late_arrival"
	KindAbsentSpike        Kind = "absent_spike"
	KindSuspiciousActivity Kind = "suspicious_activity"
)

var kindTitles = map[Kind]string{
	KindGpsOutOfRange:      "Out-of-Range GPS Attendance",
	KindLateArrival:        "Late Arrival",
	KindAbsentSpike:        "Absence Spike",
	KindSuspiciousActivity: "Suspicious Activity",
}

func (k Kind) Title() string {
	if title, ok := kindTitles[k]; ok {
		return title
	}
	return string(k)
}

// SeverityForZone maps the out-of-range zones onto alert severities. The GPS
// path never produces critical; that level is reserved for other kinds.
func SeverityForZone(zone geo.Zone) Severity {
	if zone == geo.ZoneRed {
		return SeverityHigh
	}
	return SeverityMedium
}

// NewOutOfRange builds the unsaved alert row for an out-of-range check-in.
// The distance is rounded to whole meters in the message.
func NewOutOfRange(
	schoolID, teacherID uuid.UUID,
	teacherName string,
	distanceMeters float64,
	zone geo.Zone,
	gpsLogID uuid.UUID,
) *PrincipalAlert {
	entityType := "teacher"
	teacherRef := teacherID
	logRef := gpsLogID

	return &PrincipalAlert{
		ID:                uuid.New(),
		SchoolID:          schoolID,
		AlertType:         string(KindGpsOutOfRange),
		Severity:          SeverityForZone(zone),
		Title:             KindGpsOutOfRange.Title(),
		Message:           fmt.Sprintf("Teacher %s marked attendance %.0fm from school (%s zone)", teacherName, distanceMeters, zone),
		RelatedEntityType: &entityType,
		RelatedEntityID:   &teacherRef,
		GpsLogID:          &logRef,
		SentVia:           "dashboard",
		Acknowledged:      false,
		Resolved:          false,
		CreatedAt:         time.Now().UTC(),
	}
}
