package gpsattendance

import (
	"encoding/json"
	"time"

	"go-school/internal/geo"
)

type RecordCheckInRequest struct {
	TeacherID         string          `json:"teacher_id" binding:"required,uuid"`
	Latitude          *float64        `json:"latitude" binding:"required"`
	Longitude         *float64        `json:"longitude" binding:"required"`
	BiometricVerified bool            `json:"biometric_verified"`
	BiometricData     *string         `json:"biometric_data"`
	DeviceInfo        json.RawMessage `json:"device_info"`
}

type GenerateMobileLinkRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
}

type CheckInResponse struct {
	ID                 string   `json:"id"`
	SchoolID           string   `json:"school_id"`
	TeacherID          string   `json:"teacher_id"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	MarkedAt           string   `json:"marked_at"`
	DistanceFromSchool float64  `json:"distance_from_school"`
	ZoneStatus         geo.Zone `json:"zone_status"`
	OutOfRange         bool     `json:"out_of_range"`
	BiometricVerified  bool     `json:"biometric_verified"`
}

// RecordCheckInResponse is what the check-in caller sees: the persisted row
// plus the classification and whether an alert was raised.
type RecordCheckInResponse struct {
	CheckIn      CheckInResponse `json:"check_in"`
	Distance     float64         `json:"distance"`
	ZoneStatus   geo.Zone        `json:"zone_status"`
	OutOfRange   bool            `json:"out_of_range"`
	AlertCreated bool            `json:"alert_created"`
}

type MobileLinkResponse struct {
	SessionID  string `json:"session_id"`
	MobileLink string `json:"mobile_link"`
	ExpiresAt  string `json:"expires_at"`
}

type SessionResponse struct {
	ID                 string  `json:"id"`
	SchoolID           string  `json:"school_id"`
	TeacherID          string  `json:"teacher_id"`
	Status             string  `json:"status"`
	TotalCheckIns      int     `json:"total_check_ins"`
	InRangeCheckIns    int     `json:"in_range_check_ins"`
	OutOfRangeCheckIns int     `json:"out_of_range_check_ins"`
	SessionStarted     *string `json:"session_started,omitempty"`
	SessionEnded       *string `json:"session_ended,omitempty"`
}

func mapCheckInToResponse(c GpsCheckIn) CheckInResponse {
	return CheckInResponse{
		ID:                 c.ID.String(),
		SchoolID:           c.SchoolID.String(),
		TeacherID:          c.TeacherID.String(),
		Latitude:           c.Latitude,
		Longitude:          c.Longitude,
		MarkedAt:           c.MarkedAt.Format(time.RFC3339),
		DistanceFromSchool: c.DistanceFromSchool,
		ZoneStatus:         c.ZoneStatus,
		OutOfRange:         c.OutOfRange,
		BiometricVerified:  c.BiometricVerified,
	}
}

func mapSessionToResponse(s GpsSession) SessionResponse {
	resp := SessionResponse{
		ID:                 s.ID.String(),
		SchoolID:           s.SchoolID.String(),
		TeacherID:          s.TeacherID.String(),
		Status:             s.Status,
		TotalCheckIns:      s.TotalCheckIns,
		InRangeCheckIns:    s.InRangeCheckIns,
		OutOfRangeCheckIns: s.OutOfRangeCheckIns,
	}
	if s.SessionStarted != nil {
		v := s.SessionStarted.Format(time.RFC3339)
		resp.SessionStarted = &v
	}
	if s.SessionEnded != nil {
		v := s.SessionEnded.Format(time.RFC3339)
		resp.SessionEnded = &v
	}
	return resp
}
