package settings

// AttendanceConfigKeys is the set of keys the config endpoints expose. The
// WhatsApp credentials are deliberately absent; those are written by the
// integrations admin surface, not this one.
var AttendanceConfigKeys = []string{
	KeyGpsAlerts,
	KeyGpsRadius,
	KeyAlertMethod,
	KeyLateAlert,
	KeyLateThreshold,
}

type UpdateAttendanceConfigRequest struct {
	EnableGpsAlerts *string `json:"enable_gps_alerts"`
	GpsRadius       *string `json:"gps_radius"`
	AlertMethod     *string `json:"alert_method"`
	EnableLateAlert *string `json:"enable_late_alert"`
	LateThreshold   *string `json:"late_threshold"`
}

func (r UpdateAttendanceConfigRequest) values() map[string]string {
	values := make(map[string]string)
	if r.EnableGpsAlerts != nil {
		values[KeyGpsAlerts] = *r.EnableGpsAlerts
	}
	if r.GpsRadius != nil {
		values[KeyGpsRadius] = *r.GpsRadius
	}
	if r.AlertMethod != nil {
		values[KeyAlertMethod] = *r.AlertMethod
	}
	if r.EnableLateAlert != nil {
		values[KeyLateAlert] = *r.EnableLateAlert
	}
	if r.LateThreshold != nil {
		values[KeyLateThreshold] = *r.LateThreshold
	}
	return values
}
