package alert

import "time"

type AcknowledgeRequest struct {
	ActionTaken *string `json:"action_taken"`
}

type AlertResponse struct {
	ID                string     `json:"id"`
	SchoolID          string     `json:"school_id"`
	AlertType         string     `json:"alert_type"`
	Severity          string     `json:"severity"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	RelatedEntityType *string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string    `json:"related_entity_id,omitempty"`
	GpsLogID          *string    `json:"gps_log_id,omitempty"`
	SentVia           string     `json:"sent_via"`
	Acknowledged      bool       `json:"acknowledged"`
	AcknowledgedBy    *string    `json:"acknowledged_by,omitempty"`
	AcknowledgedAt    *time.Time `json:"acknowledged_at,omitempty"`
	ActionTaken       *string    `json:"action_taken,omitempty"`
	Resolved          bool       `json:"resolved"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func mapToResponse(a PrincipalAlert) AlertResponse {
	resp := AlertResponse{
		ID:                a.ID.String(),
		SchoolID:          a.SchoolID.String(),
		AlertType:         a.AlertType,
		Severity:          string(a.Severity),
		Title:             a.Title,
		Message:           a.Message,
		RelatedEntityType: a.RelatedEntityType,
		SentVia:           a.SentVia,
		Acknowledged:      a.Acknowledged,
		AcknowledgedAt:    a.AcknowledgedAt,
		ActionTaken:       a.ActionTaken,
		Resolved:          a.Resolved,
		ResolvedAt:        a.ResolvedAt,
		CreatedAt:         a.CreatedAt,
	}
	if a.RelatedEntityID != nil {
		v := a.RelatedEntityID.String()
		resp.RelatedEntityID = &v
	}
	if a.GpsLogID != nil {
		v := a.GpsLogID.String()
		resp.GpsLogID = &v
	}
	if a.AcknowledgedBy != nil {
		v := a.AcknowledgedBy.String()
		resp.AcknowledgedBy = &v
	}
	return resp
}

func mapToListResponse(rows []PrincipalAlert) []AlertResponse {
	res := make([]AlertResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
