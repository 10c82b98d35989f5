package domain

type AlertStats struct {
	TotalAlerts        int64 `json:"total_alerts"`
	ActiveAlerts       int64 `json:"active_alerts"`
	AlertsToday        int64 `json:"alerts_today"`
	ConfirmationsToday int64 `json:"confirmations_today"`
}

type PresenceStats struct {
	Sessions      int `json:"sessions"`
	Authenticated int `json:"authenticated"`
	Located       int `json:"located"`
	Topics        int `json:"topics"`
}

type AdminStats struct {
	Alerts   AlertStats    `json:"alerts"`
	Presence PresenceStats `json:"presence"`
}
