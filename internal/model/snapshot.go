package model

// DailySnapshot is one day of aggregated throwing data for a single athlete,
// as returned by the Pulse get_snapshots endpoint. Values are immutable once
// fetched; the vendor recomputes them server-side.
type DailySnapshot struct {
	Date                     string    `json:"date"` // ISO 8601 (YYYY-MM-DD)
	ThrowCount               int       `json:"throwCount"`
	HighEffortThrowCount     int       `json:"highEffortThrowCount"`
	AcuteWorkload            float64   `json:"acuteWorkload"`
	ChronicWorkload          float64   `json:"chronicWorkload"`
	NormAcuteWorkload        float64   `json:"normAcuteWorkload"`
	NormChronicWorkload      float64   `json:"normChronicWorkload"`
	WorkloadRatio            float64   `json:"workloadRatio"`
	DailyWorkload            float64   `json:"dailyWorkload"`
	NormDailyWorkload        float64   `json:"normDailyWorkload"`
	ProjectedOneDayWorkloads []float64 `json:"baseballProjectedOneDayWorkloads,omitempty"`
}

// ThrowEvent is a single recorded throw from the Pulse get_events endpoint.
// Tag is empty for untagged throws (the API sends null).
type ThrowEvent struct {
	EventID                 string   `json:"eventId"`
	Datetime                string   `json:"datetime"`
	Tag                     string   `json:"tag"`
	ArmSlot                 float64  `json:"armSlot"`
	ArmSpeed                float64  `json:"armSpeed"`
	ShoulderRotation        float64  `json:"shoulderRotation"`
	Torque                  float64  `json:"torque"`
	BallVelocity            *float64 `json:"ballVelocity"`
	BallWeightOz            float64  `json:"ballWeight (oz)"`
	PreferredBallWeightUnit string   `json:"preferredBallWeightUnit"`
	Scaler                  *float64 `json:"scaler"`
	Simulated               bool     `json:"simulated"`
	HighEffort              bool     `json:"highEffort"`
	Workload                float64  `json:"workload"`
	NormalizedWorkload      float64  `json:"normalizedWorkload"`
}

// Profile describes the owner of an API session.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Team is the get_team response: the team record plus its member list.
type Team struct {
	Team    TeamInfo     `json:"team"`
	Members []TeamMember `json:"members"`
}

// TeamInfo identifies a team.
type TeamInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// TeamMember is one athlete on a team.
type TeamMember struct {
	UserID           string `json:"userId"`
	TeamMemberID     string `json:"teamMemberId"`
	AthleteProfileID string `json:"athleteProfileId"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
}
