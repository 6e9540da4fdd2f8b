package schemas

// ThreatLevel is the closed severity scale attached to an analyzed profile.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "Low"
	ThreatMedium   ThreatLevel = "Medium"
	ThreatHigh     ThreatLevel = "High"
	ThreatCritical ThreatLevel = "Critical"
)

// Platform identifies the social network a profile or record belongs to.
type Platform string

const (
	PlatformTwitter   Platform = "Twitter"
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformTelegram  Platform = "Telegram"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{PlatformTwitter, PlatformInstagram, PlatformFacebook, PlatformTelegram}

// IsValid reports whether p is one of the supported platforms.
func (p Platform) IsValid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Agency is the team that took an enforcement action.
type Agency string

const (
	AgencyTrustSafety Agency = "Trust & Safety"
	AgencyAutoMod     Agency = "Auto-Mod"
	AgencyCyberCell   Agency = "Cyber Cell"
)

// Agencies lists every agency in display order.
var Agencies = []Agency{AgencyTrustSafety, AgencyAutoMod, AgencyCyberCell}

// EvidenceStatus tracks where an evidence record is in review.
type EvidenceStatus string

const (
	StatusPending   EvidenceStatus = "Pending"
	StatusVerified  EvidenceStatus = "Verified"
	StatusEscalated EvidenceStatus = "Escalated"
)

// EvidenceStatuses lists every status in display order.
var EvidenceStatuses = []EvidenceStatus{StatusPending, StatusVerified, StatusEscalated}

// -- Analysis --

// ScanResult is the structured verdict returned for a single profile.
type ScanResult struct {
	TrustScore      int         `json:"trustScore"`
	IsSuspicious    bool        `json:"isSuspicious"`
	Flags           []string    `json:"flags"`
	Analysis        string      `json:"analysis"`
	ThreatLevel     ThreatLevel `json:"threatLevel"`
	SuggestedAction string      `json:"suggestedAction"`
}

// SuspectProfile is a profile surfaced by a topic scan, ready for analysis.
type SuspectProfile struct {
	Username    string   `json:"username"`
	Platform    Platform `json:"platform"`
	Bio         string   `json:"bio"`
	RecentPosts string   `json:"recentPosts"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
}

// ScanReport wraps the profiles found by a topic scan with the monitor log.
type ScanReport struct {
	ID       string           `json:"id"`
	Topic    string           `json:"topic"`
	Log      []string         `json:"log"`
	Profiles []SuspectProfile `json:"profiles"`
}

// -- Evidence --

// EvidenceRecord is one immutable entry of the enforcement ledger.
type EvidenceRecord struct {
	ID          string         `json:"id"`
	Timestamp   string         `json:"timestamp"`
	TargetUser  string         `json:"targetUser"`
	Platform    Platform       `json:"platform"`
	ActionTaken string         `json:"actionTaken"`
	Hash        string         `json:"hash"`
	Agency      Agency         `json:"agency"`
	Status      EvidenceStatus `json:"status"`
}

// -- Dashboard --

// DashboardStats are the headline counters of the command center.
type DashboardStats struct {
	ActiveThreats       int `json:"activeThreats"`
	AccountsTakenDown   int `json:"accountsTakenDown"`
	IdentitiesMonitored int `json:"identitiesMonitored"`
	RegionsCovered      int `json:"regionsCovered"`
}

// SeriesPoint is a named value in a chart series.
type SeriesPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ActivityEntry is a line of the real-time activity feed.
type ActivityEntry struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// DashboardSnapshot is a consistent copy of everything the command center shows.
type DashboardSnapshot struct {
	Stats                DashboardStats  `json:"stats"`
	ThreatVelocity       []SeriesPoint   `json:"threatVelocity"`
	PlatformDistribution []SeriesPoint   `json:"platformDistribution"`
	ActivityLog          []ActivityEntry `json:"activityLog"`
}

// -- Botnet graph --

// NodeKind classifies a node of the interaction graph.
type NodeKind string

const (
	NodeTarget NodeKind = "target"
	NodeHub    NodeKind = "hub"
	NodeBot    NodeKind = "bot"
	NodeSafe   NodeKind = "safe"
)

// GraphNode is a positioned node of the interaction graph. Coordinates are
// percentages of the canvas.
type GraphNode struct {
	ID          int      `json:"id"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Kind        NodeKind `json:"type"`
	Connections []int    `json:"connections"`
}

// GraphEdge is a line drawn between two nodes.
type GraphEdge struct {
	Source    int  `json:"source"`
	Target    int  `json:"target"`
	Malicious bool `json:"malicious"`
}
