package model

// OrgKind classifies an organization taking part in the parts lifecycle.
type OrgKind string

const (
	KindOEM         OrgKind = "OEM"         // Original Equipment Manufacturer
	KindMRO         OrgKind = "MRO"         // Maintenance, Repair and Overhaul
	KindAirline     OrgKind = "Airline"
	KindLessor      OrgKind = "Lessor"
	KindDistributor OrgKind = "Distributor" // Certified parts distributor
)

// Organization is one roster entry in the principal directory.
type Organization struct {
	ObjectType   string   `json:"objectType"` // "Organization"
	ID           string   `json:"id"`         // Principal of the organization
	Name         string   `json:"name"`
	Kind         OrgKind  `json:"kind"`
	Certificates []string `json:"certificates"` // Approval references, e.g. "EASA.21G.0001"
	Active       bool     `json:"active"`
}

// OrganizationRoster holds both authorization rosters.
type OrganizationRoster struct {
	OEMs []Organization `json:"oems"`
	MROs []Organization `json:"mros"`
}

// GlobalStats summarizes the registry for administrators.
type GlobalStats struct {
	TotalParts uint32 `json:"totalParts"`
	TotalOEMs  uint32 `json:"totalOems"` // Roster entries, inactive and duplicate entries included
	TotalMROs  uint32 `json:"totalMros"`
}

// OwnerStats summarizes the parts held by one owner.
// Quarantined parts count towards TotalOwned only.
type OwnerStats struct {
	TotalOwned    uint32 `json:"totalOwned"`
	Active        uint32 `json:"active"`
	InMaintenance uint32 `json:"inMaintenance"`
	Retired       uint32 `json:"retired"`
}

// CallerInfo describes the invoking principal as the registry sees it.
type CallerInfo struct {
	Principal       string `json:"principal"`
	OrganizationMSP string `json:"organizationMsp"`
}
