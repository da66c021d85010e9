package model

import (
	"sort"
	"time"
)

// PartStatus defines the possible lifecycle states of a part.
type PartStatus string

const (
	StatusActive        PartStatus = "Active"        // In service
	StatusInMaintenance PartStatus = "InMaintenance" // Removed for maintenance, repair or overhaul
	StatusRetired       PartStatus = "Retired"       // Permanently withdrawn from service
	StatusQuarantined   PartStatus = "Quarantined"   // Suspect part, pending investigation
)

// PartStatuses lists every valid status in declaration order.
var PartStatuses = []PartStatus{StatusActive, StatusInMaintenance, StatusRetired, StatusQuarantined}

// DocumentRef pairs a document name with the hash of its content.
// Only the hash is stored; the registry never verifies it.
type DocumentRef struct {
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// Part is the central record tracking one serialized aeronautic part.
type Part struct {
	ObjectType        string        `json:"objectType"` // "Part"
	UID               string        `json:"uid"`        // Immutable unique key
	PartNumber        string        `json:"partNumber"`
	SerialNumber      string        `json:"serialNumber"`
	Manufacturer      string        `json:"manufacturer"` // Principal of the OEM that created the part; never changes
	DateOfManufacture time.Time     `json:"dateOfManufacture"`
	CurrentOwner      string        `json:"currentOwner"`
	Status            PartStatus    `json:"status"`
	TotalHours        uint32        `json:"totalHours"`
	TotalCycles       uint32        `json:"totalCycles"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	Documents         []DocumentRef `json:"documents"` // Sorted by name, names unique
}

// Document returns the hash stored under name.
func (p *Part) Document(name string) (string, bool) {
	i := sort.Search(len(p.Documents), func(i int) bool { return p.Documents[i].Name >= name })
	if i < len(p.Documents) && p.Documents[i].Name == name {
		return p.Documents[i].Hash, true
	}
	return "", false
}

// SetDocument stores hash under name, replacing any previous hash for that name.
func (p *Part) SetDocument(name, hash string) {
	i := sort.Search(len(p.Documents), func(i int) bool { return p.Documents[i].Name >= name })
	if i < len(p.Documents) && p.Documents[i].Name == name {
		p.Documents[i].Hash = hash
		return
	}
	p.Documents = append(p.Documents, DocumentRef{})
	copy(p.Documents[i+1:], p.Documents[i:])
	p.Documents[i] = DocumentRef{Name: name, Hash: hash}
}

// DocumentsFromMap converts a name -> hash mapping into the sorted slice form.
func DocumentsFromMap(docs map[string]string) []DocumentRef {
	refs := make([]DocumentRef, 0, len(docs))
	for name, hash := range docs {
		refs = append(refs, DocumentRef{Name: name, Hash: hash})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs
}
