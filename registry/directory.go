package registry

import (
	"fmt"
	"time"

	"aeroparts/model"
)

// adminRecord marks a principal as a registry administrator.
type adminRecord struct {
	ObjectType string    `json:"objectType"` // "Admin"
	Principal  string    `json:"principal"`
	AddedAt    time.Time `json:"addedAt"`
}

// Directory holds the administrator set and the OEM and MRO rosters.
//
// Each registration is its own roster entry keyed by kind, principal and a
// per-principal sequence number, so registering a principal twice leaves two
// entries and membership checks only touch that principal's entries.
type Directory struct {
	state  State
	clock  Clock
	policy *Policy
}

// Initialize seeds the administrator set. It succeeds exactly once per ledger.
func (d *Directory) Initialize(admin string) error {
	if err := validateRequiredString(admin, "admin", maxStringInputLength); err != nil {
		return err
	}
	initialized, err := anyAdmin(d.state)
	if err != nil {
		return fmt.Errorf("Initialize: failed to check for existing admins: %w", err)
	}
	if initialized {
		return fmt.Errorf("%w: registry already has an administrator", ErrAlreadyInitialized)
	}

	now, err := d.clock.Now()
	if err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	key, err := d.state.CreateCompositeKey(adminObjectType, []string{admin})
	if err != nil {
		return fmt.Errorf("Initialize: failed to create admin key for '%s': %w", admin, err)
	}
	if err := putJSON(d.state, key, adminRecord{ObjectType: adminObjectType, Principal: admin, AddedAt: now}); err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	logger.Infof("Registry initialized with admin '%s'", admin)
	return nil
}

// RegisterOrganization appends an active roster entry for org. Only OEM and
// MRO organizations have rosters.
func (d *Directory) RegisterOrganization(caller, org, name string, kind model.OrgKind, certificates []string) (*model.Organization, error) {
	if err := d.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := rosterKind(kind); err != nil {
		return nil, err
	}
	if err := validateRequiredString(org, "organization id", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := validateOptionalString(name, "name", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := validateStringArray(certificates, "certificates", maxArrayElements, maxStringInputLength); err != nil {
		return nil, err
	}

	existing := 0
	err := scan(d.state, organizationObjectType, []string{string(kind), org}, func(string, *model.Organization) {
		existing++
	})
	if err != nil {
		return nil, fmt.Errorf("RegisterOrganization: %w", err)
	}
	if existing > 0 {
		logger.Warningf("Principal '%s' is already on the %s roster (%d entries); adding another entry", org, kind, existing)
	}

	key, err := d.state.CreateCompositeKey(organizationObjectType, []string{string(kind), org, fmt.Sprintf("%06d", existing)})
	if err != nil {
		return nil, fmt.Errorf("RegisterOrganization: failed to create roster key for '%s': %w", org, err)
	}
	if certificates == nil {
		certificates = []string{}
	}
	entry := &model.Organization{
		ObjectType:   organizationObjectType,
		ID:           org,
		Name:         name,
		Kind:         kind,
		Certificates: certificates,
		Active:       true,
	}
	if err := putJSON(d.state, key, entry); err != nil {
		return nil, fmt.Errorf("RegisterOrganization: %w", err)
	}
	logger.Infof("Registered new %s '%s' (%s) by admin '%s'", kind, org, name, caller)
	return entry, nil
}

// SetOrganizationActive flips the active flag on every roster entry of org.
// Entries are never removed, so parts keep a resolvable manufacturer.
func (d *Directory) SetOrganizationActive(caller, org string, kind model.OrgKind, active bool) ([]model.Organization, error) {
	if err := d.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := rosterKind(kind); err != nil {
		return nil, err
	}

	type keyedEntry struct {
		key   string
		entry model.Organization
	}
	var entries []keyedEntry
	err := scan(d.state, organizationObjectType, []string{string(kind), org}, func(key string, o *model.Organization) {
		entries = append(entries, keyedEntry{key: key, entry: *o})
	})
	if err != nil {
		return nil, fmt.Errorf("SetOrganizationActive: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: '%s' is not on the %s roster", ErrOrgNotRegistered, org, kind)
	}

	updated := make([]model.Organization, 0, len(entries))
	for _, e := range entries {
		e.entry.Active = active
		if err := putJSON(d.state, e.key, e.entry); err != nil {
			return nil, fmt.Errorf("SetOrganizationActive: %w", err)
		}
		updated = append(updated, e.entry)
	}
	logger.Infof("Set active=%t on %d %s roster entries for '%s' by admin '%s'", active, len(updated), kind, org, caller)
	return updated, nil
}

// Lookup returns the first roster entry for org, active or not.
func (d *Directory) Lookup(org string, kind model.OrgKind) (*model.Organization, error) {
	if err := rosterKind(kind); err != nil {
		return nil, err
	}
	var first *model.Organization
	err := scan(d.state, organizationObjectType, []string{string(kind), org}, func(_ string, o *model.Organization) {
		if first == nil {
			first = o
		}
	})
	if err != nil {
		return nil, fmt.Errorf("Lookup: %w", err)
	}
	if first == nil {
		return nil, fmt.Errorf("%w: '%s' is not on the %s roster", ErrOrgNotRegistered, org, kind)
	}
	return first, nil
}

// Roster returns every entry registered for kind, in key order.
func (d *Directory) Roster(kind model.OrgKind) ([]model.Organization, error) {
	return roster(d.state, kind)
}

func roster(state State, kind model.OrgKind) ([]model.Organization, error) {
	orgs := []model.Organization{}
	err := scan(state, organizationObjectType, []string{string(kind)}, func(_ string, o *model.Organization) {
		orgs = append(orgs, *o)
	})
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func anyAdmin(state State) (bool, error) {
	iter, err := state.GetStateByPartialCompositeKey(adminObjectType, []string{})
	if err != nil {
		return false, fmt.Errorf("failed to query admin records: %w", err)
	}
	defer iter.Close()
	return iter.HasNext(), nil
}

func isAdmin(state State, principal string) (bool, error) {
	key, err := state.CreateCompositeKey(adminObjectType, []string{principal})
	if err != nil {
		return false, fmt.Errorf("failed to create admin key for '%s': %w", principal, err)
	}
	raw, err := state.GetState(key)
	if err != nil {
		return false, fmt.Errorf("ledger error checking admin record for '%s': %w", principal, err)
	}
	return raw != nil, nil
}

func isActiveMember(state State, principal string, kind model.OrgKind) (bool, error) {
	active := false
	err := scan(state, organizationObjectType, []string{string(kind), principal}, func(_ string, o *model.Organization) {
		if o.Active {
			active = true
		}
	})
	return active, err
}
