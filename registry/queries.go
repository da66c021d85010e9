package registry

import (
	"fmt"

	"aeroparts/model"
)

// Queries are the role-scoped read views. The caller principal is both the
// authorization subject and, for "my" views, the filter.
type Queries struct {
	state  State
	policy *Policy
}

// uidsWhere returns the uids of parts matching keep, in key order. The
// result is never nil.
func (q *Queries) uidsWhere(keep func(*model.Part) bool) ([]string, error) {
	uids := []string{}
	err := scan(q.state, partObjectType, []string{}, func(_ string, p *model.Part) {
		if keep(p) {
			uids = append(uids, p.UID)
		}
	})
	if err != nil {
		return nil, err
	}
	return uids, nil
}

// AllPartUIDs returns every uid in the registry. Admin only.
func (q *Queries) AllPartUIDs(caller string) ([]string, error) {
	if err := q.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	uids, err := q.uidsWhere(func(*model.Part) bool { return true })
	if err != nil {
		return nil, fmt.Errorf("GetAllPartUIDs: %w", err)
	}
	logger.Infof("Admin '%s' accessed all part UIDs (count: %d)", caller, len(uids))
	return uids, nil
}

// Organizations returns both rosters. Admin only.
func (q *Queries) Organizations(caller string) (*model.OrganizationRoster, error) {
	if err := q.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	oems, err := roster(q.state, model.KindOEM)
	if err != nil {
		return nil, fmt.Errorf("GetAllOrganizations: %w", err)
	}
	mros, err := roster(q.state, model.KindMRO)
	if err != nil {
		return nil, fmt.Errorf("GetAllOrganizations: %w", err)
	}
	logger.Infof("Admin '%s' accessed all organizations", caller)
	return &model.OrganizationRoster{OEMs: oems, MROs: mros}, nil
}

// GlobalStats counts parts and roster entries. Admin only.
func (q *Queries) GlobalStats(caller string) (*model.GlobalStats, error) {
	if err := q.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	stats := &model.GlobalStats{}
	countParts := func(string, *model.Part) { stats.TotalParts++ }
	if err := scan(q.state, partObjectType, []string{}, countParts); err != nil {
		return nil, fmt.Errorf("GetGlobalStats: %w", err)
	}
	countOEMs := func(string, *model.Organization) { stats.TotalOEMs++ }
	if err := scan(q.state, organizationObjectType, []string{string(model.KindOEM)}, countOEMs); err != nil {
		return nil, fmt.Errorf("GetGlobalStats: %w", err)
	}
	countMROs := func(string, *model.Organization) { stats.TotalMROs++ }
	if err := scan(q.state, organizationObjectType, []string{string(model.KindMRO)}, countMROs); err != nil {
		return nil, fmt.Errorf("GetGlobalStats: %w", err)
	}
	logger.Infof("Admin '%s' accessed global stats", caller)
	return stats, nil
}

// MyPartUIDs returns the uids currently owned by owner.
func (q *Queries) MyPartUIDs(owner string) ([]string, error) {
	uids, err := q.uidsWhere(func(p *model.Part) bool { return p.CurrentOwner == owner })
	if err != nil {
		return nil, fmt.Errorf("GetMyPartUIDs: %w", err)
	}
	logger.Infof("Owner '%s' accessed their parts (count: %d)", owner, len(uids))
	return uids, nil
}

// MyManufacturedParts returns the uids minted by manufacturer, whoever owns
// them now. Requires an active OEM.
func (q *Queries) MyManufacturedParts(manufacturer string) ([]string, error) {
	if err := q.policy.RequireActiveOEM(manufacturer); err != nil {
		return nil, err
	}
	uids, err := q.uidsWhere(func(p *model.Part) bool { return p.Manufacturer == manufacturer })
	if err != nil {
		return nil, fmt.Errorf("GetMyManufacturedParts: %w", err)
	}
	logger.Infof("OEM '%s' accessed manufactured parts (count: %d)", manufacturer, len(uids))
	return uids, nil
}

// PartsByStatus returns every part with status for administrators, and only
// the caller's own parts with status for everyone else.
func (q *Queries) PartsByStatus(caller string, status model.PartStatus) ([]string, error) {
	parsed, err := ParsePartStatus(string(status))
	if err != nil {
		return nil, err
	}
	status = parsed
	admin, err := q.policy.IsAdmin(caller)
	if err != nil {
		return nil, fmt.Errorf("GetMyPartsByStatus: failed to check admin status: %w", err)
	}

	var uids []string
	if admin {
		uids, err = q.uidsWhere(func(p *model.Part) bool { return p.Status == status })
		if err != nil {
			return nil, fmt.Errorf("GetMyPartsByStatus: %w", err)
		}
		logger.Infof("Admin '%s' accessed all parts with status %s (count: %d)", caller, status, len(uids))
		return uids, nil
	}

	uids, err = q.uidsWhere(func(p *model.Part) bool { return p.Status == status && p.CurrentOwner == caller })
	if err != nil {
		return nil, fmt.Errorf("GetMyPartsByStatus: %w", err)
	}
	logger.Infof("User '%s' accessed their parts with status %s (count: %d)", caller, status, len(uids))
	return uids, nil
}

// PartsInMaintenance returns every InMaintenance part. The registry does not
// record which MRO services a part, so the list is not narrowed to the caller.
func (q *Queries) PartsInMaintenance(mro string) ([]string, error) {
	if err := q.policy.RequireActiveMRO(mro); err != nil {
		return nil, err
	}
	uids, err := q.uidsWhere(func(p *model.Part) bool { return p.Status == model.StatusInMaintenance })
	if err != nil {
		return nil, fmt.Errorf("GetPartsInMyMaintenance: %w", err)
	}
	logger.Infof("MRO '%s' accessed parts in maintenance (count: %d)", mro, len(uids))
	return uids, nil
}

// MyStats counts the parts owned by owner, by status.
func (q *Queries) MyStats(owner string) (*model.OwnerStats, error) {
	stats := &model.OwnerStats{}
	err := scan(q.state, partObjectType, []string{}, func(_ string, p *model.Part) {
		if p.CurrentOwner != owner {
			return
		}
		stats.TotalOwned++
		switch p.Status {
		case model.StatusActive:
			stats.Active++
		case model.StatusInMaintenance:
			stats.InMaintenance++
		case model.StatusRetired:
			stats.Retired++
		}
	})
	if err != nil {
		return nil, fmt.Errorf("GetMyStats: %w", err)
	}
	logger.Infof("User '%s' accessed personal stats", owner)
	return stats, nil
}
