package registry

import (
	"fmt"

	"aeroparts/model"
)

// Policy answers "may principal P do this?" against the current ledger
// state. It never writes.
//
// Business rules: only administrators manage the directory, only active OEMs
// mint parts, only the current owner transfers title, maintenance
// organizations and owners record work, and manufacturers, maintainers and
// owners attach documents.
type Policy struct {
	state State
}

// IsAdmin reports whether p is in the administrator set.
func (p *Policy) IsAdmin(principal string) (bool, error) {
	return isAdmin(p.state, principal)
}

// RequireAdmin fails with ErrNotAuthorized unless principal is an administrator.
func (p *Policy) RequireAdmin(principal string) error {
	ok, err := p.IsAdmin(principal)
	if err != nil {
		return fmt.Errorf("failed to check admin status: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: caller '%s' is not an admin", ErrNotAuthorized, principal)
	}
	return nil
}

// RequireActiveOEM fails with ErrNotAnOEM unless principal has an active OEM
// roster entry.
func (p *Policy) RequireActiveOEM(principal string) error {
	ok, err := isActiveMember(p.state, principal, model.KindOEM)
	if err != nil {
		return fmt.Errorf("failed to check OEM roster: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: '%s' is not an active OEM", ErrNotAnOEM, principal)
	}
	return nil
}

// RequireActiveMRO fails with ErrOrgNotRegistered unless principal has an
// active MRO roster entry.
func (p *Policy) RequireActiveMRO(principal string) error {
	ok, err := isActiveMember(p.state, principal, model.KindMRO)
	if err != nil {
		return fmt.Errorf("failed to check MRO roster: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: '%s' is not an active MRO", ErrOrgNotRegistered, principal)
	}
	return nil
}

// RequireOwner fails with ErrPartNotFound when the part is missing and
// ErrNotAuthorized when principal does not own it.
func (p *Policy) RequireOwner(principal, uid string) error {
	part, err := loadPart(p.state, uid)
	if err != nil {
		return err
	}
	if part.CurrentOwner != principal {
		return fmt.Errorf("%w: '%s' is not the current owner of part '%s'", ErrNotAuthorized, principal, uid)
	}
	return nil
}

// CanUpdateStatus allows active MROs and the current owner.
func (p *Policy) CanUpdateStatus(principal, uid string) error {
	isMRO, err := isActiveMember(p.state, principal, model.KindMRO)
	if err != nil {
		return fmt.Errorf("failed to check MRO roster: %w", err)
	}
	if isMRO {
		return nil
	}
	return p.RequireOwner(principal, uid)
}

// CanAttachDocument allows active MROs, active OEMs and the current owner.
func (p *Policy) CanAttachDocument(principal, uid string) error {
	for _, kind := range []model.OrgKind{model.KindMRO, model.KindOEM} {
		ok, err := isActiveMember(p.state, principal, kind)
		if err != nil {
			return fmt.Errorf("failed to check %s roster: %w", kind, err)
		}
		if ok {
			return nil
		}
	}
	return p.RequireOwner(principal, uid)
}
