package contract

import (
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"aeroparts/model"
	"aeroparts/registry"
)

// --- Principal Directory: bootstrap and organization management ---

// Initialize seeds the administrator set. An empty adminID makes the caller
// the administrator. It succeeds once per ledger.
func (s *PartsRegistryContract) Initialize(ctx contractapi.TransactionContextInterface, adminID string) error {
	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("Initialize: failed to get actor info: %w", err)
	}
	if strings.TrimSpace(adminID) == "" {
		adminID = actor.fullID
	}
	logger.Infof("Chaincode Call: Initialize with admin '%s' by '%s'", adminID, actor.fullID)

	if err := registryFor(ctx).Directory.Initialize(adminID); err != nil {
		return err
	}
	setEvent(ctx, "RegistryInitialized", adminID, map[string]interface{}{
		"admin":                adminID,
		"actor":                actor.fullID,
		"actorMsp":             actor.mspID,
		"transactionTimestamp": txTimestamp(ctx),
	})
	return nil
}

// RegisterOEM adds an active OEM roster entry. Admin only.
func (s *PartsRegistryContract) RegisterOEM(ctx contractapi.TransactionContextInterface, orgID, name, certificatesJSON string) error {
	return s.registerOrganization(ctx, orgID, name, model.KindOEM, certificatesJSON)
}

// RegisterMRO adds an active MRO roster entry. Admin only.
func (s *PartsRegistryContract) RegisterMRO(ctx contractapi.TransactionContextInterface, orgID, name, certificatesJSON string) error {
	return s.registerOrganization(ctx, orgID, name, model.KindMRO, certificatesJSON)
}

// RegisterOrganization adds an active roster entry of the given kind. Only
// OEM and MRO have rosters.
func (s *PartsRegistryContract) RegisterOrganization(ctx contractapi.TransactionContextInterface, orgID, name, kind, certificatesJSON string) error {
	parsed, err := registry.ParseOrgKind(kind)
	if err != nil {
		return err
	}
	return s.registerOrganization(ctx, orgID, name, parsed, certificatesJSON)
}

func (s *PartsRegistryContract) registerOrganization(ctx contractapi.TransactionContextInterface, orgID, name string, kind model.OrgKind, certificatesJSON string) error {
	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("RegisterOrganization: failed to get actor info: %w", err)
	}
	logger.Infof("Chaincode Call: Register %s '%s' (%s) by '%s'", kind, orgID, name, actor.fullID)

	certificates, err := parseCertificatesJSON(certificatesJSON)
	if err != nil {
		return err
	}
	org, err := registryFor(ctx).Directory.RegisterOrganization(actor.fullID, orgID, name, kind, certificates)
	if err != nil {
		return err
	}
	emitOrganizationEvent(ctx, "OrganizationRegistered", org, actor)
	return nil
}

// SetOrganizationActive activates or deactivates every roster entry of the
// organization for kind. Admin only.
func (s *PartsRegistryContract) SetOrganizationActive(ctx contractapi.TransactionContextInterface, orgID, kind string, active bool) error {
	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("SetOrganizationActive: failed to get actor info: %w", err)
	}
	parsed, err := registry.ParseOrgKind(kind)
	if err != nil {
		return err
	}
	logger.Infof("Chaincode Call: SetOrganizationActive %s '%s' to %t by '%s'", parsed, orgID, active, actor.fullID)

	updated, err := registryFor(ctx).Directory.SetOrganizationActive(actor.fullID, orgID, parsed, active)
	if err != nil {
		return err
	}
	if len(updated) > 0 {
		emitOrganizationEvent(ctx, "OrganizationStatusChanged", &updated[0], actor)
	}
	return nil
}

// GetOrganization returns the first roster entry of orgID for kind, active
// or not.
func (s *PartsRegistryContract) GetOrganization(ctx contractapi.TransactionContextInterface, orgID, kind string) (*model.Organization, error) {
	logger.Debugf("Chaincode Call: GetOrganization %s '%s'", kind, orgID)
	parsed, err := registry.ParseOrgKind(kind)
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Directory.Lookup(orgID, parsed)
}
