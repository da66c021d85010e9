package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"aeroparts/model"
	"aeroparts/registry"
)

// --- Query Layer: role-scoped read views ---

func callerID(ctx contractapi.TransactionContextInterface, op string) (string, error) {
	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: failed to get actor info: %w", op, err)
	}
	return actor.fullID, nil
}

// GetAllPartUIDs returns every part uid. Admin only.
func (s *PartsRegistryContract) GetAllPartUIDs(ctx contractapi.TransactionContextInterface) ([]string, error) {
	caller, err := callerID(ctx, "GetAllPartUIDs")
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.AllPartUIDs(caller)
}

// GetAllOrganizations returns the OEM and MRO rosters. Admin only.
func (s *PartsRegistryContract) GetAllOrganizations(ctx contractapi.TransactionContextInterface) (*model.OrganizationRoster, error) {
	caller, err := callerID(ctx, "GetAllOrganizations")
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.Organizations(caller)
}

// GetGlobalStats counts parts and roster entries. Admin only.
func (s *PartsRegistryContract) GetGlobalStats(ctx contractapi.TransactionContextInterface) (*model.GlobalStats, error) {
	caller, err := callerID(ctx, "GetGlobalStats")
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.GlobalStats(caller)
}

// GetMyPartUIDs returns the uids the caller currently owns.
func (s *PartsRegistryContract) GetMyPartUIDs(ctx contractapi.TransactionContextInterface) ([]string, error) {
	caller, err := callerID(ctx, "GetMyPartUIDs")
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.MyPartUIDs(caller)
}

// GetMyManufacturedParts returns the uids minted by the calling OEM.
func (s *PartsRegistryContract) GetMyManufacturedParts(ctx contractapi.TransactionContextInterface) ([]string, error) {
	caller, err := callerID(ctx, "GetMyManufacturedParts")
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.MyManufacturedParts(caller)
}

// GetMyPartsByStatus returns parts with status: all of them for an
// administrator, the caller's own otherwise.
func (s *PartsRegistryContract) GetMyPartsByStatus(ctx contractapi.TransactionContextInterface, status string) ([]string, error) {
	caller, err := callerID(ctx, "GetMyPartsByStatus")
	if err != nil {
		return nil, err
	}
	parsed, err := registry.ParsePartStatus(status)
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.PartsByStatus(caller, parsed)
}

// GetPartsInMyMaintenance returns every part in maintenance. Active MROs only.
func (s *PartsRegistryContract) GetPartsInMyMaintenance(ctx contractapi.TransactionContextInterface) ([]string, error) {
	caller, err := callerID(ctx, "GetPartsInMyMaintenance")
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.PartsInMaintenance(caller)
}

// GetMyStats counts the caller's parts by status.
func (s *PartsRegistryContract) GetMyStats(ctx contractapi.TransactionContextInterface) (*model.OwnerStats, error) {
	caller, err := callerID(ctx, "GetMyStats")
	if err != nil {
		return nil, err
	}
	return registryFor(ctx).Queries.MyStats(caller)
}
