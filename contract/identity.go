package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"aeroparts/model"
)

// actorInfo holds the details of the transaction invoker.
type actorInfo struct {
	fullID string
	mspID  string
}

func isValidX509ID(id string) bool {
	return strings.HasPrefix(id, "x509::") || strings.HasPrefix(id, "eDUwOTo6") // "eDUwOTo6" is "x509::" base64 encoded
}

// getCurrentActorInfo resolves the invoker's principal and MSP from the
// client identity.
func getCurrentActorInfo(ctx contractapi.TransactionContextInterface) (*actorInfo, error) {
	clientIdentity := ctx.GetClientIdentity()
	if clientIdentity == nil {
		return nil, errors.New("client identity is nil from context")
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		return nil, fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" {
		return nil, errors.New("client identity ID from context is empty")
	}
	if !isValidX509ID(id) {
		logger.Warningf("Current client ID '%s' does not appear to be a standard X.509 format.", id)
	}
	mspID, err := clientIdentity.GetMSPID()
	if err != nil {
		return nil, fmt.Errorf("failed to get current actor's MSPID: %w", err)
	}
	return &actorInfo{fullID: id, mspID: mspID}, nil
}

// GetCallerPrincipal returns the principal the registry records for the
// caller, so an operator can learn which ID to register for an organization.
func (s *PartsRegistryContract) GetCallerPrincipal(ctx contractapi.TransactionContextInterface) (*model.CallerInfo, error) {
	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetCallerPrincipal: %w", err)
	}
	logger.Debugf("Chaincode Call: GetCallerPrincipal for '%s'", actor.fullID)
	return &model.CallerInfo{Principal: actor.fullID, OrganizationMSP: actor.mspID}, nil
}
