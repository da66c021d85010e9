package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"aeroparts/model"
	"aeroparts/registry"
)

// --- Part Store: lifecycle operations ---

// CreatePart mints a part owned by the calling OEM. documentsJSON is an
// optional JSON object mapping document names to content hashes.
func (s *PartsRegistryContract) CreatePart(ctx contractapi.TransactionContextInterface,
	uid string, partNumber string, serialNumber string, documentsJSON string) error {

	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("CreatePart: failed to get actor info: %w", err)
	}
	logger.Infof("OEM '%s' creating part '%s' (P/N %s, S/N %s)", actor.fullID, uid, partNumber, serialNumber)

	documents, err := parseDocumentsJSON(documentsJSON)
	if err != nil {
		return err
	}
	part, err := registryFor(ctx).Parts.Create(actor.fullID, registry.NewPart{
		UID:          uid,
		PartNumber:   partNumber,
		SerialNumber: serialNumber,
		Documents:    documents,
	})
	if err != nil {
		return err
	}
	emitPartEvent(ctx, "PartCreated", part, actor, map[string]interface{}{
		"serialNumber":  part.SerialNumber,
		"documentCount": len(part.Documents),
	})
	return nil
}

// GetPart returns the part record. Any caller may read a known uid.
func (s *PartsRegistryContract) GetPart(ctx contractapi.TransactionContextInterface, uid string) (*model.Part, error) {
	logger.Debugf("Chaincode Call: GetPart '%s'", uid)
	return registryFor(ctx).Parts.Get(uid)
}

// TransferOwnership hands the part from the calling owner to newOwner.
func (s *PartsRegistryContract) TransferOwnership(ctx contractapi.TransactionContextInterface, uid, newOwner string) error {
	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("TransferOwnership: failed to get actor info: %w", err)
	}
	part, err := registryFor(ctx).Parts.TransferOwnership(actor.fullID, newOwner, uid)
	if err != nil {
		return err
	}
	emitPartEvent(ctx, "PartOwnershipTransferred", part, actor, map[string]interface{}{
		"previousOwner": actor.fullID,
	})
	return nil
}

// UpdatePartStatus records a status change with the current absolute hours
// and cycles readings. Active MROs and the owner may call it.
func (s *PartsRegistryContract) UpdatePartStatus(ctx contractapi.TransactionContextInterface,
	uid string, status string, totalHours uint32, totalCycles uint32) error {

	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("UpdatePartStatus: failed to get actor info: %w", err)
	}
	parsed, err := registry.ParsePartStatus(status)
	if err != nil {
		return err
	}
	part, err := registryFor(ctx).Parts.UpdateStatus(actor.fullID, uid, parsed, totalHours, totalCycles)
	if err != nil {
		return err
	}
	emitPartEvent(ctx, "PartStatusUpdated", part, actor, map[string]interface{}{
		"totalHours":  part.TotalHours,
		"totalCycles": part.TotalCycles,
	})
	return nil
}

// AddDocument attaches a document hash to the part, replacing any hash
// already stored under documentName.
func (s *PartsRegistryContract) AddDocument(ctx contractapi.TransactionContextInterface, uid, documentName, documentHash string) error {
	actor, err := getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("AddDocument: failed to get actor info: %w", err)
	}
	part, err := registryFor(ctx).Parts.AttachDocument(actor.fullID, uid, documentName, documentHash)
	if err != nil {
		return err
	}
	emitPartEvent(ctx, "PartDocumentAttached", part, actor, map[string]interface{}{
		"documentName": documentName,
		"documentHash": documentHash,
	})
	return nil
}
