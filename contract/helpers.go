package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"aeroparts/model"
	"aeroparts/registry"
)

// parseCertificatesJSON decodes a JSON array of certificate references. An
// empty argument means no certificates.
func parseCertificatesJSON(certificatesJSON string) ([]string, error) {
	certificates := []string{}
	if strings.TrimSpace(certificatesJSON) == "" {
		return certificates, nil
	}
	if err := json.Unmarshal([]byte(certificatesJSON), &certificates); err != nil {
		return nil, fmt.Errorf("%w: certificatesJSON must be a JSON array of strings: %v", registry.ErrInvalidInput, err)
	}
	return certificates, nil
}

// parseDocumentsJSON decodes a JSON object mapping document names to content
// hashes. An empty argument means no documents.
func parseDocumentsJSON(documentsJSON string) (map[string]string, error) {
	documents := map[string]string{}
	if strings.TrimSpace(documentsJSON) == "" {
		return documents, nil
	}
	if err := json.Unmarshal([]byte(documentsJSON), &documents); err != nil {
		return nil, fmt.Errorf("%w: documentsJSON must be a JSON object of name to hash: %v", registry.ErrInvalidInput, err)
	}
	return documents, nil
}

func txTimestamp(ctx contractapi.TransactionContextInterface) string {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil || ts == nil {
		return ""
	}
	return ts.AsTime().UTC().Format(time.RFC3339)
}

func setEvent(ctx contractapi.TransactionContextInterface, eventName, subject string, payload map[string]interface{}) {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Warningf("Failed to marshal event payload for event '%s' on '%s': %v", eventName, subject, err)
		return
	}
	if errSet := ctx.GetStub().SetEvent(eventName, eventBytes); errSet != nil {
		logger.Warningf("Failed to set event '%s' for '%s': %v", eventName, subject, errSet)
	}
}

// emitPartEvent sends a chaincode event describing part after a mutation.
func emitPartEvent(ctx contractapi.TransactionContextInterface, eventName string, part *model.Part, actor *actorInfo, additionalPayload map[string]interface{}) {
	if part == nil || actor == nil {
		logger.Errorf("emitPartEvent: cannot emit event, part or actor is nil. Event: %s", eventName)
		return
	}
	payload := map[string]interface{}{
		"uid":                  part.UID,
		"partNumber":           part.PartNumber,
		"status":               part.Status,
		"manufacturer":         part.Manufacturer,
		"currentOwner":         part.CurrentOwner,
		"actor":                actor.fullID,
		"actorMsp":             actor.mspID,
		"transactionTimestamp": txTimestamp(ctx),
	}
	for k, v := range additionalPayload {
		payload[k] = v
	}
	setEvent(ctx, eventName, part.UID, payload)
}

// emitOrganizationEvent sends a chaincode event for a directory change.
func emitOrganizationEvent(ctx contractapi.TransactionContextInterface, eventName string, org *model.Organization, actor *actorInfo) {
	if org == nil || actor == nil {
		logger.Errorf("emitOrganizationEvent: cannot emit event, organization or actor is nil. Event: %s", eventName)
		return
	}
	setEvent(ctx, eventName, org.ID, map[string]interface{}{
		"organizationId":       org.ID,
		"name":                 org.Name,
		"kind":                 org.Kind,
		"active":               org.Active,
		"actor":                actor.fullID,
		"actorMsp":             actor.mspID,
		"transactionTimestamp": txTimestamp(ctx),
	})
}
