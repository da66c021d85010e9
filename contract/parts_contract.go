package contract

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"

	"aeroparts/registry"
)

var logger = flogging.MustGetLogger("aeroparts.contract")

// PartsRegistryContract exposes the aeronautic parts registry as chaincode
// transactions. Every transaction resolves the caller from the client
// identity and hands it to the registry core, which does the authorization.
// @contract:PartsRegistryContract
type PartsRegistryContract struct {
	contractapi.Contract
}

// registryFor builds the registry over the transaction's world state and
// timestamp. It holds nothing between transactions.
func registryFor(ctx contractapi.TransactionContextInterface) *registry.Registry {
	stub := ctx.GetStub()
	return registry.New(stub, registry.TxClock(stub))
}

// Instantiate is called during chaincode instantiation or upgrade.
func (s *PartsRegistryContract) Instantiate(ctx contractapi.TransactionContextInterface) {
	logger.Info("PartsRegistryContract Instantiated/Upgraded")
}
