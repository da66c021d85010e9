package main

import (
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"

	"aeroparts/config"
	"aeroparts/contract"
)

var logger = flogging.MustGetLogger("aeroparts.main")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if err := flogging.Global.ActivateSpec(cfg.LogSpec); err != nil {
		logger.Errorf("Error activating log spec '%s': %v", cfg.LogSpec, err)
		os.Exit(1)
	}

	cc, err := contractapi.NewChaincode(&contract.PartsRegistryContract{})
	if err != nil {
		panic("Error creating PartsRegistryContract: " + err.Error())
	}

	if !cfg.ServerMode() {
		if err := cc.Start(); err != nil {
			panic("Error starting chaincode: " + err.Error())
		}
		return
	}

	tlsProps, err := cfg.TLSProperties()
	if err != nil {
		logger.Errorf("Error loading TLS material: %v", err)
		os.Exit(1)
	}
	server := &shim.ChaincodeServer{
		CCID:     cfg.ChaincodeID,
		Address:  cfg.ServerAddress,
		CC:       cc,
		TLSProps: tlsProps,
	}
	logger.Infof("Starting chaincode server '%s' on %s (TLS disabled: %t)", cfg.ChaincodeID, cfg.ServerAddress, tlsProps.Disabled)
	if err := server.Start(); err != nil {
		panic("Error starting chaincode server: " + err.Error())
	}
}
