// Package config loads the chaincode process configuration.
//
// Values come from an optional YAML file named by AEROPARTS_CONFIG, then
// from environment variables, which take precedence. The environment names
// match the ones the Fabric external builder sets for chaincode-as-a-service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigFile    = "AEROPARTS_CONFIG"
	EnvChaincodeID   = "CHAINCODE_ID"
	EnvServerAddress = "CHAINCODE_SERVER_ADDRESS"
	EnvTLSDisabled   = "CHAINCODE_TLS_DISABLED"
	EnvTLSKeyFile    = "CHAINCODE_TLS_KEY_FILE"
	EnvTLSCertFile   = "CHAINCODE_TLS_CERT_FILE"
	EnvTLSClientCA   = "CHAINCODE_TLS_CLIENT_CA_FILE"
	EnvLogSpec       = "AEROPARTS_LOG_SPEC"
)

const defaultLogSpec = "info"

// Config is the process configuration for the registry chaincode.
type Config struct {
	// ChaincodeID is the package ID the peer knows the chaincode by.
	// Required when ServerAddress is set.
	ChaincodeID string `yaml:"chaincode_id"`

	// ServerAddress switches the process to chaincode-as-a-service mode,
	// listening on this host:port for the peer. Empty means the peer
	// launches the chaincode and it dials back.
	ServerAddress string `yaml:"server_address"`

	TLS TLSConfig `yaml:"tls"`

	// LogSpec is a flogging spec, e.g. "info" or "aeroparts.registry=debug:info".
	LogSpec string `yaml:"log_spec"`
}

// TLSConfig names the PEM files used by the chaincode server.
type TLSConfig struct {
	Disabled     bool   `yaml:"disabled"`
	KeyFile      string `yaml:"key_file"`
	CertFile     string `yaml:"cert_file"`
	ClientCAFile string `yaml:"client_ca_file"`
}

// Load reads the optional config file, applies environment overrides and
// validates the result.
func Load() (*Config, error) {
	cfg := &Config{LogSpec: defaultLogSpec}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	overrides := []struct {
		name string
		dst  *string
	}{
		{EnvChaincodeID, &c.ChaincodeID},
		{EnvServerAddress, &c.ServerAddress},
		{EnvTLSKeyFile, &c.TLS.KeyFile},
		{EnvTLSCertFile, &c.TLS.CertFile},
		{EnvTLSClientCA, &c.TLS.ClientCAFile},
		{EnvLogSpec, &c.LogSpec},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.name); ok {
			*o.dst = strings.TrimSpace(v)
		}
	}
	if v, ok := os.LookupEnv(EnvTLSDisabled); ok {
		disabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvTLSDisabled, v)
		}
		c.TLS.Disabled = disabled
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.LogSpec == "" {
		c.LogSpec = defaultLogSpec
	}
	if c.ServerAddress != "" {
		if c.ChaincodeID == "" {
			errs = append(errs, fmt.Errorf("%s is required when %s is set", EnvChaincodeID, EnvServerAddress))
		}
		if !c.TLS.Disabled && (c.TLS.KeyFile == "" || c.TLS.CertFile == "") {
			errs = append(errs, fmt.Errorf("TLS key and cert files are required unless %s=true", EnvTLSDisabled))
		}
	}
	return errors.Join(errs...)
}

// ServerMode reports whether the chaincode runs as an external service.
func (c *Config) ServerMode() bool {
	return c.ServerAddress != ""
}

// TLSProperties loads the PEM material for the chaincode server.
func (c *Config) TLSProperties() (shim.TLSProperties, error) {
	if c.TLS.Disabled {
		return shim.TLSProperties{Disabled: true}, nil
	}
	key, err := os.ReadFile(c.TLS.KeyFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("reading TLS key: %w", err)
	}
	cert, err := os.ReadFile(c.TLS.CertFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("reading TLS cert: %w", err)
	}
	props := shim.TLSProperties{Key: key, Cert: cert}
	if c.TLS.ClientCAFile != "" {
		props.ClientCACerts, err = os.ReadFile(c.TLS.ClientCAFile)
		if err != nil {
			return shim.TLSProperties{}, fmt.Errorf("reading TLS client CA: %w", err)
		}
	}
	return props, nil
}
