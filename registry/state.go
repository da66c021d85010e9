package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// Object types for composite keys, also usable as 'docType' in CouchDB.
const (
	adminObjectType        = "Admin"        // Attributes: principal
	organizationObjectType = "Organization" // Attributes: kind, principal, seq
	partObjectType         = "Part"         // Attributes: uid
)

// State is the slice of the chaincode stub the registry reads and writes.
// shim.ChaincodeStubInterface satisfies it.
type State interface {
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	CreateCompositeKey(objectType string, attributes []string) (string, error)
	GetStateByPartialCompositeKey(objectType string, keys []string) (shim.StateQueryIteratorInterface, error)
}

// Clock supplies the time stamped onto records.
type Clock interface {
	Now() (time.Time, error)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() (time.Time, error)

func (f ClockFunc) Now() (time.Time, error) { return f() }

// TxClock reads the transaction timestamp, which is identical on every
// endorsing peer.
func TxClock(stub shim.ChaincodeStubInterface) Clock {
	return ClockFunc(func() (time.Time, error) {
		ts, err := stub.GetTxTimestamp()
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
		}
		return ts.AsTime().UTC(), nil
	})
}

func getJSON(state State, key string, v interface{}) (bool, error) {
	raw, err := state.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read '%s' from ledger: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal '%s': %w", key, err)
	}
	return true, nil
}

func putJSON(state State, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal '%s': %w", key, err)
	}
	if err := state.PutState(key, raw); err != nil {
		return fmt.Errorf("failed to save '%s' to ledger: %w", key, err)
	}
	return nil
}

// scan visits every entry under the partial composite key. Entries that fail
// to unmarshal are logged and skipped.
func scan[T any](state State, objectType string, attributes []string, visit func(key string, v *T)) error {
	iter, err := state.GetStateByPartialCompositeKey(objectType, attributes)
	if err != nil {
		return fmt.Errorf("failed to get '%s' iterator: %w", objectType, err)
	}
	defer iter.Close()

	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return fmt.Errorf("failed to iterate '%s' entries: %w", objectType, err)
		}
		var v T
		if err := json.Unmarshal(kv.Value, &v); err != nil {
			logger.Warningf("Skipping undecodable %s entry '%s': %v", objectType, kv.Key, err)
			continue
		}
		visit(kv.Key, &v)
	}
	return nil
}

// laterOf keeps timestamps non-decreasing when the clock reports a time
// earlier than the stored one.
func laterOf(stored, now time.Time) time.Time {
	if now.Before(stored) {
		return stored
	}
	return now
}
