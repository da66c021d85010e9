// Package registry implements the authorization-gated state machine behind
// the aeronautic parts registry: the principal directory, the access policy,
// the part store and the role-scoped queries.
//
// A Registry is built per transaction over the transaction's world state and
// clock. It keeps no state of its own between calls.
package registry

import (
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("aeroparts.registry")

// Registry groups the components operating on one world state.
type Registry struct {
	Directory *Directory
	Policy    *Policy
	Parts     *PartStore
	Queries   *Queries
}

// New wires the components over state and clock.
func New(state State, clock Clock) *Registry {
	policy := &Policy{state: state}
	return &Registry{
		Directory: &Directory{state: state, clock: clock, policy: policy},
		Policy:    policy,
		Parts:     &PartStore{state: state, clock: clock, policy: policy},
		Queries:   &Queries{state: state, policy: policy},
	}
}
