package registry

import (
	"fmt"
	"strings"

	"aeroparts/model"
)

// PartStore creates, reads and mutates part records. Every mutation is
// checked against the Policy first and written with a single PutState, so a
// failed call leaves the record untouched.
type PartStore struct {
	state  State
	clock  Clock
	policy *Policy
}

// NewPart describes a part to be minted by an OEM.
type NewPart struct {
	UID          string
	PartNumber   string
	SerialNumber string
	Documents    map[string]string // Document name -> content hash
}

// partKey trims uid before building the key, so lookups and mutations
// resolve " X " to the part stored under "X".
func partKey(state State, uid string) (string, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return "", fmt.Errorf("%w: uid cannot be empty", ErrInvalidInput)
	}
	return state.CreateCompositeKey(partObjectType, []string{uid})
}

func loadPart(state State, uid string) (*model.Part, error) {
	key, err := partKey(state, uid)
	if err != nil {
		return nil, err
	}
	var part model.Part
	found, err := getJSON(state, key, &part)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: part with uid '%s' does not exist", ErrPartNotFound, uid)
	}
	if part.Documents == nil {
		part.Documents = []model.DocumentRef{}
	}
	return &part, nil
}

func (s *PartStore) save(part *model.Part) error {
	key, err := partKey(s.state, part.UID)
	if err != nil {
		return err
	}
	return putJSON(s.state, key, part)
}

// Create mints a new part owned by its manufacturer.
func (s *PartStore) Create(manufacturer string, in NewPart) (*model.Part, error) {
	if err := s.policy.RequireActiveOEM(manufacturer); err != nil {
		return nil, err
	}
	in.UID = strings.TrimSpace(in.UID)
	if err := validateRequiredString(in.UID, "uid", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := validateRequiredString(in.PartNumber, "partNumber", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := validateRequiredString(in.SerialNumber, "serialNumber", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := validateDocuments(in.Documents); err != nil {
		return nil, err
	}

	key, err := partKey(s.state, in.UID)
	if err != nil {
		return nil, err
	}
	existing, err := s.state.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("CreatePart: failed to check for existing part '%s': %w", in.UID, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: part with uid '%s' already exists", ErrPartAlreadyExists, in.UID)
	}

	now, err := s.clock.Now()
	if err != nil {
		return nil, fmt.Errorf("CreatePart: %w", err)
	}
	part := &model.Part{
		ObjectType:        partObjectType,
		UID:               in.UID,
		PartNumber:        in.PartNumber,
		SerialNumber:      in.SerialNumber,
		Manufacturer:      manufacturer,
		DateOfManufacture: now,
		CurrentOwner:      manufacturer,
		Status:            model.StatusActive,
		LastUpdated:       now,
		Documents:         model.DocumentsFromMap(in.Documents),
	}
	if err := putJSON(s.state, key, part); err != nil {
		return nil, fmt.Errorf("CreatePart: %w", err)
	}
	logger.Infof("Created new part '%s' by manufacturer '%s'", in.UID, manufacturer)
	return part, nil
}

// Get returns the part with the given uid, ignoring surrounding whitespace.
// Reading a known uid is public.
func (s *PartStore) Get(uid string) (*model.Part, error) {
	return loadPart(s.state, uid)
}

// TransferOwnership hands the part from its current owner to newOwner with
// no acceptance step.
func (s *PartStore) TransferOwnership(currentOwner, newOwner, uid string) (*model.Part, error) {
	if err := validateRequiredString(newOwner, "newOwner", maxStringInputLength); err != nil {
		return nil, err
	}
	part, err := loadPart(s.state, uid)
	if err != nil {
		return nil, err
	}
	if part.CurrentOwner != currentOwner {
		return nil, fmt.Errorf("%w: '%s' is not the current owner of part '%s'", ErrNotAuthorized, currentOwner, uid)
	}

	now, err := s.clock.Now()
	if err != nil {
		return nil, fmt.Errorf("TransferOwnership: %w", err)
	}
	part.CurrentOwner = newOwner
	part.LastUpdated = laterOf(part.LastUpdated, now)
	if err := s.save(part); err != nil {
		return nil, fmt.Errorf("TransferOwnership: %w", err)
	}
	logger.Infof("Transferred ownership of part '%s' from '%s' to '%s'", uid, currentOwner, newOwner)
	return part, nil
}

// UpdateStatus records a maintenance event. Hours and cycles are absolute
// readings that replace the stored counters.
func (s *PartStore) UpdateStatus(caller, uid string, status model.PartStatus, hours, cycles uint32) (*model.Part, error) {
	parsed, err := ParsePartStatus(string(status))
	if err != nil {
		return nil, err
	}
	status = parsed
	if err := s.policy.CanUpdateStatus(caller, uid); err != nil {
		return nil, err
	}
	part, err := loadPart(s.state, uid)
	if err != nil {
		return nil, err
	}

	now, err := s.clock.Now()
	if err != nil {
		return nil, fmt.Errorf("UpdatePartStatus: %w", err)
	}
	part.Status = status
	part.TotalHours = hours
	part.TotalCycles = cycles
	part.LastUpdated = laterOf(part.LastUpdated, now)
	if err := s.save(part); err != nil {
		return nil, fmt.Errorf("UpdatePartStatus: %w", err)
	}
	logger.Infof("Updated status of part '%s' to %s (hours=%d, cycles=%d) by '%s'", uid, status, hours, cycles, caller)
	return part, nil
}

// AttachDocument stores hash under name, replacing any earlier hash with the
// same name.
func (s *PartStore) AttachDocument(caller, uid, name, hash string) (*model.Part, error) {
	if err := validateRequiredString(name, "documentName", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := validateRequiredString(hash, "documentHash", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.policy.CanAttachDocument(caller, uid); err != nil {
		return nil, err
	}
	part, err := loadPart(s.state, uid)
	if err != nil {
		return nil, err
	}

	now, err := s.clock.Now()
	if err != nil {
		return nil, fmt.Errorf("AddDocument: %w", err)
	}
	part.SetDocument(name, hash)
	part.LastUpdated = laterOf(part.LastUpdated, now)
	if err := s.save(part); err != nil {
		return nil, fmt.Errorf("AddDocument: %w", err)
	}
	logger.Infof("Added document '%s' with hash '%s' to part '%s' by '%s'", name, hash, uid, caller)
	return part, nil
}
