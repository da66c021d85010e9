package registry

import (
	"strings"
	"time"

	"aeroparts/model"
)

func (s *RegistrySuite) TestCreatePart() {
	s.bootstrap()

	s.Run("mints with documents", func() {
		part, err := s.reg.Parts.Create(safranID, NewPart{
			UID:          cfmUID,
			PartNumber:   "CFM56-5B4",
			SerialNumber: "123456",
			Documents:    map[string]string{"form1": "0xbeef", "coc": "0xcafe"},
		})
		s.Require().NoError(err)
		s.Equal([]model.DocumentRef{{Name: "coc", Hash: "0xcafe"}, {Name: "form1", Hash: "0xbeef"}}, part.Documents)

		stored := s.mustGet(cfmUID)
		hash, ok := stored.Document("form1")
		s.True(ok)
		s.Equal("0xbeef", hash)
	})

	s.Run("uid is unique across manufacturers", func() {
		_, err := s.reg.Directory.RegisterOrganization(adminID, geID, "GE Aerospace", model.KindOEM, nil)
		s.Require().NoError(err)

		_, err = s.reg.Parts.Create(geID, NewPart{UID: cfmUID, PartNumber: "OTHER", SerialNumber: "999999"})
		s.Require().ErrorIs(err, ErrPartAlreadyExists)

		stored := s.mustGet(cfmUID)
		s.Equal(safranID, stored.Manufacturer)
		s.Equal("CFM56-5B4", stored.PartNumber)
	})

	s.Run("uid is trimmed", func() {
		_, err := s.reg.Parts.Create(safranID, NewPart{UID: "  " + cfmUID + " ", PartNumber: "X", SerialNumber: "Y"})
		s.Require().ErrorIs(err, ErrPartAlreadyExists)
	})

	s.Run("non-OEM callers are refused", func() {
		for _, caller := range []string{adminID, lufthansa, outsider} {
			_, err := s.reg.Parts.Create(caller, NewPart{UID: "P-2", PartNumber: "X", SerialNumber: "Y"})
			s.Require().ErrorIs(err, ErrNotAnOEM, caller)
		}
		_, err := s.reg.Parts.Get("P-2")
		s.Require().ErrorIs(err, ErrPartNotFound)
	})

	s.Run("deactivated OEM is refused", func() {
		_, err := s.reg.Directory.SetOrganizationActive(adminID, safranID, model.KindOEM, false)
		s.Require().NoError(err)
		_, err = s.reg.Parts.Create(safranID, NewPart{UID: "P-3", PartNumber: "X", SerialNumber: "Y"})
		s.Require().ErrorIs(err, ErrNotAnOEM)
	})
}

func (s *RegistrySuite) TestCreatePartValidation() {
	s.bootstrap()
	long := strings.Repeat("x", maxStringInputLength+1)
	tooMany := map[string]string{}
	for i := 0; i <= maxArrayElements; i++ {
		tooMany[strings.Repeat("d", i+1)] = "h"
	}

	cases := map[string]NewPart{
		"empty uid":           {UID: "   ", PartNumber: "X", SerialNumber: "Y"},
		"long uid":            {UID: long, PartNumber: "X", SerialNumber: "Y"},
		"empty part number":   {UID: "P-1", SerialNumber: "Y"},
		"empty serial number": {UID: "P-1", PartNumber: "X"},
		"empty document hash": {UID: "P-1", PartNumber: "X", SerialNumber: "Y", Documents: map[string]string{"form1": ""}},
		"too many documents":  {UID: "P-1", PartNumber: "X", SerialNumber: "Y", Documents: tooMany},
	}
	for name, in := range cases {
		s.Run(name, func() {
			_, err := s.reg.Parts.Create(safranID, in)
			s.Require().ErrorIs(err, ErrInvalidInput)
		})
	}
}

func (s *RegistrySuite) TestGetPart() {
	s.bootstrap()
	s.createPart(safranID, cfmUID)

	part, err := s.reg.Parts.Get(cfmUID)
	s.Require().NoError(err)
	s.Equal(cfmUID, part.UID)
	s.NotNil(part.Documents)

	part, err = s.reg.Parts.Get("  " + cfmUID + " ")
	s.Require().NoError(err)
	s.Equal(cfmUID, part.UID)

	_, err = s.reg.Parts.Get("UNKNOWN-1")
	s.Require().ErrorIs(err, ErrPartNotFound)

	_, err = s.reg.Parts.Get("")
	s.Require().ErrorIs(err, ErrInvalidInput)
}

func (s *RegistrySuite) TestTransferOwnership() {
	s.bootstrap()
	s.createPart(safranID, cfmUID)

	s.Run("owner transfers", func() {
		part, err := s.reg.Parts.TransferOwnership(safranID, lessorID, cfmUID)
		s.Require().NoError(err)
		s.Equal(lessorID, part.CurrentOwner)
		s.Equal(safranID, part.Manufacturer)
	})

	s.Run("former owner cannot transfer again", func() {
		before := s.mustGet(cfmUID)
		s.clock.advance(time.Hour)
		_, err := s.reg.Parts.TransferOwnership(safranID, airlineID, cfmUID)
		s.Require().ErrorIs(err, ErrNotAuthorized)
		s.Equal(before, s.mustGet(cfmUID))
	})

	s.Run("admin has no override", func() {
		before := s.mustGet(cfmUID)
		_, err := s.reg.Parts.TransferOwnership(adminID, airlineID, cfmUID)
		s.Require().ErrorIs(err, ErrNotAuthorized)
		s.Equal(before, s.mustGet(cfmUID))
	})

	s.Run("self transfer is allowed", func() {
		_, err := s.reg.Parts.TransferOwnership(lessorID, lessorID, cfmUID)
		s.Require().NoError(err)
		s.Equal(lessorID, s.mustGet(cfmUID).CurrentOwner)
	})

	s.Run("missing part", func() {
		_, err := s.reg.Parts.TransferOwnership(lessorID, airlineID, "missing")
		s.Require().ErrorIs(err, ErrPartNotFound)
	})

	s.Run("empty new owner", func() {
		_, err := s.reg.Parts.TransferOwnership(lessorID, " ", cfmUID)
		s.Require().ErrorIs(err, ErrInvalidInput)
	})
}

func (s *RegistrySuite) TestUpdateStatus() {
	s.bootstrap()
	s.createPart(safranID, cfmUID)
	_, err := s.reg.Parts.TransferOwnership(safranID, airlineID, cfmUID)
	s.Require().NoError(err)

	s.Run("MRO records maintenance", func() {
		s.clock.advance(time.Hour)
		part, err := s.reg.Parts.UpdateStatus(lufthansa, cfmUID, model.StatusInMaintenance, 1200, 800)
		s.Require().NoError(err)
		s.Equal(model.StatusInMaintenance, part.Status)
		s.EqualValues(1200, part.TotalHours)
		s.EqualValues(800, part.TotalCycles)
		s.True(part.LastUpdated.Equal(s.clock.now))
		s.Equal(airlineID, part.CurrentOwner, "maintenance does not change title")
	})

	s.Run("owner records readings that may go down", func() {
		part, err := s.reg.Parts.UpdateStatus(airlineID, cfmUID, model.StatusActive, 100, 50)
		s.Require().NoError(err)
		s.EqualValues(100, part.TotalHours)
		s.EqualValues(50, part.TotalCycles)
	})

	s.Run("retired parts can be reactivated", func() {
		_, err := s.reg.Parts.UpdateStatus(airlineID, cfmUID, model.StatusRetired, 100, 50)
		s.Require().NoError(err)
		part, err := s.reg.Parts.UpdateStatus(airlineID, cfmUID, model.StatusActive, 100, 50)
		s.Require().NoError(err)
		s.Equal(model.StatusActive, part.Status)
	})

	s.Run("lastUpdated never goes backwards", func() {
		before := s.mustGet(cfmUID).LastUpdated
		s.clock.advance(-24 * time.Hour)
		part, err := s.reg.Parts.UpdateStatus(lufthansa, cfmUID, model.StatusQuarantined, 100, 50)
		s.Require().NoError(err)
		s.True(part.LastUpdated.Equal(before))
	})

	s.Run("others are refused", func() {
		before := s.mustGet(cfmUID)
		for _, caller := range []string{safranID, adminID, outsider} {
			_, err := s.reg.Parts.UpdateStatus(caller, cfmUID, model.StatusRetired, 1, 1)
			s.Require().ErrorIs(err, ErrNotAuthorized, caller)
		}
		s.Equal(before, s.mustGet(cfmUID))
	})

	s.Run("unknown status", func() {
		_, err := s.reg.Parts.UpdateStatus(lufthansa, cfmUID, model.PartStatus("Scrapped"), 1, 1)
		s.Require().ErrorIs(err, ErrInvalidInput)
	})

	s.Run("missing part", func() {
		_, err := s.reg.Parts.UpdateStatus(lufthansa, "missing", model.StatusActive, 1, 1)
		s.Require().ErrorIs(err, ErrPartNotFound)
	})

	s.Run("status names are stored in canonical form", func() {
		part, err := s.reg.Parts.UpdateStatus(airlineID, cfmUID, model.PartStatus("retired"), 100, 50)
		s.Require().NoError(err)
		s.Equal(model.StatusRetired, part.Status)
		s.Equal(model.StatusRetired, s.mustGet(cfmUID).Status)

		uids, err := s.reg.Queries.PartsByStatus(adminID, model.StatusRetired)
		s.Require().NoError(err)
		s.Equal([]string{cfmUID}, uids)

		uids, err = s.reg.Queries.PartsByStatus(airlineID, model.PartStatus("RETIRED"))
		s.Require().NoError(err)
		s.Equal([]string{cfmUID}, uids)

		stats, err := s.reg.Queries.MyStats(airlineID)
		s.Require().NoError(err)
		s.EqualValues(1, stats.Retired)
	})
}

func (s *RegistrySuite) TestAttachDocument() {
	s.bootstrap()
	s.createPart(safranID, cfmUID)
	_, err := s.reg.Parts.TransferOwnership(safranID, airlineID, cfmUID)
	s.Require().NoError(err)

	s.Run("owner, MRO and OEM attach", func() {
		_, err := s.reg.Parts.AttachDocument(airlineID, cfmUID, "logbook", "h1")
		s.Require().NoError(err)
		_, err = s.reg.Parts.AttachDocument(lufthansa, cfmUID, "shop-visit", "h2")
		s.Require().NoError(err)
		_, err = s.reg.Parts.AttachDocument(safranID, cfmUID, "service-bulletin", "h3")
		s.Require().NoError(err)

		s.Len(s.mustGet(cfmUID).Documents, 3)
	})

	s.Run("same name overwrites", func() {
		part, err := s.reg.Parts.AttachDocument(lufthansa, cfmUID, "logbook", "h4")
		s.Require().NoError(err)
		s.Len(part.Documents, 3)
		hash, ok := s.mustGet(cfmUID).Document("logbook")
		s.True(ok)
		s.Equal("h4", hash)
	})

	s.Run("others are refused", func() {
		_, err := s.reg.Parts.AttachDocument(outsider, cfmUID, "forged", "h5")
		s.Require().ErrorIs(err, ErrNotAuthorized)
		_, ok := s.mustGet(cfmUID).Document("forged")
		s.False(ok)
	})

	s.Run("empty name or hash", func() {
		_, err := s.reg.Parts.AttachDocument(airlineID, cfmUID, "", "h")
		s.Require().ErrorIs(err, ErrInvalidInput)
		_, err = s.reg.Parts.AttachDocument(airlineID, cfmUID, "n", " ")
		s.Require().ErrorIs(err, ErrInvalidInput)
	})

	s.Run("missing part", func() {
		_, err := s.reg.Parts.AttachDocument(lufthansa, "missing", "n", "h")
		s.Require().ErrorIs(err, ErrPartNotFound)
	})
}
