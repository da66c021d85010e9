package registry

import (
	"aeroparts/model"
)

func (s *RegistrySuite) TestInitialize() {
	s.Run("seeds a single admin", func() {
		s.Require().NoError(s.reg.Directory.Initialize(adminID))

		ok, err := s.reg.Policy.IsAdmin(adminID)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("rejects a second initialization", func() {
		err := s.reg.Directory.Initialize(outsider)
		s.Require().ErrorIs(err, ErrAlreadyInitialized)

		ok, err := s.reg.Policy.IsAdmin(outsider)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("rejects an empty admin", func() {
		s.SetupTest()
		s.Require().ErrorIs(s.reg.Directory.Initialize("  "), ErrInvalidInput)
	})
}

func (s *RegistrySuite) TestRegisterOrganization() {
	s.Require().NoError(s.reg.Directory.Initialize(adminID))

	s.Run("admin registers an active OEM", func() {
		org, err := s.reg.Directory.RegisterOrganization(adminID, safranID, "Safran", model.KindOEM, []string{"EASA.21G.0001"})
		s.Require().NoError(err)
		s.True(org.Active)
		s.Equal(model.KindOEM, org.Kind)
		s.Equal([]string{"EASA.21G.0001"}, org.Certificates)

		found, err := s.reg.Directory.Lookup(safranID, model.KindOEM)
		s.Require().NoError(err)
		s.Equal("Safran", found.Name)
	})

	s.Run("non-admin is refused", func() {
		_, err := s.reg.Directory.RegisterOrganization(safranID, geID, "GE Aerospace", model.KindOEM, nil)
		s.Require().ErrorIs(err, ErrNotAuthorized)

		_, err = s.reg.Directory.Lookup(geID, model.KindOEM)
		s.Require().ErrorIs(err, ErrOrgNotRegistered)
	})

	s.Run("kinds without a roster are refused", func() {
		_, err := s.reg.Directory.RegisterOrganization(adminID, airlineID, "Air France", model.KindAirline, nil)
		s.Require().ErrorIs(err, ErrInvalidInput)
	})

	s.Run("duplicate registration adds a second entry", func() {
		_, err := s.reg.Directory.RegisterOrganization(adminID, safranID, "Safran Aircraft Engines", model.KindOEM, nil)
		s.Require().NoError(err)

		oems, err := s.reg.Directory.Roster(model.KindOEM)
		s.Require().NoError(err)
		s.Len(oems, 2)

		found, err := s.reg.Directory.Lookup(safranID, model.KindOEM)
		s.Require().NoError(err)
		s.Equal("Safran", found.Name, "first registration wins on lookup")
	})

	s.Run("rosters are kept apart", func() {
		mros, err := s.reg.Directory.Roster(model.KindMRO)
		s.Require().NoError(err)
		s.Empty(mros)
	})
}

func (s *RegistrySuite) TestSetOrganizationActive() {
	s.bootstrap()
	_, err := s.reg.Directory.RegisterOrganization(adminID, safranID, "Safran (dup)", model.KindOEM, nil)
	s.Require().NoError(err)

	s.Run("deactivation keeps entries resolvable but fails role checks", func() {
		updated, err := s.reg.Directory.SetOrganizationActive(adminID, safranID, model.KindOEM, false)
		s.Require().NoError(err)
		s.Len(updated, 2)

		org, err := s.reg.Directory.Lookup(safranID, model.KindOEM)
		s.Require().NoError(err)
		s.False(org.Active)

		s.Require().ErrorIs(s.reg.Policy.RequireActiveOEM(safranID), ErrNotAnOEM)
	})

	s.Run("reactivation restores role checks", func() {
		_, err := s.reg.Directory.SetOrganizationActive(adminID, safranID, model.KindOEM, true)
		s.Require().NoError(err)
		s.NoError(s.reg.Policy.RequireActiveOEM(safranID))
	})

	s.Run("only admins toggle", func() {
		_, err := s.reg.Directory.SetOrganizationActive(lufthansa, safranID, model.KindOEM, false)
		s.Require().ErrorIs(err, ErrNotAuthorized)
	})

	s.Run("unknown organization", func() {
		_, err := s.reg.Directory.SetOrganizationActive(adminID, geID, model.KindOEM, false)
		s.Require().ErrorIs(err, ErrOrgNotRegistered)
	})
}
