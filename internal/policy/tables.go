package policy

// Specialist identifiers. Each one owns exactly one rule table below.
const (
	SpecAccidentalAndGlass  = "accidental_and_glass_assistant"
	SpecFire                = "fire_assistant"
	SpecTheft               = "theft_assistant"
	SpecAncillary           = "ancillary_assistant"
	SpecThirdPartyInjury    = "third_party_injury_assistant"
	SpecThirdPartyProperty  = "third_party_property_assistant"
	SpecSpecialLiability    = "special_liability_assistant"
	SpecLegalAndStatutory   = "legal_and_statutory_assistant"
	SpecPersonalInjury      = "personal_injury_assistant"
	SpecPersonalConvenience = "personal_convenience_assistant"
	SpecPersonalProperty    = "personal_property_assistant"
	SpecTerritorialUsage    = "territorial_and_usage_assistant"
	SpecGeneralExceptions   = "general_exceptions_assistant"
	SpecVehicleSecurity     = "vehicle_security_assistant"
	SpecAdministrative      = "administrative_assistant"
)

// tables maps each specialist to its declared rule sequence. The mapping is
// assembled once at init and treated as immutable.
var tables = map[string][]Rule{
	SpecAccidentalAndGlass:  accidentalAndGlassTable,
	SpecFire:                fireTable,
	SpecTheft:               theftTable,
	SpecAncillary:           ancillaryTable,
	SpecThirdPartyInjury:    thirdPartyInjuryTable,
	SpecThirdPartyProperty:  thirdPartyPropertyTable,
	SpecSpecialLiability:    specialLiabilityTable,
	SpecLegalAndStatutory:   legalAndStatutoryTable,
	SpecPersonalInjury:      personalInjuryTable,
	SpecPersonalConvenience: personalConvenienceTable,
	SpecPersonalProperty:    personalPropertyTable,
	SpecTerritorialUsage:    territorialUsageTable,
	SpecGeneralExceptions:   generalExceptionsTable,
	SpecVehicleSecurity:     vehicleSecurityTable,
	SpecAdministrative:      administrativeTable,
}

// TableFor returns the rule table for a specialist, or nil when the
// specialist has no declared policy.
func TableFor(specialistID string) []Rule {
	return tables[specialistID]
}

// Specialists returns the identifiers of every specialist with a table.
func Specialists() []string {
	ids := make([]string, 0, len(tables))
	for id := range tables {
		ids = append(ids, id)
	}
	return ids
}

// incidentDateRules is the shared date/time validation prelude used by most
// tables. An unparseable or missing date is a pending finding, never an
// error: the engine signals through the verdict only.
func incidentDateRules() []Rule {
	return []Rule{
		{
			ID:     "incident_date_valid",
			When:   func(f Facts) bool { return f.ValidDate("incident_date") },
			Class:  Approved,
			Reason: text("Incident date is valid."),
		},
		{
			ID:     "incident_date_invalid",
			When:   func(f Facts) bool { return !f.ValidDate("incident_date") },
			Class:  Pending,
			Reason: text("Invalid or missing incident date."),
		},
		{
			ID:     "incident_time_valid",
			When:   func(f Facts) bool { return f.Has("incident_time") && f.ValidClockTime("incident_time") },
			Class:  Approved,
			Reason: text("Incident time format appears valid."),
		},
		{
			ID:     "incident_time_invalid",
			When:   func(f Facts) bool { return f.Has("incident_time") && !f.ValidClockTime("incident_time") },
			Class:  Pending,
			Reason: text("Incident time format is invalid."),
		},
	}
}

func withDateRules(rules []Rule) []Rule {
	return append(incidentDateRules(), rules...)
}
