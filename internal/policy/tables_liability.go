package policy

import "fmt"

// Module 2: third-party liability and legal exposure policies.

var thirdPartyInjuryTable = withDateRules([]Rule{
	{
		ID: "injuries_reported",
		When: func(f Facts) bool {
			count, ok := f.Number("number_of_injured_parties")
			return f.True("were_third_parties_injured") && ok && count > 0
		},
		Class: Approved,
		Reason: func(f Facts) string {
			count, _ := f.Number("number_of_injured_parties")
			return fmt.Sprintf("%g third-party injury/ies reported — covered under liability to others.", count)
		},
	},
	{
		ID: "injury_count_missing",
		When: func(f Facts) bool {
			count, ok := f.Number("number_of_injured_parties")
			return f.True("were_third_parties_injured") && (!ok || count <= 0)
		},
		Class:  Pending,
		Reason: text("Injury reported but number of injured parties not specified."),
	},
	{
		ID:     "no_injuries",
		When:   func(f Facts) bool { return !f.True("were_third_parties_injured") },
		Class:  Approved,
		Reason: text("No third-party injuries reported."),
	},
	{
		ID:     "fatalities",
		When:   func(f Facts) bool { return f.True("were_there_fatalities") },
		Class:  Approved,
		Reason: text("Fatalities occurred — covered under bodily injury liability and subject to legal cost protections."),
	},
	{
		ID:     "no_fatalities",
		When:   func(f Facts) bool { return !f.True("were_there_fatalities") },
		Class:  Approved,
		Reason: text("No fatalities reported."),
	},
	{
		ID: "emergency_treatment_under_rta",
		When: func(f Facts) bool {
			return f.True("was_emergency_medical_treatment_paid") && f.True("did_pay_emergency_treatment_under_rta")
		},
		Class:  Approved,
		Reason: text("Emergency medical treatment was paid under RTA — covered and does not affect NCD."),
	},
	{
		ID: "emergency_treatment_unconfirmed",
		When: func(f Facts) bool {
			return f.True("was_emergency_medical_treatment_paid") && !f.True("did_pay_emergency_treatment_under_rta")
		},
		Class:  Pending,
		Reason: text("Medical treatment paid but not confirmed as RTA-related — clarification required."),
	},
	{
		ID:     "no_emergency_treatment",
		When:   func(f Facts) bool { return !f.True("was_emergency_medical_treatment_paid") },
		Class:  Approved,
		Reason: text("No emergency medical treatment reported."),
	},
	{
		ID:     "coroners_inquest",
		When:   func(f Facts) bool { return f.True("is_coroners_inquest_required") },
		Class:  Approved,
		Reason: text("Coroner's inquest is covered under legal costs section."),
	},
	{
		ID:     "manslaughter_defence",
		When:   func(f Facts) bool { return f.True("is_manslaughter_defence_needed") },
		Class:  Approved,
		Reason: text("Defence in manslaughter case is covered — legal protection applies."),
	},
	{
		ID:     "police_reference_provided",
		When:   func(f Facts) bool { return f.String("police_or_witness_reference") != "" },
		Class:  Approved,
		Reason: text("Police or witness reference provided."),
	},
	{
		ID: "police_reference_empty",
		When: func(f Facts) bool {
			return f.Has("police_or_witness_reference") && f.String("police_or_witness_reference") == ""
		},
		Class:  Pending,
		Reason: text("Police or witness reference is empty — recommended for serious incidents."),
	},
	{
		ID:     "police_reference_missing",
		When:   func(f Facts) bool { return !f.Has("police_or_witness_reference") },
		Class:  Pending,
		Reason: text("No police or witness reference provided."),
	},
})

var thirdPartyPropertyTable = withDateRules([]Rule{
	{
		ID:     "property_damage_covered",
		When:   func(f Facts) bool { return f.True("did_property_damage_occur") },
		Class:  Approved,
		Reason: text("Third-party property damage occurred — covered under liability to others."),
	},
	{
		ID: "damage_within_limit",
		When: func(f Facts) bool {
			value, ok := f.Number("estimated_property_damage_value")
			return f.True("did_property_damage_occur") && ok && value <= 20_000_000
		},
		Class: Approved,
		Reason: func(f Facts) string {
			value, _ := f.Number("estimated_property_damage_value")
			return fmt.Sprintf("Estimated damage (£%g) is within policy limit of £20,000,000.", value)
		},
	},
	{
		ID: "damage_may_exceed_limit",
		When: func(f Facts) bool {
			value, ok := f.Number("estimated_property_damage_value")
			return f.True("did_property_damage_occur") && ok && value > 20_000_000
		},
		Class: Pending,
		Reason: func(f Facts) string {
			value, _ := f.Number("estimated_property_damage_value")
			return fmt.Sprintf("Damage value (£%g) may exceed policy limit — legal review required.", value)
		},
	},
	{
		ID: "damage_value_missing",
		When: func(f Facts) bool {
			_, ok := f.Number("estimated_property_damage_value")
			return f.True("did_property_damage_occur") && !ok
		},
		Class:  Pending,
		Reason: text("Estimated property damage value not provided."),
	},
	{
		ID: "property_described",
		When: func(f Facts) bool {
			return f.True("did_property_damage_occur") && f.String("third_party_property_description") != ""
		},
		Class: Approved,
		Reason: func(f Facts) string {
			return fmt.Sprintf("Property description provided: %s.", f.String("third_party_property_description"))
		},
	},
	{
		ID: "property_description_missing",
		When: func(f Facts) bool {
			return f.True("did_property_damage_occur") && f.String("third_party_property_description") == ""
		},
		Class:  Pending,
		Reason: text("Property damage occurred but description is missing."),
	},
	{
		ID:     "liability_limit_exceeded",
		When:   func(f Facts) bool { return f.True("did_property_damage_occur") && f.True("was_liability_limit_exceeded") },
		Class:  Pending,
		Reason: text("Reported that liability limit was exceeded — subject to legal review."),
	},
	{
		ID:     "no_property_damage",
		When:   func(f Facts) bool { return !f.True("did_property_damage_occur") },
		Class:  Rejected,
		Reason: text("No third-party property damage reported — claim not valid under this section."),
	},
})

func isExcludedTowedItem(item string) bool {
	switch item {
	case "trailer", "caravan", "broken_vehicle", "other":
		return true
	}
	return false
}

var specialLiabilityTable = withDateRules([]Rule{
	{
		ID: "driving_other_cars_no_permission",
		When: func(f Facts) bool {
			return f.True("did_use_driving_other_cars_extension") && !f.True("was_permission_given_by_owner")
		},
		Class:  Rejected,
		Reason: text("Permission from owner not granted — driving other cars cover void."),
	},
	{
		ID: "driving_other_cars_uninsured",
		When: func(f Facts) bool {
			return f.True("did_use_driving_other_cars_extension") && f.True("was_permission_given_by_owner") &&
				!f.True("was_other_vehicle_insured")
		},
		Class:  Rejected,
		Reason: text("The other vehicle was not insured — driving other cars cover excluded."),
	},
	{
		ID: "driving_other_cars_valid",
		When: func(f Facts) bool {
			return f.True("did_use_driving_other_cars_extension") && f.True("was_permission_given_by_owner") &&
				f.True("was_other_vehicle_insured")
		},
		Class:  Approved,
		Reason: text("Driving other cars extension applied — meets conditions for third-party liability."),
	},
	{
		ID:     "towing_for_hire",
		When:   func(f Facts) bool { return f.True("did_towing_occur") && f.True("was_towing_for_hire_or_reward") },
		Class:  Rejected,
		Reason: text("Towing for hire/reward — excluded from cover."),
	},
	{
		ID: "towing_excluded_item",
		When: func(f Facts) bool {
			return f.True("did_towing_occur") && !f.True("was_towing_for_hire_or_reward") &&
				isExcludedTowedItem(f.String("towed_item_type"))
		},
		Class: Rejected,
		Reason: func(f Facts) string {
			return fmt.Sprintf("Towing a %s — excluded under liability terms.", f.String("towed_item_type"))
		},
	},
	{
		ID: "towing_item_unspecified",
		When: func(f Facts) bool {
			return f.True("did_towing_occur") && !f.True("was_towing_for_hire_or_reward") &&
				!isExcludedTowedItem(f.String("towed_item_type"))
		},
		Class:  Pending,
		Reason: text("Towing activity reported but item type unspecified."),
	},
	{
		ID: "charging_cable_due_care",
		When: func(f Facts) bool {
			return f.True("was_charging_cable_in_use") && f.True("did_cable_cause_damage_or_injury") &&
				f.True("was_due_care_taken_with_cable")
		},
		Class:  Approved,
		Reason: text("Damage/injury from charging cable covered — due care confirmed."),
	},
	{
		ID: "charging_cable_no_due_care",
		When: func(f Facts) bool {
			return f.True("was_charging_cable_in_use") && f.True("did_cable_cause_damage_or_injury") &&
				!f.True("was_due_care_taken_with_cable")
		},
		Class:  Rejected,
		Reason: text("Due care was not taken with charging cable — excluded under policy."),
	},
	{
		ID: "charging_cable_no_incident",
		When: func(f Facts) bool {
			return f.True("was_charging_cable_in_use") && !f.True("did_cable_cause_damage_or_injury")
		},
		Class:  Approved,
		Reason: text("Charging cable was in use but no damage/injury — no liability triggered."),
	},
	{
		ID:     "non_public_location",
		When:   func(f Facts) bool { return f.True("did_incident_occur_in_non_public_location") },
		Class:  Approved,
		Reason: text("Incident occurred off public road — may still be valid under private liability conditions."),
	},
	{
		ID: "autonomous_outside_gb",
		When: func(f Facts) bool {
			return f.True("was_vehicle_in_autonomous_mode") && !f.True("was_incident_in_gb_only")
		},
		Class:  Rejected,
		Reason: text("Autonomous mode incident occurred outside Great Britain — excluded by AEVA region restrictions."),
	},
	{
		ID: "autonomous_software_stale",
		When: func(f Facts) bool {
			return f.True("was_vehicle_in_autonomous_mode") && f.True("was_incident_in_gb_only") &&
				!f.True("was_safety_software_updated")
		},
		Class:  Rejected,
		Reason: text("Critical OTA safety update not installed — autonomous coverage void."),
	},
	{
		ID: "autonomous_software_modified",
		When: func(f Facts) bool {
			return f.True("was_vehicle_in_autonomous_mode") && f.True("was_incident_in_gb_only") &&
				f.True("was_safety_software_updated") && f.True("was_vehicle_software_modified")
		},
		Class:  Rejected,
		Reason: text("Vehicle software was modified — invalidates autonomous driving coverage."),
	},
	{
		ID: "autonomous_covered",
		When: func(f Facts) bool {
			return f.True("was_vehicle_in_autonomous_mode") && f.True("was_incident_in_gb_only") &&
				f.True("was_safety_software_updated") && !f.True("was_vehicle_software_modified")
		},
		Class:  Approved,
		Reason: text("Autonomous vehicle incident covered under AEVA 2018 — all conditions met."),
	},
})

var legalAndStatutoryTable = withDateRules([]Rule{
	{
		ID: "legal_costs_estimated",
		When: func(f Facts) bool {
			cost, ok := f.Number("estimated_legal_costs")
			return f.True("are_legal_costs_expected") && ok && cost >= 0
		},
		Class: Approved,
		Reason: func(f Facts) string {
			cost, _ := f.Number("estimated_legal_costs")
			return fmt.Sprintf("Legal costs expected (£%g) — covered for inquest or defence under policy.", cost)
		},
	},
	{
		ID: "legal_costs_invalid",
		When: func(f Facts) bool {
			cost, ok := f.Number("estimated_legal_costs")
			return f.True("are_legal_costs_expected") && f.Has("estimated_legal_costs") && (!ok || cost < 0)
		},
		Class:  Pending,
		Reason: text("Estimated legal cost provided is invalid."),
	},
	{
		ID: "legal_costs_unestimated",
		When: func(f Facts) bool {
			return f.True("are_legal_costs_expected") && !f.Has("estimated_legal_costs")
		},
		Class:  Pending,
		Reason: text("Legal costs expected but estimate not provided."),
	},
	{
		ID:     "no_legal_costs",
		When:   func(f Facts) bool { return !f.True("are_legal_costs_expected") },
		Class:  Approved,
		Reason: text("No legal costs expected — skipping legal coverage section."),
	},
	{
		ID: "statutory_payment_described",
		When: func(f Facts) bool {
			return f.True("are_statutory_payments_required") && f.String("statutory_payment_description") != ""
		},
		Class: Approved,
		Reason: func(f Facts) string {
			return fmt.Sprintf("Statutory payment required: %s — covered where legally required.", f.String("statutory_payment_description"))
		},
	},
	{
		ID: "statutory_payment_undescribed",
		When: func(f Facts) bool {
			return f.True("are_statutory_payments_required") && f.String("statutory_payment_description") == ""
		},
		Class:  Pending,
		Reason: text("Statutory payment indicated but no description provided."),
	},
	{
		ID:     "no_statutory_payments",
		When:   func(f Facts) bool { return !f.True("are_statutory_payments_required") },
		Class:  Approved,
		Reason: text("No statutory payments required — nothing to process under this section."),
	},
	{
		ID:     "legal_reference_provided",
		When:   func(f Facts) bool { return f.String("legal_reference_number") != "" },
		Class:  Approved,
		Reason: text("Legal reference number provided — supports claim validation."),
	},
	{
		ID: "legal_reference_empty",
		When: func(f Facts) bool {
			return f.Has("legal_reference_number") && f.String("legal_reference_number") == ""
		},
		Class:  Pending,
		Reason: text("Legal reference number field is empty — may delay validation."),
	},
	{
		ID:     "legal_reference_missing",
		When:   func(f Facts) bool { return !f.Has("legal_reference_number") },
		Class:  Pending,
		Reason: text("Legal reference number not provided — recommended for tracking legal expenses."),
	},
})
