package policy

import "fmt"

// Module 4: policy governance and eligibility.

var territorialUsageTable = []Rule{
	{
		ID:     "within_covered_regions",
		When:   func(f Facts) bool { return f.True("was_incident_within_great_britain_ni_ci_iom") },
		Class:  Approved,
		Reason: text("Incident occurred within covered regions (Great Britain, NI, Isle of Man, Channel Islands)."),
	},
	{
		ID: "eu_within_day_limit",
		When: func(f Facts) bool {
			days, ok := f.Number("days_spent_abroad_in_eu")
			return !f.True("was_incident_within_great_britain_ni_ci_iom") && ok && days <= 180
		},
		Class:  Approved,
		Reason: text("Incident occurred in EU within 180-day limit — European cover applies (excludes Republic of Ireland from this limit)."),
	},
	{
		ID: "eu_over_day_limit",
		When: func(f Facts) bool {
			days, ok := f.Number("days_spent_abroad_in_eu")
			return !f.True("was_incident_within_great_britain_ni_ci_iom") && ok && days > 180
		},
		Class: Rejected,
		Reason: func(f Facts) string {
			days, _ := f.Number("days_spent_abroad_in_eu")
			return fmt.Sprintf("Vehicle abroad for %g days — exceeds 180-day limit for EU cover.", days)
		},
	},
	{
		ID: "territory_unclear",
		When: func(f Facts) bool {
			_, ok := f.Number("days_spent_abroad_in_eu")
			return !f.True("was_incident_within_great_britain_ni_ci_iom") && !ok
		},
		Class:  Pending,
		Reason: text("Territorial limits not met and days abroad not specified — requires clarification."),
	},
	{
		ID:     "hire_or_reward",
		When:   func(f Facts) bool { return f.True("did_use_for_hire_or_reward") },
		Class:  Rejected,
		Reason: text("Vehicle was used for hire or reward — usage not covered by standard private policy."),
	},
	{
		ID:     "no_hire_or_reward",
		When:   func(f Facts) bool { return !f.True("did_use_for_hire_or_reward") },
		Class:  Approved,
		Reason: text("Vehicle was not used for hire or reward."),
	},
	{
		ID:     "courier_or_taxi_use",
		When:   func(f Facts) bool { return f.True("did_use_for_courier_or_taxi") },
		Class:  Rejected,
		Reason: text("Courier or taxi usage — excluded under policy use conditions."),
	},
	{
		ID:     "track_or_racing_use",
		When:   func(f Facts) bool { return f.True("did_use_on_track_days_or_racing") },
		Class:  Rejected,
		Reason: text("Vehicle used on track days or racing — strictly excluded from cover."),
	},
	{
		ID:     "no_track_use",
		When:   func(f Facts) bool { return !f.True("did_use_on_track_days_or_racing") },
		Class:  Approved,
		Reason: text("Vehicle not used for track or racing — usage compliant."),
	},
	{
		ID:     "off_road_use",
		When:   func(f Facts) bool { return f.True("did_use_off_road") },
		Class:  Pending,
		Reason: text("Vehicle used off-road — eligibility depends on location and purpose (may be partially covered)."),
	},
	{
		ID:     "no_off_road_use",
		When:   func(f Facts) bool { return f.False("did_use_off_road") },
		Class:  Approved,
		Reason: text("Vehicle was not used off-road."),
	},
}

var generalExceptionsTable = []Rule{
	{
		ID:     "war_or_terrorism",
		When:   func(f Facts) bool { return f.True("did_war_or_terrorism_occur") },
		Class:  Rejected,
		Reason: text("Claim involves war, terrorism, or civil unrest — excluded under general exceptions unless required by the Road Traffic Act."),
	},
	{
		ID:     "no_war_or_terrorism",
		When:   func(f Facts) bool { return !f.True("did_war_or_terrorism_occur") },
		Class:  Approved,
		Reason: text("No war or terrorism involved."),
	},
	{
		ID:     "nuclear_risk",
		When:   func(f Facts) bool { return f.True("did_nuclear_or_radioactive_risk") },
		Class:  Rejected,
		Reason: text("Nuclear/radioactive material risk present — fully excluded under general exceptions."),
	},
	{
		ID:     "no_nuclear_risk",
		When:   func(f Facts) bool { return !f.True("did_nuclear_or_radioactive_risk") },
		Class:  Approved,
		Reason: text("No nuclear or radioactive risk reported."),
	},
	{
		ID:     "pollution",
		When:   func(f Facts) bool { return f.True("did_pollution_or_contamination") },
		Class:  Pending,
		Reason: text("Pollution/contamination involved — only covered if sudden, identifiable, and accidental. Further investigation needed."),
	},
	{
		ID:     "no_pollution",
		When:   func(f Facts) bool { return !f.True("did_pollution_or_contamination") },
		Class:  Approved,
		Reason: text("No pollution or contamination involved."),
	},
	{
		ID:     "intoxication",
		When:   func(f Facts) bool { return f.True("was_alcohol_or_drugs_involved") },
		Class:  Rejected,
		Reason: text("Driver under influence of alcohol or drugs — only legal liability may apply under compulsory law. Otherwise excluded."),
	},
	{
		ID:     "no_intoxication",
		When:   func(f Facts) bool { return !f.True("was_alcohol_or_drugs_involved") },
		Class:  Approved,
		Reason: text("No alcohol or drug use involved."),
	},
	{
		ID:     "cyber_attack",
		When:   func(f Facts) bool { return f.True("did_cyber_attack_occur") },
		Class:  Rejected,
		Reason: text("Cyber attack present — fully excluded unless RTA requires legal liability to be paid."),
	},
	{
		ID:     "no_cyber_attack",
		When:   func(f Facts) bool { return !f.True("did_cyber_attack_occur") },
		Class:  Approved,
		Reason: text("No cyber attack involved."),
	},
}

var vehicleSecurityTable = []Rule{
	{
		ID:     "mot_valid",
		When:   func(f Facts) bool { return f.True("was_mot_valid") },
		Class:  Approved,
		Reason: text("MOT was valid — meets legal requirement for cover."),
	},
	{
		ID:     "mot_invalid",
		When:   func(f Facts) bool { return !f.True("was_mot_valid") },
		Class:  Pending,
		Reason: text("MOT was not valid — may affect eligibility depending on claim type and circumstances."),
	},
	{
		ID:     "roadworthy",
		When:   func(f Facts) bool { return f.True("was_vehicle_roadworthy") },
		Class:  Approved,
		Reason: text("Vehicle was roadworthy — satisfies general policy condition."),
	},
	{
		ID:     "not_roadworthy",
		When:   func(f Facts) bool { return !f.True("was_vehicle_roadworthy") },
		Class:  Rejected,
		Reason: text("Vehicle was not roadworthy — excluded under policy duties to maintain condition."),
	},
	{
		ID:     "tracking_device_working",
		When:   func(f Facts) bool { return f.True("was_tracking_device_working") },
		Class:  Approved,
		Reason: text("Tracking device was operational — meets theft and recovery requirements."),
	},
	{
		ID:     "tracking_device_broken",
		When:   func(f Facts) bool { return f.False("was_tracking_device_working") },
		Class:  Rejected,
		Reason: text("Tracking device not working — violates security condition; may void theft-related claims."),
	},
	{
		ID:     "tracking_device_unknown",
		When:   func(f Facts) bool { return !f.Has("was_tracking_device_working") },
		Class:  Pending,
		Reason: text("Tracking device status not provided — required for theft-related claims."),
	},
	{
		ID:     "ignition_secured",
		When:   func(f Facts) bool { return f.True("was_ignition_device_secured") },
		Class:  Approved,
		Reason: text("Ignition device was properly secured — meets security obligation."),
	},
	{
		ID:     "ignition_unsecured",
		When:   func(f Facts) bool { return !f.True("was_ignition_device_secured") },
		Class:  Rejected,
		Reason: text("Ignition device was left unsecured — excluded under policy security clauses."),
	},
	{
		ID:     "adas_current",
		When:   func(f Facts) bool { return f.True("was_adas_software_up_to_date") },
		Class:  Approved,
		Reason: text("ADAS/ALKS software was up to date — complies with general conditions."),
	},
	{
		ID:     "adas_stale",
		When:   func(f Facts) bool { return f.False("was_adas_software_up_to_date") },
		Class:  Pending,
		Reason: text("ADAS/ALKS software not up to date — may affect autonomous driving claims."),
	},
	{
		ID:     "ota_accepted",
		When:   func(f Facts) bool { return f.True("did_accept_ota_updates") },
		Class:  Approved,
		Reason: text("OTA updates accepted — satisfies critical update requirement."),
	},
	{
		ID:     "ota_declined",
		When:   func(f Facts) bool { return f.False("did_accept_ota_updates") },
		Class:  Rejected,
		Reason: text("Failure to install safety-critical OTA updates — excluded from cover for autonomous systems."),
	},
	{
		ID:     "ota_unknown",
		When:   func(f Facts) bool { return !f.Has("did_accept_ota_updates") },
		Class:  Pending,
		Reason: text("OTA update acceptance status not specified — needed for autonomous driving compliance."),
	},
}

var administrativeTable = []Rule{
	{
		ID:     "policy_inactive",
		When:   func(f Facts) bool { return f.False("is_policy_active") },
		Class:  Rejected,
		Reason: text("Policy is inactive — no cover applies."),
	},
	{
		ID:     "policy_active",
		When:   func(f Facts) bool { return f.True("is_policy_active") },
		Class:  Approved,
		Reason: text("Policy is currently active."),
	},
	{
		ID:     "policy_status_unknown",
		When:   func(f Facts) bool { return !f.Has("is_policy_active") },
		Class:  Pending,
		Reason: text("Policy status not confirmed."),
	},
	{
		ID:     "premium_in_arrears",
		When:   func(f Facts) bool { return f.False("is_premium_paid_up_to_date") },
		Class:  Rejected,
		Reason: text("Premium payments are not up to date — cover is invalid."),
	},
	{
		ID:     "premium_current",
		When:   func(f Facts) bool { return f.True("is_premium_paid_up_to_date") },
		Class:  Approved,
		Reason: text("Premiums are up to date."),
	},
	{
		ID:     "premium_status_unknown",
		When:   func(f Facts) bool { return !f.Has("is_premium_paid_up_to_date") },
		Class:  Pending,
		Reason: text("Unable to verify premium payment status."),
	},
	{
		ID:    "ncd_applied",
		When:  func(f Facts) bool { return f.Has("no_claim_discount_years") },
		Class: Approved,
		Reason: func(f Facts) string {
			years, _ := f.Number("no_claim_discount_years")
			return fmt.Sprintf("NCD applied with %g year(s).", years)
		},
	},
	{
		ID:     "ncd_protected",
		When:   func(f Facts) bool { return f.Has("no_claim_discount_years") && f.True("is_ncd_protected") },
		Class:  Approved,
		Reason: text("NCD is protected — future claims won't affect discount (terms apply)."),
	},
	{
		ID:     "ncd_unprotected",
		When:   func(f Facts) bool { return f.Has("no_claim_discount_years") && !f.True("is_ncd_protected") },
		Class:  Pending,
		Reason: text("NCD not protected — future claims may reduce discount."),
	},
	{
		ID:     "ncd_missing",
		When:   func(f Facts) bool { return !f.Has("no_claim_discount_years") },
		Class:  Pending,
		Reason: text("No claim discount info missing."),
	},
	{
		ID:     "identity_proved",
		When:   func(f Facts) bool { return f.True("was_proof_of_identity_provided") },
		Class:  Approved,
		Reason: text("Proof of identity provided."),
	},
	{
		ID:     "identity_missing",
		When:   func(f Facts) bool { return !f.True("was_proof_of_identity_provided") },
		Class:  Pending,
		Reason: text("Proof of identity missing — required for verification."),
	},
	{
		ID:     "address_proved",
		When:   func(f Facts) bool { return f.True("was_proof_of_address_provided") },
		Class:  Approved,
		Reason: text("Proof of address provided."),
	},
	{
		ID:     "address_missing",
		When:   func(f Facts) bool { return !f.True("was_proof_of_address_provided") },
		Class:  Pending,
		Reason: text("Proof of address missing — required for verification."),
	},
}
