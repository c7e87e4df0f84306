package policy

import (
	"fmt"
	"strings"
)

// Module 1: physical loss and damage policies.

var accidentalAndGlassTable = withDateRules([]Rule{
	{
		ID:     "collision_covered",
		When:   func(f Facts) bool { return f.True("did_collision_occur") },
		Class:  Approved,
		Reason: text("Collision occurred — covered under accidental damage."),
	},
	{
		ID:     "no_collision",
		When:   func(f Facts) bool { return !f.True("did_collision_occur") },
		Class:  Pending,
		Reason: text("No collision occurred — not eligible under accidental damage unless other covered event applies."),
	},
	{
		ID:     "other_vehicle_involved",
		When:   func(f Facts) bool { return f.True("did_collision_occur") && f.True("was_other_vehicle_involved") },
		Class:  Approved,
		Reason: text("Other vehicle involved — additional third-party cover may apply."),
	},
	{
		ID: "other_vehicle_registration_missing",
		When: func(f Facts) bool {
			return f.True("did_collision_occur") && f.True("was_other_vehicle_involved") &&
				f.String("other_vehicle_registration") == ""
		},
		Class:  Pending,
		Reason: text("Other vehicle involved but registration missing."),
	},
	{
		ID: "other_vehicle_make_missing",
		When: func(f Facts) bool {
			return f.True("did_collision_occur") && f.True("was_other_vehicle_involved") &&
				f.String("other_vehicle_make_and_model") == ""
		},
		Class:  Pending,
		Reason: text("Other vehicle involved but make/model missing."),
	},
	{
		ID:     "single_vehicle_collision",
		When:   func(f Facts) bool { return f.True("did_collision_occur") && !f.True("was_other_vehicle_involved") },
		Class:  Approved,
		Reason: text("No other vehicle involved — single-vehicle collision covered."),
	},
	{
		ID:     "object_struck_described",
		When:   func(f Facts) bool { return f.True("did_strike_object") && f.String("object_struck_description") != "" },
		Class:  Approved,
		Reason: text("Struck object described — eligible under accidental damage."),
	},
	{
		ID:     "object_struck_undescribed",
		When:   func(f Facts) bool { return f.True("did_strike_object") && f.String("object_struck_description") == "" },
		Class:  Pending,
		Reason: text("Object was struck but not described."),
	},
	{
		ID: "impact_speed_noted",
		When: func(f Facts) bool {
			speed, ok := f.Number("estimated_speed_at_impact_mph")
			return ok && speed >= 0
		},
		Class: Approved,
		Reason: func(f Facts) string {
			speed, _ := f.Number("estimated_speed_at_impact_mph")
			return fmt.Sprintf("Speed at impact noted: %g mph.", speed)
		},
	},
	{
		ID: "impact_speed_invalid",
		When: func(f Facts) bool {
			speed, ok := f.Number("estimated_speed_at_impact_mph")
			return f.Has("estimated_speed_at_impact_mph") && (!ok || speed < 0)
		},
		Class:  Pending,
		Reason: text("Estimated speed at impact is invalid."),
	},
	{
		ID:    "location_noted",
		When:  func(f Facts) bool { return f.String("location_type") != "" },
		Class: Approved,
		Reason: func(f Facts) string {
			return fmt.Sprintf("Incident location: %s.", strings.ReplaceAll(f.String("location_type"), "_", " "))
		},
	},
	{
		ID:     "vandalism_reported",
		When:   func(f Facts) bool { return f.True("did_vandalism_occur") && f.True("was_vandalism_reported") },
		Class:  Approved,
		Reason: text("Vandalism occurred and was reported — covered under accidental damage."),
	},
	{
		ID: "vandalism_reference_missing",
		When: func(f Facts) bool {
			return f.True("did_vandalism_occur") && f.True("was_vandalism_reported") &&
				f.String("vandalism_crime_reference") == ""
		},
		Class:  Pending,
		Reason: text("Vandalism report missing crime reference."),
	},
	{
		ID:     "vandalism_unreported",
		When:   func(f Facts) bool { return f.True("did_vandalism_occur") && !f.True("was_vandalism_reported") },
		Class:  Pending,
		Reason: text("Vandalism occurred but was not reported to the police — please file a police report."),
	},
	{
		ID:     "wrong_fuel_with_receipts",
		When:   func(f Facts) bool { return f.True("did_wrong_fuel_occur") && f.True("were_fuel_drain_receipts_provided") },
		Class:  Approved,
		Reason: text("Wrong fuel added — receipts provided — covered."),
	},
	{
		ID:     "wrong_fuel_without_receipts",
		When:   func(f Facts) bool { return f.True("did_wrong_fuel_occur") && !f.True("were_fuel_drain_receipts_provided") },
		Class:  Pending,
		Reason: text("Wrong fuel added — pending receipt submission or repair agreement."),
	},
	{
		ID:    "glass_damage_covered",
		When:  func(f Facts) bool { return f.True("did_glass_damage_occur") },
		Class: Approved,
		Reason: func(f Facts) string {
			component := f.String("glass_component_type")
			if component == "" {
				component = "unspecified"
			}
			return fmt.Sprintf("Glass damage reported to %s — covered.", strings.ReplaceAll(component, "_", " "))
		},
	},
	{
		ID:     "adas_recalibration_needed",
		When:   func(f Facts) bool { return f.True("did_glass_damage_occur") && f.True("was_adas_recalibration_needed") },
		Class:  Approved,
		Reason: text("ADAS recalibration required and covered."),
	},
	{
		ID:     "adas_recalibration_not_needed",
		When:   func(f Facts) bool { return f.True("did_glass_damage_occur") && !f.True("was_adas_recalibration_needed") },
		Class:  Approved,
		Reason: text("ADAS recalibration not required or not indicated."),
	},
	{
		ID:     "glass_nonrecommended_repairer",
		When:   func(f Facts) bool { return f.True("did_glass_damage_occur") && !f.True("did_use_recommended_repairer") },
		Class:  Pending,
		Reason: text("Non-recommended repairer used — additional excess may apply."),
	},
	{
		ID:     "glass_only_claim",
		When:   func(f Facts) bool { return f.True("did_glass_damage_occur") && f.True("is_glass_only_claim") },
		Class:  Approved,
		Reason: text("Glass-only claim — processed under glass section."),
	},
})

var fireTable = withDateRules([]Rule{
	{
		ID: "covered_fire_event",
		When: func(f Facts) bool {
			return f.True("did_fire_occur") || f.True("did_lightning_occur") || f.True("did_explosion_occur")
		},
		Class:  Approved,
		Reason: text("Incident caused by fire/lightning/explosion — all are covered events under fire/theft section."),
	},
	{
		ID: "no_covered_fire_event",
		When: func(f Facts) bool {
			return !f.True("did_fire_occur") && !f.True("did_lightning_occur") && !f.True("did_explosion_occur")
		},
		Class:  Rejected,
		Reason: text("None of the covered events (fire/lightning/explosion) occurred — not eligible under fire/theft section."),
	},
	{
		ID:    "fire_origin_noted",
		When:  func(f Facts) bool { return f.Has("fire_origin_area") },
		Class: Approved,
		Reason: func(f Facts) string {
			return fmt.Sprintf("Fire origin noted: %s.", strings.ReplaceAll(f.String("fire_origin_area"), "_", " "))
		},
	},
	{
		ID:     "fire_origin_missing",
		When:   func(f Facts) bool { return !f.Has("fire_origin_area") },
		Class:  Pending,
		Reason: text("Fire origin area not specified."),
	},
	{
		ID:    "fire_extent_noted",
		When:  func(f Facts) bool { return f.Has("fire_damage_extent") },
		Class: Approved,
		Reason: func(f Facts) string {
			return fmt.Sprintf("Fire damage extent: %s.", f.String("fire_damage_extent"))
		},
	},
	{
		ID:     "fire_extent_missing",
		When:   func(f Facts) bool { return !f.Has("fire_damage_extent") },
		Class:  Pending,
		Reason: text("Extent of fire damage not provided."),
	},
	{
		ID:     "fire_reported_with_reference",
		When:   func(f Facts) bool { return f.True("was_fire_reported") && f.String("fire_crime_reference") != "" },
		Class:  Approved,
		Reason: text("Fire was reported and crime reference is available."),
	},
	{
		ID:     "fire_reported_without_reference",
		When:   func(f Facts) bool { return f.True("was_fire_reported") && f.String("fire_crime_reference") == "" },
		Class:  Pending,
		Reason: text("Fire was reported but crime reference is missing — may delay claim."),
	},
	{
		ID:     "fire_unreported",
		When:   func(f Facts) bool { return !f.True("was_fire_reported") },
		Class:  Pending,
		Reason: text("Fire not reported — strongly advised to file an official report to proceed."),
	},
	{
		ID:     "mot_valid_at_time",
		When:   func(f Facts) bool { return f.True("was_mot_valid_at_time") },
		Class:  Approved,
		Reason: text("MOT was valid at time of fire."),
	},
	{
		ID:     "mot_invalid_at_time",
		When:   func(f Facts) bool { return f.False("was_mot_valid_at_time") },
		Class:  Pending,
		Reason: text("MOT was not valid at time — claim may still proceed, but this must be reviewed."),
	},
	{
		ID:     "adas_up_to_date",
		When:   func(f Facts) bool { return f.True("was_adas_software_up_to_date") },
		Class:  Approved,
		Reason: text("ADAS software was up to date at time of fire."),
	},
	{
		ID:     "adas_out_of_date",
		When:   func(f Facts) bool { return f.False("was_adas_software_up_to_date") },
		Class:  Pending,
		Reason: text("ADAS software not up to date — this may affect claim eligibility if safety-related."),
	},
	{
		ID:     "nonrecommended_repairer",
		When:   func(f Facts) bool { return f.False("did_use_recommended_repairer") },
		Class:  Pending,
		Reason: text("Non-recommended repairer used — additional excess may apply."),
	},
	{
		ID: "repair_cost_noted",
		When: func(f Facts) bool {
			cost, ok := f.Number("estimated_repair_cost")
			return ok && cost >= 0
		},
		Class: Approved,
		Reason: func(f Facts) string {
			cost, _ := f.Number("estimated_repair_cost")
			return fmt.Sprintf("Estimated repair cost: £%g", cost)
		},
	},
	{
		ID: "repair_cost_invalid",
		When: func(f Facts) bool {
			cost, ok := f.Number("estimated_repair_cost")
			return f.Has("estimated_repair_cost") && (!ok || cost < 0)
		},
		Class:  Pending,
		Reason: text("Invalid repair cost value provided."),
	},
})

var theftTable = withDateRules([]Rule{
	{
		ID:     "theft_occurred",
		When:   func(f Facts) bool { return f.True("did_theft_occur") },
		Class:  Approved,
		Reason: text("Theft occurred — eligible under fire/theft section."),
	},
	{
		ID:     "attempted_theft",
		When:   func(f Facts) bool { return !f.True("did_theft_occur") && f.True("was_theft_attempted") },
		Class:  Approved,
		Reason: text("Attempted theft is also covered under fire/theft section."),
	},
	{
		ID:     "no_theft_event",
		When:   func(f Facts) bool { return !f.True("did_theft_occur") && !f.True("was_theft_attempted") },
		Class:  Rejected,
		Reason: text("No theft or attempted theft reported — not covered."),
	},
	{
		ID:     "vehicle_recovered",
		When:   func(f Facts) bool { return f.True("was_vehicle_stolen_and_recovered") },
		Class:  Approved,
		Reason: text("Vehicle was recovered — further assessment may determine if repair or total loss."),
	},
	{
		ID:     "theft_reported_with_reference",
		When:   func(f Facts) bool { return f.True("was_theft_reported") && f.String("theft_crime_reference") != "" },
		Class:  Approved,
		Reason: text("Theft was reported and crime reference provided."),
	},
	{
		ID:     "theft_reported_without_reference",
		When:   func(f Facts) bool { return f.True("was_theft_reported") && f.String("theft_crime_reference") == "" },
		Class:  Pending,
		Reason: text("Theft was reported but crime reference is missing."),
	},
	{
		ID:     "theft_unreported",
		When:   func(f Facts) bool { return !f.True("was_theft_reported") },
		Class:  Pending,
		Reason: text("Theft not reported to police — please report and provide crime reference."),
	},
	{
		ID:     "tracker_inactive",
		When:   func(f Facts) bool { return f.True("was_tracker_installed") && f.False("was_tracker_active") },
		Class:  Rejected,
		Reason: text("Tracker was installed but not active — this violates tracking device condition."),
	},
	{
		ID:     "tracker_active",
		When:   func(f Facts) bool { return f.True("was_tracker_installed") && f.True("was_tracker_active") },
		Class:  Approved,
		Reason: text("Tracker installed and active — meets theft protection requirements."),
	},
	{
		ID:     "tracker_status_unknown",
		When:   func(f Facts) bool { return f.True("was_tracker_installed") && !f.Has("was_tracker_active") },
		Class:  Pending,
		Reason: text("Tracker status unclear — please confirm if active at time of theft."),
	},
	{
		ID:     "car_unlocked",
		When:   func(f Facts) bool { return f.False("was_car_locked") },
		Class:  Rejected,
		Reason: text("Car was left unlocked — theft claim excluded under general exclusions."),
	},
	{
		ID:     "windows_or_roof_open",
		When:   func(f Facts) bool { return f.True("were_windows_or_roof_open") },
		Class:  Rejected,
		Reason: text("Windows or roof were left open — excluded under general exclusions."),
	},
	{
		ID:     "engine_left_running",
		When:   func(f Facts) bool { return f.True("was_engine_left_running") },
		Class:  Rejected,
		Reason: text("Engine left running unattended — theft excluded under general exclusions."),
	},
	{
		ID:     "key_left_with_car",
		When:   func(f Facts) bool { return f.True("was_key_left_in_car") || f.True("was_key_left_near_car") },
		Class:  Rejected,
		Reason: text("Ignition device was left in or near the car — claim excluded under policy."),
	},
	{
		ID:     "nonrecommended_repairer",
		When:   func(f Facts) bool { return f.False("did_use_recommended_repairer") },
		Class:  Pending,
		Reason: text("Non-recommended repairer used — excess may apply."),
	},
})

var ancillaryTable = withDateRules([]Rule{
	{
		ID:     "factory_equipment_damaged",
		When:   func(f Facts) bool { return f.True("was_factory_fitted_equipment_damaged") },
		Class:  Approved,
		Reason: text("Original manufacturer-fitted equipment is covered with no limit."),
	},
	{
		ID: "aftermarket_stored_out_of_sight",
		When: func(f Facts) bool {
			return f.True("was_aftermarket_equipment_damaged") && f.True("was_portable_equipment_stored_out_of_sight")
		},
		Class:  Approved,
		Reason: text("Aftermarket or portable equipment covered up to £1,000 if stored out of sight and listed under family package."),
	},
	{
		ID: "aftermarket_not_stored_properly",
		When: func(f Facts) bool {
			return f.True("was_aftermarket_equipment_damaged") && !f.True("was_portable_equipment_stored_out_of_sight")
		},
		Class:  Pending,
		Reason: text("Aftermarket or portable equipment not stored properly — coverage may be reduced or denied."),
	},
	{
		ID: "equipment_value_noted",
		When: func(f Facts) bool {
			value, ok := f.Number("equipment_damage_value")
			return ok && value >= 0
		},
		Class: Approved,
		Reason: func(f Facts) string {
			value, _ := f.Number("equipment_damage_value")
			return fmt.Sprintf("Reported equipment damage value: £%g", value)
		},
	},
	{
		ID: "equipment_value_invalid",
		When: func(f Facts) bool {
			value, ok := f.Number("equipment_damage_value")
			return f.Has("equipment_damage_value") && (!ok || value < 0)
		},
		Class:  Pending,
		Reason: text("Invalid equipment damage value."),
	},
	{
		ID:     "child_seat_damaged",
		When:   func(f Facts) bool { return f.True("was_child_seat_damaged") },
		Class:  Approved,
		Reason: text("Child seat damage is covered."),
	},
	{
		ID:     "roof_box_damaged",
		When:   func(f Facts) bool { return f.True("was_roof_box_damaged") },
		Class:  Rejected,
		Reason: text("Roof box is not listed as covered under additional property. Not eligible."),
	},
	{
		ID:     "charging_cable_damaged",
		When:   func(f Facts) bool { return f.True("was_charging_cable_damaged") },
		Class:  Approved,
		Reason: text("Charging cable damage is covered if responsible party is you and due care was taken."),
	},
	{
		ID: "new_car_replacement_eligible",
		When: func(f Facts) bool {
			age, ok := f.Number("car_age_in_months")
			return f.True("is_new_car_replacement_eligible") && ok && age <= 12 &&
				f.True("is_first_registered_owner") && f.True("is_damage_over_fifty_percent")
		},
		Class:  Approved,
		Reason: text("Eligible for new car replacement: under 1 year old, first owner, damage over 50%."),
	},
	{
		ID: "new_car_replacement_conditions_unmet",
		When: func(f Facts) bool {
			age, ok := f.Number("car_age_in_months")
			return f.True("is_new_car_replacement_eligible") && ok && age <= 12 &&
				(!f.True("is_first_registered_owner") || !f.True("is_damage_over_fifty_percent"))
		},
		Class:  Pending,
		Reason: text("New car replacement requested, but either not first owner or damage less than 50%."),
	},
	{
		ID: "new_car_replacement_too_old",
		When: func(f Facts) bool {
			age, ok := f.Number("car_age_in_months")
			return f.True("is_new_car_replacement_eligible") && (!ok || age > 12)
		},
		Class:  Pending,
		Reason: text("New car replacement not valid — car is older than 1 year."),
	},
	{
		ID:     "guaranteed_hire_car_requested",
		When:   func(f Facts) bool { return f.True("did_request_guaranteed_hire_car") },
		Class:  Approved,
		Reason: text("Guaranteed hire car is covered if using recommended repairer or for total loss (conditions apply)."),
	},
	{
		ID: "continuation_with_receipts",
		When: func(f Facts) bool {
			return f.True("did_request_continuation_of_journey") && f.True("were_continuation_receipts_provided")
		},
		Class: Approved,
		Reason: func(f Facts) string {
			distance := "unknown"
			if miles, ok := f.Number("continuation_distance_miles"); ok {
				distance = fmt.Sprintf("%g", miles)
			}
			return fmt.Sprintf("Continuation of journey is covered up to £500. Distance: %s miles.", distance)
		},
	},
	{
		ID: "continuation_without_receipts",
		When: func(f Facts) bool {
			return f.True("did_request_continuation_of_journey") && !f.True("were_continuation_receipts_provided")
		},
		Class:  Pending,
		Reason: text("Continuation of journey requested but no receipts provided — cannot approve yet."),
	},
})
