package policy

import (
	"fmt"
	"strings"
)

// Module 3: personal protection and convenience policies.

func isEligibleInjuredParty(party string) bool {
	switch party {
	case "policyholder", "partner", "named_driver":
		return true
	}
	return false
}

func isCompensableInjury(injury string) bool {
	switch injury {
	case "death", "limb_loss", "loss_of_sight", "loss_of_hearing", "permanent_disability":
		return true
	}
	return false
}

// injuryBenefitQualifies checks the full eligibility chain short of the
// seatbelt and intoxication conditions, which carry their own rules.
func injuryBenefitQualifies(f Facts) bool {
	return f.True("did_personal_injury_occur") &&
		isEligibleInjuredParty(f.String("injured_party_type")) &&
		isCompensableInjury(f.String("injury_type")) &&
		f.True("was_injury_within_12_months")
}

var personalInjuryTable = withDateRules([]Rule{
	{
		ID: "benefit_applies",
		When: func(f Facts) bool {
			return injuryBenefitQualifies(f) && f.True("was_seatbelt_worn") && !f.True("was_alcohol_or_drugs_involved")
		},
		Class: Approved,
		Reason: func(f Facts) string {
			return fmt.Sprintf("Personal accident benefit applies for %s to %s.",
				f.String("injury_type"), f.String("injured_party_type"))
		},
	},
	{
		ID: "intoxication_exclusion",
		When: func(f Facts) bool {
			return injuryBenefitQualifies(f) && f.True("was_seatbelt_worn") && f.True("was_alcohol_or_drugs_involved")
		},
		Class:  Rejected,
		Reason: text("Claim rejected due to alcohol or drug involvement."),
	},
	{
		ID: "seatbelt_not_worn",
		When: func(f Facts) bool {
			return injuryBenefitQualifies(f) && !f.True("was_seatbelt_worn")
		},
		Class:  Rejected,
		Reason: text("Seatbelt not worn — violates safety requirement for injury claims."),
	},
	{
		ID: "outside_benefit_window",
		When: func(f Facts) bool {
			return f.True("did_personal_injury_occur") &&
				isEligibleInjuredParty(f.String("injured_party_type")) &&
				isCompensableInjury(f.String("injury_type")) &&
				!f.True("was_injury_within_12_months")
		},
		Class:  Rejected,
		Reason: text("Injury occurred outside 12-month benefit window — not eligible."),
	},
	{
		ID: "injury_not_compensable",
		When: func(f Facts) bool {
			return f.True("did_personal_injury_occur") &&
				isEligibleInjuredParty(f.String("injured_party_type")) &&
				!isCompensableInjury(f.String("injury_type"))
		},
		Class:  Pending,
		Reason: text("Injury reported is not in compensable list — further review needed."),
	},
	{
		ID: "party_not_eligible",
		When: func(f Facts) bool {
			return f.True("did_personal_injury_occur") && !isEligibleInjuredParty(f.String("injured_party_type"))
		},
		Class:  Pending,
		Reason: text("Injured party not eligible for personal accident benefit — further validation needed."),
	},
	{
		ID:     "no_personal_injury",
		When:   func(f Facts) bool { return !f.True("did_personal_injury_occur") },
		Class:  Rejected,
		Reason: text("No personal injury occurred — skipping injury benefit evaluation."),
	},
	{
		ID: "medical_expenses_within_limit",
		When: func(f Facts) bool {
			amt, _ := f.Number("medical_expenses_amount")
			return f.True("did_medical_expenses_incur") && amt <= 250
		},
		Class: Approved,
		Reason: func(f Facts) string {
			amt, _ := f.Number("medical_expenses_amount")
			return fmt.Sprintf("Medical expenses of £%g covered (≤ £250 limit).", amt)
		},
	},
	{
		ID: "medical_expenses_over_limit",
		When: func(f Facts) bool {
			amt, _ := f.Number("medical_expenses_amount")
			return f.True("did_medical_expenses_incur") && amt > 250
		},
		Class:  Pending,
		Reason: text("Medical expenses exceed £250 limit — review for partial payout or exception."),
	},
	{
		ID: "road_rage_unreported",
		When: func(f Facts) bool {
			return f.True("did_road_rage_assault_occur") && !f.True("was_road_rage_reported_to_police")
		},
		Class:  Pending,
		Reason: text("Road rage assault not reported to police — reporting required."),
	},
	{
		ID: "road_rage_assailant_known",
		When: func(f Facts) bool {
			return f.True("did_road_rage_assault_occur") && f.True("was_road_rage_reported_to_police") &&
				f.True("was_road_rage_assailant_known")
		},
		Class:  Rejected,
		Reason: text("Assailant known — not eligible under policy terms."),
	},
	{
		ID: "road_rage_provoked",
		When: func(f Facts) bool {
			return f.True("did_road_rage_assault_occur") && f.True("was_road_rage_reported_to_police") &&
				!f.True("was_road_rage_assailant_known") && f.True("was_road_rage_provoked_by_insured")
		},
		Class:  Rejected,
		Reason: text("Policyholder provoked road rage incident — not covered."),
	},
	{
		ID: "road_rage_covered",
		When: func(f Facts) bool {
			return f.True("did_road_rage_assault_occur") && f.True("was_road_rage_reported_to_police") &&
				!f.True("was_road_rage_assailant_known") && !f.True("was_road_rage_provoked_by_insured")
		},
		Class:  Approved,
		Reason: text("Road rage assault occurred and meets all coverage conditions."),
	},
	{
		ID: "theft_assault_unreported",
		When: func(f Facts) bool {
			return f.True("did_aggravated_theft_assault_occur") && !f.True("was_theft_assault_reported_to_police")
		},
		Class:  Pending,
		Reason: text("Theft assault occurred but not reported — required for claim."),
	},
	{
		ID: "theft_assailant_known",
		When: func(f Facts) bool {
			return f.True("did_aggravated_theft_assault_occur") && f.True("was_theft_assault_reported_to_police") &&
				f.True("was_theft_assailant_known")
		},
		Class:  Rejected,
		Reason: text("Assailant known — not eligible for aggravated theft assault benefit."),
	},
	{
		ID: "theft_assault_covered",
		When: func(f Facts) bool {
			return f.True("did_aggravated_theft_assault_occur") && f.True("was_theft_assault_reported_to_police") &&
				!f.True("was_theft_assailant_known")
		},
		Class:  Approved,
		Reason: text("Aggravated theft assault occurred and meets policy requirements."),
	},
})

var personalConvenienceTable = withDateRules([]Rule{
	{
		ID: "hire_car_eligible",
		When: func(f Facts) bool {
			return f.True("did_request_guaranteed_hire_car") && f.True("was_incident_within_territorial_limits") &&
				(f.True("was_vehicle_status_repairable") || f.True("was_vehicle_status_total_loss"))
		},
		Class:  Approved,
		Reason: text("Hire car requested and eligible — within territorial limits and vehicle status supports request."),
	},
	{
		ID: "hire_car_status_unclear",
		When: func(f Facts) bool {
			return f.True("did_request_guaranteed_hire_car") && f.True("was_incident_within_territorial_limits") &&
				!f.True("was_vehicle_status_repairable") && !f.True("was_vehicle_status_total_loss")
		},
		Class:  Pending,
		Reason: text("Hire car requested, but vehicle status not clearly marked as repairable or total loss."),
	},
	{
		ID: "hire_car_outside_territory",
		When: func(f Facts) bool {
			return f.True("did_request_guaranteed_hire_car") && !f.True("was_incident_within_territorial_limits")
		},
		Class:  Rejected,
		Reason: text("Hire car requested but incident occurred outside territorial limits — not covered."),
	},
	{
		ID: "continuation_receipts_missing",
		When: func(f Facts) bool {
			return f.True("did_request_continuation_of_journey") && !f.True("were_continuation_receipts_provided")
		},
		Class:  Pending,
		Reason: text("Continuation of journey requested, but receipts not provided."),
	},
	{
		ID: "continuation_within_limit",
		When: func(f Facts) bool {
			amount, _ := f.Number("continuation_expenses_amount")
			return f.True("did_request_continuation_of_journey") && f.True("were_continuation_receipts_provided") &&
				amount <= 500
		},
		Class: Approved,
		Reason: func(f Facts) string {
			amount, _ := f.Number("continuation_expenses_amount")
			return fmt.Sprintf("Continuation of journey covered — receipts provided and within £500 limit (claimed: £%g).", amount)
		},
	},
	{
		ID: "continuation_over_limit",
		When: func(f Facts) bool {
			amount, _ := f.Number("continuation_expenses_amount")
			return f.True("did_request_continuation_of_journey") && f.True("were_continuation_receipts_provided") &&
				amount > 500
		},
		Class: Pending,
		Reason: func(f Facts) string {
			amount, _ := f.Number("continuation_expenses_amount")
			return fmt.Sprintf("Continuation of journey amount (£%g) exceeds £500 limit — partial approval may apply or review needed.", amount)
		},
	},
	{
		ID:     "no_continuation_requested",
		When:   func(f Facts) bool { return !f.True("did_request_continuation_of_journey") },
		Class:  Approved,
		Reason: text("No continuation of journey requested — skipping that section."),
	},
})

// excludedBelongingKeywords mirrors the policy's excluded item categories.
var excludedBelongingKeywords = []string{
	"money", "stamps", "tickets", "documents", "securities",
	"trade", "tools", "equipment", "already insured",
}

func isExcludedBelonging(description string) bool {
	desc := strings.ToLower(description)
	for _, banned := range excludedBelongingKeywords {
		if strings.Contains(desc, banned) {
			return true
		}
	}
	return false
}

var personalPropertyTable = withDateRules([]Rule{
	{
		ID:     "no_items_lost",
		When:   func(f Facts) bool { return !f.True("did_items_become_lost_or_damaged") },
		Class:  Rejected,
		Reason: text("No items were lost or damaged — claim is not valid under this section."),
	},
	{
		ID:     "items_reported",
		When:   func(f Facts) bool { return f.True("did_items_become_lost_or_damaged") },
		Class:  Approved,
		Reason: text("Personal belongings reported as lost or damaged."),
	},
	{
		ID:     "item_list_empty",
		When:   func(f Facts) bool { return f.Has("item_list") && len(f.List("item_list")) == 0 },
		Class:  Pending,
		Reason: text("Item list is empty — please provide descriptions and values."),
	},
	{
		ID:     "item_list_missing",
		When:   func(f Facts) bool { return !f.Has("item_list") },
		Class:  Pending,
		Reason: text("Item list is missing or invalid."),
	},
	{
		ID: "excluded_item",
		When: func(f Facts) bool {
			for _, item := range f.List("item_list") {
				if isExcludedBelonging(item.String("description")) {
					return true
				}
			}
			return false
		},
		Class: Rejected,
		Reason: func(f Facts) string {
			for _, item := range f.List("item_list") {
				if desc := item.String("description"); isExcludedBelonging(desc) {
					return fmt.Sprintf("Item '%s' appears to fall under an excluded category.", strings.ToLower(desc))
				}
			}
			return "An item appears to fall under an excluded category."
		},
	},
	{
		ID: "item_over_limit",
		When: func(f Facts) bool {
			for _, item := range f.List("item_list") {
				value, _ := item.Number("estimated_value")
				if !isExcludedBelonging(item.String("description")) && value > 300 {
					return true
				}
			}
			return false
		},
		Class: Pending,
		Reason: func(f Facts) string {
			for _, item := range f.List("item_list") {
				value, _ := item.Number("estimated_value")
				if desc := item.String("description"); !isExcludedBelonging(desc) && value > 300 {
					return fmt.Sprintf("Item '%s' exceeds £300 limit — may need further clarification or partial approval.", strings.ToLower(desc))
				}
			}
			return "An item exceeds the £300 single-item limit."
		},
	},
	{
		ID: "items_within_limits",
		When: func(f Facts) bool {
			items := f.List("item_list")
			if len(items) == 0 {
				return false
			}
			for _, item := range items {
				value, _ := item.Number("estimated_value")
				if isExcludedBelonging(item.String("description")) || value > 300 {
					return false
				}
			}
			return true
		},
		Class:  Approved,
		Reason: text("All listed items are within acceptable policy limits."),
	},
	{
		ID: "total_value_over_limit",
		When: func(f Facts) bool {
			total, ok := f.Number("total_estimated_value")
			return ok && total > 300
		},
		Class:  Pending,
		Reason: text("Total estimated value exceeds £300 — may exceed policy limit."),
	},
	{
		ID: "total_value_within_limit",
		When: func(f Facts) bool {
			total, ok := f.Number("total_estimated_value")
			return ok && total <= 300
		},
		Class: Approved,
		Reason: func(f Facts) string {
			total, _ := f.Number("total_estimated_value")
			return fmt.Sprintf("Total estimated value: £%g", total)
		},
	},
	{
		ID:     "total_value_missing",
		When:   func(f Facts) bool { return !f.Has("total_estimated_value") },
		Class:  Pending,
		Reason: text("Total estimated value is missing."),
	},
	{
		ID:     "items_out_of_sight",
		When:   func(f Facts) bool { return f.True("were_items_stored_out_of_sight") },
		Class:  Approved,
		Reason: text("Items were stored out of sight — complies with storage condition."),
	},
	{
		ID:     "items_in_sight",
		When:   func(f Facts) bool { return f.False("were_items_stored_out_of_sight") },
		Class:  Rejected,
		Reason: text("Items not stored out of sight — violates storage requirement."),
	},
	{
		ID:     "storage_unconfirmed",
		When:   func(f Facts) bool { return !f.Has("were_items_stored_out_of_sight") },
		Class:  Pending,
		Reason: text("Storage condition not confirmed — please indicate if items were out of sight."),
	},
})
