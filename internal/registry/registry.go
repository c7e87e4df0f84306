// Package registry maps incident categories to the specialists that assess
// them. The table is the single source of truth for routing: the triage step
// may only emit categories that exist here, and the orchestrator dispatches
// strictly through Resolve.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mkoval/claimflow/internal/policy"
)

// ErrUnknownCategory is returned by Resolve for a category with no
// registered specialist. Callers skip the category and keep going.
var ErrUnknownCategory = errors.New("unknown incident category")

// categoryToSpecialist routes each incident category to its assessor.
var categoryToSpecialist = map[string]string{
	"accidental_and_glass_damage": policy.SpecAccidentalAndGlass,
	"fire":                        policy.SpecFire,
	"theft":                       policy.SpecTheft,
	"ancillary_property":          policy.SpecAncillary,
	"third_party_injury":          policy.SpecThirdPartyInjury,
	"third_party_property":        policy.SpecThirdPartyProperty,
	"special_liability":           policy.SpecSpecialLiability,
	"legal_and_statutory":         policy.SpecLegalAndStatutory,
	"personal_injury":             policy.SpecPersonalInjury,
	"personal_convenience":        policy.SpecPersonalConvenience,
	"personal_property":           policy.SpecPersonalProperty,
	"territorial_usage":           policy.SpecTerritorialUsage,
	"general_exceptions":          policy.SpecGeneralExceptions,
	"vehicle_security":            policy.SpecVehicleSecurity,
	"administrative":              policy.SpecAdministrative,
}

// Resolve returns the specialist identifier for an incident category.
func Resolve(category string) (string, error) {
	specialist, ok := categoryToSpecialist[category]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return specialist, nil
}

// ResolveAll maps a category list to specialists. Unknown categories yield
// errors but never block resolution of the known ones; callers log the
// errors and continue.
func ResolveAll(categories []string) ([]string, []error) {
	var specialists []string
	var errs []error
	seen := make(map[string]bool)
	for _, category := range categories {
		specialist, err := Resolve(category)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !seen[specialist] {
			seen[specialist] = true
			specialists = append(specialists, specialist)
		}
	}
	return specialists, errs
}

// Categories returns every routable incident category in sorted order. The
// triage prompt embeds this list so the model can only pick known values.
func Categories() []string {
	out := make([]string, 0, len(categoryToSpecialist))
	for category := range categoryToSpecialist {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
