package taxengine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Section identifies a deduction head.
type Section string

const (
	Section80C               Section = "80C"
	Section80CCD1B           Section = "80CCD(1B)"
	Section80D               Section = "80D"
	Section80DD              Section = "80DD"
	Section80DDB             Section = "80DDB"
	Section80E               Section = "80E"
	Section80EE              Section = "80EE"
	Section80EEA             Section = "80EEA"
	Section80G               Section = "80G"
	Section80TTA             Section = "80TTA"
	Section80TTB             Section = "80TTB"
	Section80U               Section = "80U"
	SectionHomeLoanInterest  Section = "home-loan-interest"
	SectionHousePropertyLoss Section = "house-property-loss"
)

// Sections is the canonical evaluation and reporting order.
var Sections = []Section{
	Section80C,
	Section80CCD1B,
	Section80D,
	Section80DD,
	Section80DDB,
	Section80E,
	Section80EE,
	Section80EEA,
	Section80G,
	Section80TTA,
	Section80TTB,
	Section80U,
	SectionHomeLoanInterest,
	SectionHousePropertyLoss,
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// Beneficiary says whose expense an 80D claim covers.
type Beneficiary string

const (
	BeneficiarySelf    Beneficiary = "self"
	BeneficiaryParents Beneficiary = "parents"
)

// PaymentMode matters for 80G, where large cash donations do not qualify.
type PaymentMode string

const (
	PaymentCash    PaymentMode = "cash"
	PaymentNonCash PaymentMode = "non-cash"
)

// DeductionFlags are the subject attributes a cap may depend on.
type DeductionFlags struct {
	// IsSeniorCitizen refers to the person the claim covers: the parents for
	// an 80D parents claim, the taxpayer otherwise.
	IsSeniorCitizen  bool
	Beneficiary      Beneficiary
	PropertyType     PropertyType
	PropertyID       string
	PaymentMode      PaymentMode
	SevereDisability bool
}

// DeductionClaim is a single claimed amount under a section.
type DeductionClaim struct {
	ID      string
	Section Section
	Amount  decimal.Decimal
	Flags   DeductionFlags
}

// DeductionSummary is the output of ValidateDeductions.
type DeductionSummary struct {
	AllowedTotal decimal.Decimal             `json:"allowed_total"`
	PerSection   map[Section]decimal.Decimal `json:"per_section"`
	Warnings     []Warning                   `json:"warnings"`
}

// ValidateDeductions clamps every section to its statutory limit. Claims over
// a limit are reduced and reported as warnings; malformed claims fail.
func ValidateDeductions(claims []DeductionClaim) (DeductionSummary, error) {
	if err := checkClaims(claims); err != nil {
		return DeductionSummary{}, err
	}

	groups := groupClaims(claims)
	summary := DeductionSummary{
		AllowedTotal: zero,
		PerSection:   make(map[Section]decimal.Decimal, len(groups)),
		Warnings:     []Warning{},
	}
	for _, section := range Sections {
		group, ok := groups[section]
		if !ok {
			continue
		}
		allowed, warnings := allowSection(section, group)
		summary.PerSection[section] = allowed
		summary.AllowedTotal = summary.AllowedTotal.Add(allowed)
		summary.Warnings = append(summary.Warnings, warnings...)
	}
	return summary, nil
}

func checkClaims(claims []DeductionClaim) error {
	var errs []error
	properties := make(map[string]bool)
	for i, c := range claims {
		if !c.Section.Valid() {
			errs = append(errs, recordErrorf(ErrUnknownSection, i, c.ID, "%q", c.Section))
			continue
		}
		if c.Amount.IsNegative() {
			errs = append(errs, recordErrorf(ErrInvalidDeductionAmount, i, c.ID, "%s is negative", c.Amount.String()))
			continue
		}
		if !isSelfOccupiedInterest(c) || properties[c.Flags.PropertyID] {
			continue
		}
		if len(properties) == MaxSelfOccupiedProperties {
			errs = append(errs, recordErrorf(ErrTooManySelfOccupiedProperties, i, c.ID,
				"property %q would be number %d, at most %d allowed", c.Flags.PropertyID, len(properties)+1, MaxSelfOccupiedProperties))
			continue
		}
		properties[c.Flags.PropertyID] = true
	}
	return errors.Join(errs...)
}

func isSelfOccupiedInterest(c DeductionClaim) bool {
	return c.Section == SectionHomeLoanInterest && c.Flags.PropertyType != PropertyLetOut
}

func isLetOutInterest(c DeductionClaim) bool {
	return c.Section == SectionHomeLoanInterest && c.Flags.PropertyType == PropertyLetOut
}

// groupClaims buckets claims by the section whose limit governs them.
// Savings interest follows the taxpayer's age rather than the declared
// section, and let-out loan interest counts toward the house-property loss.
func groupClaims(claims []DeductionClaim) map[Section][]DeductionClaim {
	groups := make(map[Section][]DeductionClaim)
	for _, c := range claims {
		section := c.Section
		switch {
		case section == Section80TTA || section == Section80TTB:
			section = Section80TTA
			if c.Flags.IsSeniorCitizen {
				section = Section80TTB
			}
		case isLetOutInterest(c):
			section = SectionHousePropertyLoss
		}
		groups[section] = append(groups[section], c)
	}
	return groups
}

func allowSection(section Section, group []DeductionClaim) (decimal.Decimal, []Warning) {
	switch section {
	case Section80D:
		return allow80D(group)
	case SectionHomeLoanInterest:
		return allowSelfOccupiedInterest(group)
	case Section80G:
		return allow80G(group)
	case SectionHousePropertyLoss:
		return allowHousePropertyLoss(group)
	}

	claimed := sumClaims(group)
	limit, ok := sectionLimit(section, group)
	if !ok {
		return claimed, nil
	}
	return capSection(string(section), claimed, limit)
}

// sectionLimit returns the cap of a simple section; ok is false when the
// section has none.
func sectionLimit(section Section, group []DeductionClaim) (decimal.Decimal, bool) {
	switch section {
	case Section80C:
		return Limit80C, true
	case Section80CCD1B:
		return Limit80CCD1B, true
	case Section80EE:
		return Limit80EE, true
	case Section80EEA:
		return Limit80EEA, true
	case Section80TTA:
		return Limit80TTA, true
	case Section80TTB:
		return Limit80TTB, true
	case Section80U:
		if anyFlag(group, isSevere) {
			return Limit80USevere, true
		}
		return Limit80UNormal, true
	case Section80DD:
		if anyFlag(group, isSevere) {
			return Limit80DDSevere, true
		}
		return Limit80DDNormal, true
	case Section80DDB:
		if anyFlag(group, func(f DeductionFlags) bool { return f.IsSeniorCitizen }) {
			return Limit80DDBSenior, true
		}
		return Limit80DDBNormal, true
	}
	return zero, false
}

// capSection is the clamp primitive shared by every limited section.
func capSection(section string, claimed, limit decimal.Decimal) (decimal.Decimal, []Warning) {
	allowed, clamped := clampTo(claimed, limit)
	if !clamped {
		return allowed, nil
	}
	return allowed, []Warning{limitExceeded(section, claimed, allowed)}
}

// allow80D applies the self and parents sub-limits separately. The section
// limit is their sum, so one warning covers both.
func allow80D(group []DeductionClaim) (decimal.Decimal, []Warning) {
	var self, parents []DeductionClaim
	for _, c := range group {
		if c.Flags.Beneficiary == BeneficiaryParents {
			parents = append(parents, c)
		} else {
			self = append(self, c)
		}
	}

	isSenior := func(f DeductionFlags) bool { return f.IsSeniorCitizen }
	selfLimit := Limit80DSelf
	if anyFlag(self, isSenior) {
		selfLimit = Limit80DSelfSenior
	}
	parentsLimit := Limit80DParents
	if anyFlag(parents, isSenior) {
		parentsLimit = Limit80DParentsSenior
	}

	selfAllowed, _ := clampTo(sumClaims(self), selfLimit)
	parentsAllowed, _ := clampTo(sumClaims(parents), parentsLimit)
	claimed := sumClaims(group)
	allowed := selfAllowed.Add(parentsAllowed)
	if allowed.LessThan(claimed) {
		return allowed, []Warning{limitExceeded(string(Section80D), claimed, allowed)}
	}
	return allowed, nil
}

// allowHousePropertyLoss treats the group as one net negative property income
// and applies the set-off floor to it.
func allowHousePropertyLoss(group []DeductionClaim) (decimal.Decimal, []Warning) {
	claimed := sumClaims(group)
	allowed, clamped := ClampHousePropertyLoss(claimed.Neg())
	if !clamped {
		return allowed, nil
	}
	return allowed, []Warning{limitExceeded(string(SectionHousePropertyLoss), claimed, allowed)}
}

// allowSelfOccupiedInterest caps loan interest per self-occupied property.
func allowSelfOccupiedInterest(group []DeductionClaim) (decimal.Decimal, []Warning) {
	perProperty := make(map[string]decimal.Decimal)
	var order []string
	for _, c := range group {
		id := c.Flags.PropertyID
		if _, seen := perProperty[id]; !seen {
			order = append(order, id)
			perProperty[id] = zero
		}
		perProperty[id] = perProperty[id].Add(c.Amount)
	}

	allowed := zero
	for _, id := range order {
		capped, _ := clampTo(perProperty[id], LimitSelfOccupiedInterest)
		allowed = allowed.Add(capped)
	}
	claimed := sumClaims(group)
	if allowed.LessThan(claimed) {
		return allowed, []Warning{limitExceeded(string(SectionHomeLoanInterest), claimed, allowed)}
	}
	return allowed, nil
}

// allow80G disallows cash donations above the cash limit outright; other
// donations are not capped.
func allow80G(group []DeductionClaim) (decimal.Decimal, []Warning) {
	allowed := zero
	var warnings []Warning
	for _, c := range group {
		if c.Flags.PaymentMode == PaymentCash && c.Amount.GreaterThan(Limit80GCash) {
			claimed, capped := c.Amount, zero
			warnings = append(warnings, Warning{
				Code:     WarnCashDonationDisallowed,
				Section:  string(Section80G),
				RecordID: c.ID,
				Claimed:  &claimed,
				Capped:   &capped,
				Message:  fmt.Sprintf("cash donation of %s exceeds %s and does not qualify", c.Amount.StringFixed(2), Limit80GCash.StringFixed(2)),
			})
			continue
		}
		allowed = allowed.Add(c.Amount)
	}
	return allowed, warnings
}

func sumClaims(claims []DeductionClaim) decimal.Decimal {
	total := zero
	for _, c := range claims {
		total = total.Add(c.Amount)
	}
	return total
}

func isSevere(f DeductionFlags) bool { return f.SevereDisability }

func anyFlag(claims []DeductionClaim, pred func(DeductionFlags) bool) bool {
	for _, c := range claims {
		if pred(c.Flags) {
			return true
		}
	}
	return false
}
