package transform

import (
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// DelaySSClaim changes the Social Security claiming age for an earner.
// Delaying increases the monthly benefit by 8% per year from 67 to 70.
type DelaySSClaim struct {
	Participant Participant
	NewAge      int
}

func (dss *DelaySSClaim) Name() string {
	return "delay_ss"
}

func (dss *DelaySSClaim) Description() string {
	return fmt.Sprintf("Claim %s's Social Security at age %d", dss.Participant.label(), dss.NewAge)
}

func (dss *DelaySSClaim) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(dss.Name(), base); err != nil {
		return err
	}
	if !dss.Participant.valid() {
		return validationFailed(dss.Name(), fmt.Sprintf("unknown participant %q", dss.Participant))
	}
	if dss.NewAge < calculation.EarliestClaimingAge || dss.NewAge > calculation.LatestClaimingAge {
		return validationFailed(dss.Name(), fmt.Sprintf("claiming age must be between %d and %d, got %d",
			calculation.EarliestClaimingAge, calculation.LatestClaimingAge, dss.NewAge))
	}
	if dss.Participant == Spouse && !base.HasSpouse() {
		return validationFailed(dss.Name(), "household has no spouse")
	}
	return nil
}

func (dss *DelaySSClaim) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	if dss.Participant == Spouse {
		modified.SpouseClaimingAge = dss.NewAge
	} else {
		modified.SocialSecurityClaimingAge = dss.NewAge
	}
	return modified, nil
}
