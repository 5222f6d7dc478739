package risk

import "fmt"

// riskEpsilon absorbs float noise in percent comparisons.
const riskEpsilon = 1e-9

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	Allowed    bool
	Violations []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// CheckLot reviews a computed lot against the request and the policy. It
// flags a minimum-lot clamp that pushed risk past what was asked for, and
// any actual risk over p.MaxRiskPercent.
func CheckLot(p Policy, res LotResult, in LotInput) Decision {
	d := Decision{Allowed: true}

	if p.MaxRiskPercent <= 0 {
		p.MaxRiskPercent = DefaultMaxRiskPercent
	}

	if res.Clamped && res.ActualRiskPercent > in.RiskPercent+riskEpsilon {
		d.add("MIN_LOT_EXCEEDS_RISK",
			fmt.Sprintf("minimum lot %g risks %.2f%%, more than the requested %.2f%%",
				res.Lots, res.ActualRiskPercent, in.RiskPercent))
	}
	if res.ActualRiskPercent > p.MaxRiskPercent+riskEpsilon {
		d.add("RISK_OVER_LIMIT",
			fmt.Sprintf("risk %.2f%% exceeds max %.2f%%", res.ActualRiskPercent, p.MaxRiskPercent))
	}
	return d
}
