// Package taxengine computes Indian personal income tax under the old and new
// regimes. Every function in this package is pure: it reads its arguments and
// the read-only tables below, and returns a fresh result.
package taxengine

import "github.com/shopspring/decimal"

// Statutory amounts. Every component reads its limits from here.
var (
	Limit80C                   = decimal.NewFromInt(150000)
	Limit80CCD1B               = decimal.NewFromInt(50000)
	Limit80DSelf               = decimal.NewFromInt(25000)
	Limit80DSelfSenior         = decimal.NewFromInt(50000)
	Limit80DParents            = decimal.NewFromInt(25000)
	Limit80DParentsSenior      = decimal.NewFromInt(50000)
	Limit80EE                  = decimal.NewFromInt(50000)
	Limit80EEA                 = decimal.NewFromInt(150000)
	Limit80GCash               = decimal.NewFromInt(2000)
	Limit80TTA                 = decimal.NewFromInt(10000)
	Limit80TTB                 = decimal.NewFromInt(50000)
	Limit80UNormal             = decimal.NewFromInt(75000)
	Limit80USevere             = decimal.NewFromInt(125000)
	Limit80DDNormal            = decimal.NewFromInt(75000)
	Limit80DDSevere            = decimal.NewFromInt(125000)
	Limit80DDBNormal           = decimal.NewFromInt(40000)
	Limit80DDBSenior           = decimal.NewFromInt(100000)
	LimitHousePropertyLoss     = decimal.NewFromInt(200000)
	LimitSelfOccupiedInterest  = decimal.NewFromInt(200000)
	LTCGEquityExemption        = decimal.NewFromInt(100000)
	StandardDeduction          = decimal.NewFromInt(50000)
	HousePropertyStdDeductRate = decimal.NewFromFloat(0.30)
)

// MaxSelfOccupiedProperties is the number of self-occupied houses a filing may
// claim home-loan interest on.
const MaxSelfOccupiedProperties = 2

// Flat rates and cess.
var (
	RateSTCGEquity = decimal.NewFromFloat(0.15)
	RateLTCGEquity = decimal.NewFromFloat(0.10)
	RateLTCGOther  = decimal.NewFromFloat(0.20)
	CessRate       = decimal.NewFromFloat(0.04)
)

// Holding-period thresholds in months at or above which a gain is long term.
const (
	HoldingThresholdEquity   = 12
	HoldingThresholdProperty = 24
	HoldingThresholdDebt     = 36
)

// Presumptive taxation rates (sections 44AD / 44ADA).
var (
	PresumptiveRateBusiness        = decimal.NewFromFloat(0.08)
	PresumptiveRateBusinessDigital = decimal.NewFromFloat(0.06)
	PresumptiveRateProfessional    = decimal.NewFromFloat(0.50)
)

var zero = decimal.Zero
