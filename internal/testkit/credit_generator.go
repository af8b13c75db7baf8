// Package testkit provides deterministic synthetic fixtures for tests,
// demos and benchmarks.
package testkit

import (
	"math/rand"

	"gowoe/domain/core"
	"gowoe/domain/table"
)

// CreditGeneratorConfig configures the synthetic credit applicant
// generator
type CreditGeneratorConfig struct {
	Rows int   `json:"rows"`
	Seed int64 `json:"seed"`
}

// DefaultCreditConfig returns sensible defaults for credit data
// generation
func DefaultCreditConfig() CreditGeneratorConfig {
	return CreditGeneratorConfig{
		Rows: 1000,
		Seed: 42,
	}
}

// CreditDataGenerator generates a credit-applicant observation table
// with predictors of deliberately different separation power, so WOE
// and IV results span the whole strength scale.
type CreditDataGenerator struct {
	config CreditGeneratorConfig
	rng    *rand.Rand
}

// NewCreditDataGenerator creates a new generator. The same seed always
// produces the same table.
func NewCreditDataGenerator(config CreditGeneratorConfig) *CreditDataGenerator {
	return &CreditDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	checkingLevels = []string{"no_account", "negative", "0_to_200", "over_200"}
	purposeLevels  = []string{"car_new", "car_used", "furniture", "education", "business"}
	housingLevels  = []string{"own", "rent", "free"}
)

// Generate builds the observation table: three categorical predictors
// (checking_status is strongly predictive, purpose mildly, housing
// barely), three numeric predictors (duration_months and credit_amount
// predictive, age weak) and a good/bad outcome.
func (g *CreditDataGenerator) Generate() *table.Table {
	n := g.config.Rows

	checking := make([]string, n)
	purpose := make([]string, n)
	housing := make([]string, n)
	duration := make([]float64, n)
	amount := make([]float64, n)
	age := make([]float64, n)
	outcome := make([]string, n)

	for i := 0; i < n; i++ {
		checking[i] = checkingLevels[g.rng.Intn(len(checkingLevels))]
		purpose[i] = purposeLevels[g.rng.Intn(len(purposeLevels))]
		housing[i] = housingLevels[g.rng.Intn(len(housingLevels))]
		duration[i] = float64(6 + g.rng.Intn(66)) // 6..71 months
		amount[i] = 250 + g.rng.Float64()*18000
		age[i] = float64(19 + g.rng.Intn(56))

		outcome[i] = g.drawOutcome(checking[i], purpose[i], duration[i], amount[i])
	}

	tbl := table.New()
	must(tbl.AddCategorical(core.VariableKey("checking_status"), checking, checkingLevels...))
	must(tbl.AddCategorical(core.VariableKey("purpose"), purpose, purposeLevels...))
	must(tbl.AddCategorical(core.VariableKey("housing"), housing, housingLevels...))
	must(tbl.AddNumeric(core.VariableKey("duration_months"), duration))
	must(tbl.AddNumeric(core.VariableKey("credit_amount"), amount))
	must(tbl.AddNumeric(core.VariableKey("age"), age))
	must(tbl.AddCategorical(core.VariableKey("outcome"), outcome, "good", "bad"))
	return tbl
}

// drawOutcome draws good/bad with a bad-rate driven by the predictors
func (g *CreditDataGenerator) drawOutcome(checking, purpose string, duration, amount float64) string {
	badRate := 0.12

	switch checking {
	case "negative":
		badRate += 0.30
	case "0_to_200":
		badRate += 0.10
	case "over_200":
		badRate -= 0.05
	}
	switch purpose {
	case "business":
		badRate += 0.08
	case "car_used":
		badRate -= 0.04
	}
	if duration > 36 {
		badRate += 0.15
	}
	if amount > 9000 {
		badRate += 0.10
	}

	if g.rng.Float64() < badRate {
		return "bad"
	}
	return "good"
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
