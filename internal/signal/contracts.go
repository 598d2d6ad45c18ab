package signal

import (
	"strings"

	"SignalPull/internal/domain/models"
)

// sectorRule maps keywords to a sector label. Rules are evaluated in
// order; the first match wins.
type sectorRule struct {
	sector   string
	keywords []string
}

var sectorRules = []sectorRule{
	{"Defense", []string{"defense", "army", "navy", "air force", "military"}},
	{"Healthcare", []string{"health", "medical", "pharma", "vaccine"}},
	{"Energy", []string{"energy", "solar", "renewable"}},
	{"Security", []string{"homeland", "security", "cybersecurity"}},
	{"Infrastructure", []string{"transportation", "infrastructure"}},
}

// AggregateContracts reduces one symbol's contract awards into a
// ContractSignal. Empty input yields (zero, false): no signal, not a
// zero-valued one. The output sample keeps the first 5 in input order.
func AggregateContracts(symbol string, contracts []models.GovernmentContract) (models.ContractSignal, bool) {
	if len(contracts) == 0 {
		return models.ContractSignal{}, false
	}

	var totalValue float64
	agencyCount := make(map[string]int)
	// Go maps don't keep insertion order; agency ties break on first
	// encounter, so track it explicitly.
	agencyOrder := make([]string, 0, len(contracts))
	latestDate := ""

	for _, c := range contracts {
		totalValue += c.TotalValue

		agency := c.Agency
		if agency == "" {
			agency = "Unknown"
		}
		if _, seen := agencyCount[agency]; !seen {
			agencyOrder = append(agencyOrder, agency)
		}
		agencyCount[agency]++

		if c.ActionDate > latestDate {
			latestDate = c.ActionDate
		}
	}

	primaryAgency := "Government"
	best := 0
	for _, agency := range agencyOrder {
		if agencyCount[agency] > best {
			best = agencyCount[agency]
			primaryAgency = agency
		}
	}

	companyName := contracts[0].Recipient
	if companyName == "" {
		companyName = symbol
	}

	sample := contracts
	if len(sample) > contractSampleSize {
		sample = sample[:contractSampleSize]
	}

	return models.ContractSignal{
		Symbol:             symbol,
		CompanyName:        companyName,
		TotalContractValue: totalValue,
		ContractCount:      len(contracts),
		Contracts:          sample,
		PrimaryAgency:      primaryAgency,
		LatestDate:         latestDate,
		SignalStrength:     contractStrength(totalValue, len(contracts)),
		Sector:             classifySector(primaryAgency, contracts[0].AwardDescription),
	}, true
}

// classifySector matches sector keywords case-insensitively over the
// primary agency and the first contract's award description.
func classifySector(agency, description string) string {
	haystack := strings.ToLower(agency) + " " + strings.ToLower(description)
	for _, rule := range sectorRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.sector
			}
		}
	}
	return "Government"
}

func contractStrength(totalValue float64, count int) string {
	if totalValue >= contractHighValue || count >= contractHighCount {
		return models.StrengthHigh
	}
	if totalValue >= contractMediumValue || count >= contractMediumCount {
		return models.StrengthMedium
	}
	return models.StrengthLow
}
