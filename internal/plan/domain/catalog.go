package domain

import (
	"math"
	"strings"
)

// Plan codes in ascending rank order. Prices are whole MXN.
const (
	CodeBasico      = "BASICO"
	CodeProfesional = "PROFESIONAL"
	CodeClinica     = "CLINICA"
	CodeEmpresa     = "EMPRESA"
)

var catalog = []Plan{
	{
		Code:               CodeBasico,
		Name:               "Básico",
		Rank:               1,
		MonthlyPrice:       599,
		AnnualPrice:        5990,
		MaxPets:            100,
		MaxUsers:           2,
		MaxWhatsAppMonthly: 100,
		MaxCashRegisters:   1,
		Active:             true,
	},
	{
		Code:               CodeProfesional,
		Name:               "Profesional",
		Rank:               2,
		MonthlyPrice:       1199,
		AnnualPrice:        11990,
		MaxPets:            500,
		MaxUsers:           5,
		MaxWhatsAppMonthly: 500,
		MaxCashRegisters:   2,
		Automations:        true,
		SMSReminders:       true,
		Active:             true,
	},
	{
		Code:               CodeClinica,
		Name:               "Clínica",
		Rank:               3,
		MonthlyPrice:       1999,
		AnnualPrice:        19990,
		MaxPets:            2000,
		MaxUsers:           15,
		MaxWhatsAppMonthly: 2000,
		MaxCashRegisters:   4,
		Automations:        true,
		AdvancedReports:    true,
		MultiDoctor:        true,
		SMSReminders:       true,
		AdvancedInventory:  true,
		Active:             true,
	},
	{
		Code:               CodeEmpresa,
		Name:               "Empresa",
		Rank:               4,
		MonthlyPrice:       3499,
		AnnualPrice:        34990,
		MaxPets:            10000,
		MaxUsers:           50,
		MaxWhatsAppMonthly: 10000,
		MaxCashRegisters:   10,
		Automations:        true,
		AdvancedReports:    true,
		MultiDoctor:        true,
		SMSReminders:       true,
		AdvancedInventory:  true,
		Active:             true,
	},
}

// Catalog returns a copy of the immutable plan catalog in rank order.
func Catalog() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a plan by code. Matching is case-insensitive.
func Lookup(code string) (Plan, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, p := range catalog {
		if p.Code == normalized {
			return p, true
		}
	}
	return Plan{}, false
}

// IsValidUpgrade reports whether target is a strictly higher tier than
// current. Unknown codes on either side reject.
func IsValidUpgrade(current, target string) bool {
	from, ok := Lookup(current)
	if !ok {
		return false
	}
	to, ok := Lookup(target)
	if !ok {
		return false
	}
	return to.Rank > from.Rank
}

// Savings describes what a tenant saves by paying annually.
type Savings struct {
	Savings    int64 `json:"savings"`
	Percentage int   `json:"percentage"`
}

// AnnualSavings computes monthly*12 - annual for a plan. Unknown plans
// yield zeros.
func AnnualSavings(code string) Savings {
	p, ok := Lookup(code)
	if !ok {
		return Savings{}
	}
	yearAtMonthly := p.MonthlyPrice * 12
	saved := yearAtMonthly - p.AnnualPrice
	if saved <= 0 || yearAtMonthly == 0 {
		return Savings{}
	}
	pct := int(math.Round(float64(saved) / float64(yearAtMonthly) * 100))
	return Savings{Savings: saved, Percentage: pct}
}

// LimitCheck is the result of comparing current usage against a plan cap.
// Percentage feeds warning UI only; CanAdd is the gating signal.
type LimitCheck struct {
	CanAdd     bool    `json:"can_add"`
	Remaining  int     `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Current    int     `json:"current"`
	Limit      int     `json:"limit"`
}

// CheckLimit evaluates usage against a cap. Remaining never goes negative.
func CheckLimit(current, limit int) LimitCheck {
	remaining := limit - current
	if remaining < 0 {
		remaining = 0
	}
	var pct float64
	if limit > 0 {
		pct = float64(current) / float64(limit) * 100
	}
	return LimitCheck{
		CanAdd:     current < limit,
		Remaining:  remaining,
		Percentage: pct,
		Current:    current,
		Limit:      limit,
	}
}
