package domain

import "time"

// Plan is a purchasable tier. The catalog in catalog.go is the source of
// truth; the plans table is seeded from it so reporting queries can join on
// plan_code.
type Plan struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	Code               string    `json:"code" gorm:"type:text;not null;uniqueIndex:ux_plans_code"`
	Name               string    `json:"name" gorm:"type:text;not null"`
	Rank               int       `json:"rank" gorm:"not null"`
	MonthlyPrice       int64     `json:"monthly_price" gorm:"not null"`
	AnnualPrice        int64     `json:"annual_price" gorm:"not null"`
	MaxPets            int       `json:"max_pets" gorm:"not null"`
	MaxUsers           int       `json:"max_users" gorm:"not null"`
	MaxWhatsAppMonthly int       `json:"max_whatsapp_monthly" gorm:"column:max_whatsapp_monthly;not null"`
	MaxCashRegisters   int       `json:"max_cash_registers" gorm:"not null"`
	Automations        bool      `json:"automations" gorm:"not null;default:false"`
	AdvancedReports    bool      `json:"advanced_reports" gorm:"not null;default:false"`
	MultiDoctor        bool      `json:"multi_doctor" gorm:"not null;default:false"`
	SMSReminders       bool      `json:"sms_reminders" gorm:"column:sms_reminders;not null;default:false"`
	AdvancedInventory  bool      `json:"advanced_inventory" gorm:"not null;default:false"`
	Active             bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt          time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Plan) TableName() string { return "plans" }

// FeatureKey is the closed set of gateable feature flags.
type FeatureKey string

const (
	FeatureAutomations       FeatureKey = "automations"
	FeatureAdvancedReports   FeatureKey = "advanced_reports"
	FeatureMultiDoctor       FeatureKey = "multi_doctor"
	FeatureSMSReminders      FeatureKey = "sms_reminders"
	FeatureAdvancedInventory FeatureKey = "advanced_inventory"
)

// HasFeature reports whether the plan enables the given flag. Unknown keys
// are false.
func (p Plan) HasFeature(key FeatureKey) bool {
	switch key {
	case FeatureAutomations:
		return p.Automations
	case FeatureAdvancedReports:
		return p.AdvancedReports
	case FeatureMultiDoctor:
		return p.MultiDoctor
	case FeatureSMSReminders:
		return p.SMSReminders
	case FeatureAdvancedInventory:
		return p.AdvancedInventory
	default:
		return false
	}
}

// LimitKey is the closed set of quantitative limits.
type LimitKey string

const (
	LimitPets          LimitKey = "pets"
	LimitUsers         LimitKey = "users"
	LimitWhatsApp      LimitKey = "whatsapp"
	LimitCashRegisters LimitKey = "cash_registers"
)

// LimitFor returns the plan's cap for a limit key. The bool is false for
// unknown keys.
func (p Plan) LimitFor(key LimitKey) (int, bool) {
	switch key {
	case LimitPets:
		return p.MaxPets, true
	case LimitUsers:
		return p.MaxUsers, true
	case LimitWhatsApp:
		return p.MaxWhatsAppMonthly, true
	case LimitCashRegisters:
		return p.MaxCashRegisters, true
	default:
		return 0, false
	}
}
