package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, code string) (*Response, error)
}

type Response struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Rank               int     `json:"rank"`
	MonthlyPrice       int64   `json:"monthly_price"`
	AnnualPrice        int64   `json:"annual_price"`
	AnnualSavings      Savings `json:"annual_savings"`
	MaxPets            int     `json:"max_pets"`
	MaxUsers           int     `json:"max_users"`
	MaxWhatsAppMonthly int     `json:"max_whatsapp_monthly"`
	MaxCashRegisters   int     `json:"max_cash_registers"`
	Automations        bool    `json:"automations"`
	AdvancedReports    bool    `json:"advanced_reports"`
	MultiDoctor        bool    `json:"multi_doctor"`
	SMSReminders       bool    `json:"sms_reminders"`
	AdvancedInventory  bool    `json:"advanced_inventory"`
}

var ErrUnknownPlan = errors.New("unknown_plan")
