package underwriting

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/fin-tools/credit-atlas/pkg/services/risk"
)

// Settings controls the analysis run. ReferenceYear anchors every
// "latest year" decision so re-running the same documents later yields
// the same report.
type Settings struct {
	ReferenceYear int           `mapstructure:"reference_year"`
	Risk          risk.Settings `mapstructure:"risk"`
}

func DefaultSettings() Settings {
	return Settings{
		ReferenceYear: time.Now().Year(),
		Risk:          risk.DefaultSettings(),
	}
}

// LoadSettings reads a settings file, filling anything the file omits
// from the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := DefaultSettings()
	v.SetDefault("reference_year", defaults.ReferenceYear)
	v.SetDefault("risk.dscr_floor", defaults.Risk.DscrFloor)
	v.SetDefault("risk.dscr_caution", defaults.Risk.DscrCaution)
	v.SetDefault("risk.back_end_dti_high", defaults.Risk.BackEndDtiHigh)
	v.SetDefault("risk.back_end_dti_caution", defaults.Risk.BackEndDtiCaution)
	v.SetDefault("risk.nsf_high_count", defaults.Risk.NsfHighCount)
	v.SetDefault("risk.income_decline_high", defaults.Risk.IncomeDeclineHigh)
	v.SetDefault("risk.income_decline_low", defaults.Risk.IncomeDeclineLow)
	v.SetDefault("risk.reserves_high_months", defaults.Risk.ReservesHighMonths)
	v.SetDefault("risk.reserves_med_months", defaults.Risk.ReservesMedMonths)
	v.SetDefault("risk.balance_tolerance_pct", defaults.Risk.BalanceTolerancePct)
	v.SetDefault("risk.expense_ratio_high", defaults.Risk.ExpenseRatioHigh)
	v.SetDefault("risk.deposit_income_high", defaults.Risk.DepositIncomeHigh)
	v.SetDefault("risk.deposit_income_low", defaults.Risk.DepositIncomeLow)
	v.SetDefault("risk.deposit_variation_pct", defaults.Risk.DepositVariationPct)
	v.SetDefault("risk.overdraft_high_count", defaults.Risk.OverdraftHighCount)
	v.SetDefault("risk.current_ratio_floor", defaults.Risk.CurrentRatioFloor)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}
