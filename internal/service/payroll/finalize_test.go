package payroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellastudio/studio-backend-go/internal/domain/finance"
	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
)

func TestFinalizeSlip(t *testing.T) {
	env := newTestEnv()
	env.addStaff("st-1", "Nguyễn Văn A", 0)
	period := env.openPeriod(3, 2025)
	name := "Nguyễn Văn A"
	slip, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: period.ID})
	env.payroll.slips[0].StaffName = &name

	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: slip.ID, Type: payroll.ItemTypeHard, Title: "Lương cứng", Amount: 10_000_000, Source: payroll.SourceNoiQuy,
	})
	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: slip.ID, Type: payroll.ItemTypeAdvance, Title: "Tạm ứng 15/03", Amount: -2_000_000, Source: payroll.SourceManual,
	})

	resp, err := env.svc.FinalizeSlip(context.Background(), slip.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8_000_000), resp.Amount)
	assert.NotEmpty(t, resp.TransactionID)

	// Exactly one ledger transaction, categorized as a salary payment.
	require.Len(t, env.ledger.transactions, 1)
	tx := env.ledger.transactions[0]
	assert.Equal(t, finance.TransactionTypeExpense, tx.Type)
	assert.Equal(t, "Lương nhân viên", tx.MainCategory)
	assert.Equal(t, "Thanh toán lương", tx.Category)
	assert.Equal(t, int64(8_000_000), tx.Amount)
	assert.Equal(t, "Thanh toán lương T3/2025 - Nguyễn Văn A", tx.Description)
	require.NotNil(t, tx.StaffID)
	assert.Equal(t, "st-1", *tx.StaffID)
	require.NotNil(t, tx.Vendor)
	assert.Equal(t, "Chuyển khoản", *tx.Vendor)

	// The slip settles to zero through a negative payment item.
	items := env.slipItems(slip.ID)
	require.Len(t, items, 3)
	payment := findByType(items, payroll.ItemTypeAdvance)
	require.NotNil(t, payment)

	updated := env.slip("st-1", period.ID)
	assert.Equal(t, int64(10_000_000), updated.TotalEarnings)
	assert.Equal(t, int64(10_000_000), updated.TotalDeductions)
	assert.Equal(t, int64(0), updated.NetPay)
}

func TestFinalizeSlipPaymentItemReferencesTransaction(t *testing.T) {
	env := newTestEnv()
	env.addStaff("st-1", "Nguyễn Văn A", 0)
	period := env.openPeriod(3, 2025)
	slip, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: period.ID})
	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: slip.ID, Type: payroll.ItemTypeHard, Title: "Lương cứng", Amount: 5_000_000, Source: payroll.SourceNoiQuy,
	})

	resp, err := env.svc.FinalizeSlip(context.Background(), slip.ID)
	require.NoError(t, err)

	var payment *payroll.SalaryItem
	for _, item := range env.slipItems(slip.ID) {
		if item.Source == payroll.SourceTransaction {
			payment = &item
			break
		}
	}
	require.NotNil(t, payment)
	assert.Equal(t, "Đã thanh toán (Auto)", payment.Title)
	assert.Equal(t, int64(-5_000_000), payment.Amount)
	require.NotNil(t, payment.RefID)
	assert.Equal(t, resp.TransactionID, *payment.RefID)
}

func TestFinalizeSlipNothingToPay(t *testing.T) {
	env := newTestEnv()
	env.addStaff("st-1", "Nguyễn Văn A", 0)
	period := env.openPeriod(3, 2025)
	slip, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: period.ID})

	// Empty slip: net is zero.
	_, err := env.svc.FinalizeSlip(context.Background(), slip.ID)
	assert.ErrorIs(t, err, payroll.ErrNothingToPay)
	assert.Empty(t, env.ledger.transactions)

	// Already settled: finalizing again pays nothing.
	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: slip.ID, Type: payroll.ItemTypeHard, Title: "Lương cứng", Amount: 5_000_000, Source: payroll.SourceNoiQuy,
	})
	_, err = env.svc.FinalizeSlip(context.Background(), slip.ID)
	require.NoError(t, err)
	_, err = env.svc.FinalizeSlip(context.Background(), slip.ID)
	assert.ErrorIs(t, err, payroll.ErrNothingToPay)
	assert.Len(t, env.ledger.transactions, 1)
}

func TestFinalizeSlipNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.FinalizeSlip(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrSlipNotFound)
}
