package payroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
)

func TestCopyPreviousAllowances(t *testing.T) {
	env := newTestEnv()
	env.addStaff("st-1", "Nguyễn Văn A", 0)
	env.addStaff("st-2", "Trần Thị B", 0)

	prev := env.openPeriod(12, 2024)
	target := env.openPeriod(1, 2025)

	// Both staff have slips in December; only st-1 has one in January.
	prevSlip1, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: prev.ID})
	prevSlip2, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-2", SalaryPeriodID: prev.ID})
	targetSlip, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: target.ID})

	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: prevSlip1.ID, Type: payroll.ItemTypeAllowance, Title: "Phụ cấp xăng xe", Amount: 500_000, Source: payroll.SourceAllowance,
	})
	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: prevSlip1.ID, Type: payroll.ItemTypeAllowance, Title: "Phụ cấp ăn trưa", Amount: 700_000, Source: payroll.SourceAllowance,
	})
	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: prevSlip2.ID, Type: payroll.ItemTypeAllowance, Title: "Phụ cấp điện thoại", Amount: 200_000, Source: payroll.SourceAllowance,
	})
	// Non-allowance items never travel.
	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: prevSlip1.ID, Type: payroll.ItemTypeReward, Title: "Thưởng Tết", Amount: 3_000_000, Source: payroll.SourceManual,
	})

	resp, err := env.svc.CopyPreviousAllowances(context.Background(), target.ID, payroll.CopyAllowancesRequest{Month: 1, Year: 2025})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)

	items := env.slipItems(targetSlip.ID)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, payroll.ItemTypeAllowance, item.Type)
		assert.Equal(t, payroll.SourceAllowanceCopy, item.Source)
		assert.Nil(t, item.RefID)
	}

	updated := env.slip("st-1", target.ID)
	assert.Equal(t, int64(1_200_000), updated.NetPay)
}

func TestCopyPreviousAllowancesJanuaryLooksAtDecember(t *testing.T) {
	env := newTestEnv()
	env.addStaff("st-1", "Nguyễn Văn A", 0)

	target := env.openPeriod(1, 2025)
	env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: target.ID})

	// No December 2024 period exists.
	_, err := env.svc.CopyPreviousAllowances(context.Background(), target.ID, payroll.CopyAllowancesRequest{Month: 1, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrPreviousPeriodNotFound)
}

func TestCopyPreviousAllowancesRunsTwiceDuplicates(t *testing.T) {
	env := newTestEnv()
	env.addStaff("st-1", "Nguyễn Văn A", 0)

	prev := env.openPeriod(2, 2025)
	target := env.openPeriod(3, 2025)
	prevSlip, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: prev.ID})
	targetSlip, _ := env.payroll.CreateSlip(context.Background(), payroll.SalarySlip{StaffID: "st-1", SalaryPeriodID: target.ID})

	env.payroll.CreateItem(context.Background(), payroll.SalaryItem{
		SalarySlipID: prevSlip.ID, Type: payroll.ItemTypeAllowance, Title: "Phụ cấp xăng xe", Amount: 500_000, Source: payroll.SourceAllowance,
	})

	req := payroll.CopyAllowancesRequest{Month: 3, Year: 2025}
	_, err := env.svc.CopyPreviousAllowances(context.Background(), target.ID, req)
	require.NoError(t, err)
	_, err = env.svc.CopyPreviousAllowances(context.Background(), target.ID, req)
	require.NoError(t, err)

	assert.Len(t, env.slipItems(targetSlip.ID), 2)
	assert.Equal(t, int64(1_000_000), env.slip("st-1", target.ID).NetPay)
}
