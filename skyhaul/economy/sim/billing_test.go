package sim

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
)

func TestSession_RunBilling_Charges(t *testing.T) {
	w := newWorld()
	save := w.addSave(100000, 30)
	w.addModel("DC3FREE", models.CategoryStarter, 0, 1800, 180, "DEFAULT", 1.0)
	w.addModel("C208", models.CategorySmall, 250000, 1400, 185, "ECO_C", 1.05)
	w.addAircraft(save.ID, "DC3FREE", "EFHK")
	w.addAircraft(save.ID, "C208", "EFHK")
	w.addAircraft(save.ID, "C208", "EFHK")

	charged, bankrupt, err := w.session.RunBilling(context.Background(), save.ID)
	if err != nil {
		t.Fatalf("RunBilling() error = %v", err)
	}
	if bankrupt {
		t.Fatal("RunBilling() went bankrupt, want charged")
	}

	// 25000 hq + 2 x 5000 + 2500 for the discounted starter
	if !charged.Equal(decimal.NewFromInt(37500)) {
		t.Errorf("RunBilling() charged = %s, want 37500", charged)
	}
	after, _ := w.saves.GetByID(context.Background(), save.ID)
	if !after.Cash.Equal(decimal.NewFromInt(62500)) {
		t.Errorf("cash = %s, want 62500", after.Cash)
	}
}

func TestSession_RunBilling_BankruptsWithoutCharging(t *testing.T) {
	w := newWorld()
	save := w.addSave(10000, 30)

	charged, bankrupt, err := w.session.RunBilling(context.Background(), save.ID)
	if err != nil {
		t.Fatalf("RunBilling() error = %v", err)
	}
	if !bankrupt {
		t.Fatal("RunBilling() bankrupt = false, want true")
	}
	if !charged.IsZero() {
		t.Errorf("RunBilling() charged = %s, want 0", charged)
	}

	after, _ := w.saves.GetByID(context.Background(), save.ID)
	if after.Status != models.SaveStatusBankrupt {
		t.Errorf("status = %s, want %s", after.Status, models.SaveStatusBankrupt)
	}
	// the unpayable bill is never partially collected
	if !after.Cash.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("cash = %s, want untouched 10000", after.Cash)
	}
}

func TestSession_RunBilling_TerminalSaveNoOp(t *testing.T) {
	w := newWorld()
	save := w.addSave(100000, 30)
	w.saves.byID[save.ID].Status = models.SaveStatusVictory

	charged, bankrupt, err := w.session.RunBilling(context.Background(), save.ID)
	if err != nil {
		t.Fatalf("RunBilling() error = %v", err)
	}
	if bankrupt || !charged.IsZero() {
		t.Errorf("RunBilling() = (%s, %v), want no-op", charged, bankrupt)
	}
	after, _ := w.saves.GetByID(context.Background(), save.ID)
	if !after.Cash.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("cash = %s, want untouched 100000", after.Cash)
	}
}
