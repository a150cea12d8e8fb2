package leilao

import (
	"errors"
	"testing"

	"github.com/etnz/leilao/date"
	"github.com/google/go-cmp/cmp"
)

func TestEntries_Properties(t *testing.T) {
	es := Seed()
	want := []string{"guapo-casa1", "jd-helvecia-casa1", "nova-olinda-casa1", "trindade2"}
	if diff := cmp.Diff(want, es.Properties()); diff != "" {
		t.Errorf("Properties() mismatch (-want +got):\n%s", diff)
	}
	byStatus := es.PropertiesByStatus()
	if diff := cmp.Diff([]string{"trindade2"}, byStatus[Finished]); diff != "" {
		t.Errorf("PropertiesByStatus()[Finished] mismatch (-want +got):\n%s", diff)
	}
	if got := len(byStatus[InProgress]); got != 3 {
		t.Errorf("len(PropertiesByStatus()[InProgress]) = %d, want 3", got)
	}
}

func TestEntries_Upsert(t *testing.T) {
	es := set(nil, Projected, Sale, 1000)
	first, _ := es.Find(casa, Projected, Known(Sale))
	if first.ID == "" {
		t.Fatal("Upsert() must assign an ID")
	}
	es2 := set(es, Projected, Sale, 2000)
	if len(es2) != 1 {
		t.Fatalf("len(Upsert()) = %d, want 1", len(es2))
	}
	second, _ := es2.Find(casa, Projected, Known(Sale))
	if second.ID != first.ID {
		t.Errorf("Upsert() changed the ID from %q to %q", first.ID, second.ID)
	}
	// the receiver is left untouched.
	if got, _ := es.Find(casa, Projected, Known(Sale)); !got.CashFlow.Equal(BRL(1000)) {
		t.Errorf("Upsert() modified its receiver: %v", got.CashFlow)
	}
	if got := len(es2.Delete(second.ID)); got != 0 {
		t.Errorf("len(Delete()) = %d, want 0", got)
	}
}

func TestEntries_Anchor(t *testing.T) {
	es := cashProperty()

	exec := es.Anchor(casa, Executed)
	if exec.SaleDate != (date.Date{}) {
		t.Errorf("empty Execution anchor SaleDate = %v, want unset", exec.SaleDate)
	}
	if exec.PurchaseDate != date.New(2025, 1, 15) || exec.State != "GO" {
		t.Errorf("empty Execution anchor = %+v, want the Projection metadata", exec)
	}

	// Execution always reads the Projection purchase date.
	info := exec
	info.PurchaseDate = date.New(2030, 1, 1)
	e := NewEntry(casa, Executed, Known(Sale), info)
	es = es.Upsert(e)
	if got := es.Anchor(casa, Executed).PurchaseDate; got != date.New(2025, 1, 15) {
		t.Errorf("Execution anchor PurchaseDate = %v, want 2025-01-15", got)
	}

	if got := es.Anchor("nowhere", Projected); got != DefaultInfo() {
		t.Errorf("unknown property anchor = %+v, want %+v", got, DefaultInfo())
	}
}

func TestEntries_AddProperty(t *testing.T) {
	on := date.New(2025, 5, 1)
	es, name := Entries(nil).AddProperty(on)
	if name != "Novo Imóvel" {
		t.Errorf("AddProperty() = %q, want %q", name, "Novo Imóvel")
	}
	es, name = es.AddProperty(on)
	if name != "Novo Imóvel 2" {
		t.Errorf("AddProperty() = %q, want %q", name, "Novo Imóvel 2")
	}
	e, ok := es.Find(name, Projected, Known(DownPayment))
	if !ok || !e.CashFlow.IsZero() || e.Info.PurchaseDate != on || e.Info.State != "SP" {
		t.Errorf("AddProperty() entry = %+v, want an empty down payment purchased on %v", e, on)
	}
}

func TestEntries_RenameProperty(t *testing.T) {
	es := Seed()
	testCases := []struct {
		name     string
		from, to string
		wantErr  error
	}{
		{"unknown", "nowhere", "somewhere", ErrUnknownProperty},
		{"taken", "guapo-casa1", "trindade2", ErrPropertyExists},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := es.RenameProperty(tc.from, tc.to); !errors.Is(err, tc.wantErr) {
				t.Errorf("RenameProperty() error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if _, err := es.RenameProperty("guapo-casa1", "  "); err == nil {
		t.Error("RenameProperty() to an empty name should fail")
	}

	renamed, err := es.RenameProperty("guapo-casa1", " guapo ")
	if err != nil {
		t.Fatalf("RenameProperty() unexpected error: %v", err)
	}
	if renamed.Has("guapo-casa1") || len(renamed.Property("guapo")) != len(es.Property("guapo-casa1")) {
		t.Errorf("RenameProperty() did not move every entry")
	}
}

func TestEntries_DuplicateProperty(t *testing.T) {
	es := Seed()
	es, name, err := es.DuplicateProperty("trindade2")
	if err != nil || name != "trindade2 (Cópia)" {
		t.Fatalf("DuplicateProperty() = %q, %v", name, err)
	}
	es, name, _ = es.DuplicateProperty("trindade2")
	if name != "trindade2 (Cópia 1)" {
		t.Errorf("DuplicateProperty() = %q, want %q", name, "trindade2 (Cópia 1)")
	}
	orig, copied := es.Property("trindade2"), es.Property(name)
	if len(copied) != len(orig) {
		t.Fatalf("copied %d entries, want %d", len(copied), len(orig))
	}
	for i := range orig {
		if copied[i].ID == orig[i].ID {
			t.Errorf("copied entry %d kept the ID %q", i, orig[i].ID)
		}
	}
	if _, _, err := es.DuplicateProperty("nowhere"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("DuplicateProperty() error = %v, want %v", err, ErrUnknownProperty)
	}
}

func TestEntries_DeleteProperty(t *testing.T) {
	es := Seed()
	es = SetValue(es, "trindade2", Executed, Known(Sale), BRL(165000), WriteOptions{})
	es = es.DeleteProperty("trindade2")
	if es.Has("trindade2") {
		t.Error("DeleteProperty() left entries behind")
	}
	if got := len(es.Properties()); got != 3 {
		t.Errorf("len(Properties()) = %d, want 3", got)
	}
}

func TestEntries_SetStatus(t *testing.T) {
	es := Seed().SetStatus("guapo-casa1", Finished)
	for _, e := range es.Property("guapo-casa1") {
		if e.Info.Status != Finished {
			t.Errorf("%s status = %v, want %v", e.Label, e.Info.Status, Finished)
		}
	}
}

func TestEntries_UpdateInfo(t *testing.T) {
	t.Run("share count", func(t *testing.T) {
		es := cashProperty().UpdateInfo(casa, Projected, func(p *PropertyInfo) { p.ShareCount = 4 })
		for _, e := range es {
			if want := e.CashFlow.DivInt(4); !e.Share.Equal(want) {
				t.Errorf("%s share = %v, want %v", e.Label, e.Share, want)
			}
		}
	})

	t.Run("purchase date", func(t *testing.T) {
		es := cashProperty().UpdateInfo(casa, Projected, func(p *PropertyInfo) { p.PurchaseDate = date.New(2025, 2, 1) })
		got := es.Anchor(casa, Projected)
		if got.SaleDate != date.New(2026, 2, 1) {
			t.Errorf("SaleDate = %v, want 2026-02-01", got.SaleDate)
		}
		for _, e := range es {
			if e.Info.PurchaseDate != date.New(2025, 2, 1) {
				t.Errorf("%s purchase date = %v, want 2025-02-01", e.Label, e.Info.PurchaseDate)
			}
		}
	})

	t.Run("only changed fields propagate", func(t *testing.T) {
		es := cashProperty()
		e, _ := es.Find(casa, Projected, Known(Renovation))
		e.Info.City = "Trindade"
		es = es.Upsert(e).UpdateInfo(casa, Projected, func(p *PropertyInfo) { p.State = "MG" })
		got, _ := es.Find(casa, Projected, Known(Renovation))
		if got.Info.City != "Trindade" || got.Info.State != "MG" {
			t.Errorf("UpdateInfo() = %+v, want the city kept and the state changed", got.Info)
		}
	})

	t.Run("execution sale duration", func(t *testing.T) {
		es := SetValue(cashProperty(), casa, Executed, Known(Sale), BRL(200000), WriteOptions{})
		es = es.UpdateInfo(casa, Executed, func(p *PropertyInfo) { p.SaleDate = date.New(2025, 7, 15) })
		sale, _ := es.Find(casa, Executed, Known(Sale))
		// 181 days
		if sale.SaleDurationMonths != 5.95 {
			t.Errorf("SaleDurationMonths = %v, want 5.95", sale.SaleDurationMonths)
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		es := Entries(nil).UpdateInfo("empty", Projected, func(p *PropertyInfo) { p.City = "Goiânia" })
		if len(es) != 1 || es.Anchor("empty", Projected).City != "Goiânia" {
			t.Fatalf("UpdateInfo() on an unknown property = %+v, want a single anchor entry", es)
		}
		if e := es[0]; !e.Label.Is(DownPayment) || e.Scenario != Projected || !e.CashFlow.IsZero() {
			t.Errorf("anchor entry = %+v, want an empty Projection down payment", e)
		}
	})
}
