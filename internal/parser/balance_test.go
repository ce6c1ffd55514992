package parser

import (
	"reflect"
	"testing"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/ternarybob/arbor"
)

var balanceYears = []string{"2025", "2024", "2023", "2022"}

func balanceRow(col1, col2, concepto string, values ...float64) testRow {
	labels := make(map[string]string)
	for col, v := range map[string]string{"Col1": col1, "Col2": col2, models.ColConcept: concepto} {
		if v != "" {
			labels[col] = v
		}
	}
	return testRow{labels: labels, values: values}
}

func balanceGrid(rows ...testRow) *models.Grid {
	cols := []string{"Col1", "Col2", models.ColConcept, "Col4", "Col5", "Col6"}
	return newGrid(cols, balanceYears, rows...)
}

func TestBalanceParser_ExtractAll(t *testing.T) {
	grid := balanceGrid(
		balanceRow("A) ACTIVO NO CORRIENTE", "", "", 3000, 2900, 2800, 2700),
		balanceRow("", "I. Inmovilizado intangible", "", 100, 100, 100, 100),
		balanceRow("", "II. Inmovilizado material", "", 2900, 2800, 2700, 2600),
		balanceRow("B) ACTIVO CORRIENTE", "", "", 2000, 1900, 1800, 1700),
		balanceRow("", "I. Existencias", "", 400, 300, 200, 100),
		balanceRow("", "II. Deudores comerciales y otras cuentas a cobrar", "", 600, 600, 600, 600),
		balanceRow("", "VI. Efectivo y otros activos líquidos equivalentes", "", 1000, 1000, 1000, 1000),
		balanceRow("TOTAL ACTIVO (A+B)", "", "", 5000, 4800, 4600, 4400),
		balanceRow("A) PATRIMONIO NETO", "", "", 2500, 2400, 2300, 2200),
		balanceRow("A-1) Fondos propios", "", "", 2500, 2400, 2300, 2200),
		balanceRow("", "I. Capital", "", 300, 300, 300, 300),
		balanceRow("", "", "100 CAPITAL SOCIAL", 300, 300, 300, 300),
		balanceRow("", "III. Reservas", "", 900, 800, 700, 600),
		balanceRow("", "VII. Resultado del ejercicio", "", 250, 220, 200, 180),
		balanceRow("B) PASIVO NO CORRIENTE", "", "", 1500, 1400, 1300, 1200),
		balanceRow("", "II. Deudas a largo plazo", "", 1500, 1400, 1300, 1200),
		balanceRow("C) PASIVO CORRIENTE", "", "", 1000, 1000, 1000, 1000),
		balanceRow("", "II. Deudas a corto plazo", "", 400, 400, 400, 400),
		balanceRow("", "IV. Acreedores comerciales y otras cuentas a pagar", "", 600, 600, 600, 600),
		balanceRow("TOTAL PATRIMONIO NETO Y PASIVO (A+B+C)", "", "", 5000, 4800, 4600, 4400),
	)

	kpis := NewBalanceParser(mustRegistry(t), arbor.NewLogger()).ExtractAll(grid)

	tests := []struct {
		concept string
		want    float64
	}{
		{"activo_no_corriente", 3000},
		{"inmovilizado_intangible", 100},
		{"inmovilizado_material", 2900},
		{"activo_corriente", 2000},
		{"existencias", 400},
		{"deudores", 600},
		{"efectivo", 1000},
		{"total_activo", 5000},
		{"patrimonio_neto", 2500},
		{"fondos_propios", 2500},
		{"capital", 300},
		{"reservas", 900},
		{"resultado_ejercicio_balance", 250},
		{"pasivo_no_corriente", 1500},
		{"deudas_largo_plazo", 1500},
		{"pasivo_corriente", 1000},
		{"deudas_corto_plazo", 400},
		{"acreedores", 600},
		{"total_pasivo_patrimonio", 5000},
	}
	for _, tt := range tests {
		t.Run(tt.concept, func(t *testing.T) {
			if !kpis.Has(tt.concept) {
				t.Fatalf("%s not extracted", tt.concept)
			}
			if got := kpis.Get(tt.concept, "2025"); got != tt.want {
				t.Errorf("%s[2025]: got %v, want %v", tt.concept, got, tt.want)
			}
		})
	}
	if len(kpis) != len(tests) {
		t.Errorf("extracted %d concepts, want %d", len(kpis), len(tests))
	}
}

func TestBalanceParser_RowOverwriteRules(t *testing.T) {
	grid := balanceGrid(
		balanceRow("", "I. Capital", "", 100),
		balanceRow("", "I. Capital", "", 200),
		balanceRow("", "III. Reservas", "", 10),
		balanceRow("", "III. Reservas", "", 20),
		balanceRow("C) PASIVO CORRIENTE", "", "", 1),
		balanceRow("C) PASIVO CORRIENTE", "", "", -2),
	)

	kpis := NewBalanceParser(mustRegistry(t), arbor.NewLogger()).ExtractAll(grid)

	if got := kpis.Get("capital", "2025"); got != 100 {
		t.Errorf("capital keeps first row: got %v, want 100", got)
	}
	if got := kpis.Get("reservas", "2025"); got != 10 {
		t.Errorf("reservas keeps first row: got %v, want 10", got)
	}
	if got := kpis.Get("pasivo_corriente", "2025"); got != -2 {
		t.Errorf("pasivo_corriente takes last row, signed: got %v, want -2", got)
	}
}

func TestBalanceParser_OneConceptPerRow(t *testing.T) {
	// The liabilities total also carries the equity heading.
	grid := balanceGrid(
		balanceRow("TOTAL PATRIMONIO NETO Y PASIVO", "A) PATRIMONIO NETO", "", 9),
		balanceRow("I. EXISTENCIAS DE ACTIVO", "", "", 5),
	)

	kpis := NewBalanceParser(mustRegistry(t), arbor.NewLogger()).ExtractAll(grid)

	if kpis.Has("patrimonio_neto") {
		t.Error("patrimonio_neto must not match a row containing 'total'")
	}
	if got := kpis.Get("total_pasivo_patrimonio", "2025"); got != 9 {
		t.Errorf("total_pasivo_patrimonio: got %v, want 9", got)
	}
	if kpis.Has("existencias") {
		t.Error("existencias must not match a row containing 'activo'")
	}
}

func TestBalanceParser_Parse(t *testing.T) {
	grid := balanceGrid(
		balanceRow("TOTAL ACTIVO (A+B)", "", "", 5000000),
		balanceRow("", "", "211 CONSTRUCCIONES", 1200, 1100),
		balanceRow("", "", "217 EQUIPOS PARA PROCESOS DE INFORMACION", 30),
		balanceRow("", "", "100 CAPITAL SOCIAL", 3000),
		balanceRow("", "", "520 DEUDAS CORTO PLAZO CON ENTIDADES DE CREDITO", -40),
	)

	info, err := NewBalanceParser(mustRegistry(t), arbor.NewLogger()).Parse(grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Kind != models.StatementBalance {
		t.Errorf("kind: got %q", info.Kind)
	}
	if !reflect.DeepEqual(info.Years, balanceYears) {
		t.Errorf("years: got %v", info.Years)
	}
	if want := []string{"total_activo"}; !reflect.DeepEqual(info.Found, want) {
		t.Errorf("found: got %v, want %v", info.Found, want)
	}
	if len(info.Missing) != 18 {
		t.Errorf("missing: got %d, want 18", len(info.Missing))
	}

	activo := info.Details["activo_detalle"]
	wantActivo := models.DetailMap{
		"Construcciones":       {"2025": 1200, "2024": 1100, "2023": 0, "2022": 0},
		"Equipos Informáticos": {"2025": 30, "2024": 0, "2023": 0, "2022": 0},
	}
	if !reflect.DeepEqual(activo, wantActivo) {
		t.Errorf("activo_detalle: got %v, want %v", activo, wantActivo)
	}

	pasivo := info.Details["pasivo_detalle"]
	if got := pasivo["Capital Social"]["2025"]; got != 3000 {
		t.Errorf("Capital Social: got %v, want 3000", got)
	}
	if got := pasivo["Deudas CP Entidades Crédito"]["2025"]; got != -40 {
		t.Errorf("Deudas CP Entidades Crédito keeps its sign: got %v, want -40", got)
	}
}
