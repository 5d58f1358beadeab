package formula

import "strings"

const (
	Planck          = 6.62607015e-34  // J·s
	SpeedOfLight    = 299792458.0     // m/s
	Avogadro        = 6.02214076e23   // 1/mol
	Electronvolt    = 1.602176634e-19 // J
	StandardGravity = 9.80665         // m/s²
)

// Unit is a symbol with its multiplicative factor against the quantity's base unit.
type Unit struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Factor float64 `json:"-"`
}

// Quantity is the unit table of one physical quantity. The first unit is the base.
type Quantity struct {
	name  string
	units []Unit
	index map[string]int
}

func NewQuantity(name string, units ...Unit) *Quantity {
	if len(units) == 0 || units[0].Factor != 1 {
		panic("formula: quantity " + name + " needs its base unit first")
	}
	q := &Quantity{name: name, units: units, index: make(map[string]int, len(units))}
	for i, u := range units {
		if u.Factor <= 0 {
			panic("formula: non-positive factor for " + u.Symbol)
		}
		if _, dup := q.index[u.Symbol]; dup {
			panic("formula: duplicate unit " + u.Symbol)
		}
		q.index[u.Symbol] = i
	}
	return q
}

func (q *Quantity) Name() string { return q.name }
func (q *Quantity) Base() string { return q.units[0].Symbol }

func (q *Quantity) Units() []Unit {
	out := make([]Unit, len(q.units))
	copy(out, q.units)
	return out
}

func (q *Quantity) Lookup(symbol string) (Unit, error) {
	if i, ok := q.index[symbol]; ok {
		return q.units[i], nil
	}
	if i, ok := q.index[normalizeSymbol(symbol)]; ok {
		return q.units[i], nil
	}
	return Unit{}, UnknownUnitf(q.name, "Unknown %s unit %q", q.name, symbol)
}

func (q *Quantity) ToBase(v float64, symbol string) (float64, error) {
	u, err := q.Lookup(symbol)
	if err != nil {
		return 0, err
	}
	return v * u.Factor, nil
}

func (q *Quantity) FromBase(v float64, symbol string) (float64, error) {
	u, err := q.Lookup(symbol)
	if err != nil {
		return 0, err
	}
	return v / u.Factor, nil
}

var symbolReplacer = strings.NewReplacer(
	"^2", "²",
	"^-1", "⁻¹",
	"-1", "⁻¹",
	"ohm", "Ω",
	"Ohm", "Ω",
	"OHM", "Ω",
	"µ", "μ",
	"A°", "Å",
	"angstrom", "Å",
)

func normalizeSymbol(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 1 && s[0] == 'u' {
		s = "μ" + s[1:]
	}
	return symbolReplacer.Replace(s)
}

var (
	Charge = NewQuantity("charge",
		Unit{"C", "Coulombs", 1},
		Unit{"mC", "Millicoulombs", 1e-3},
		Unit{"μC", "Microcoulombs", 1e-6},
		Unit{"nC", "Nanocoulombs", 1e-9},
		Unit{"pC", "Picocoulombs", 1e-12},
	)
	Voltage = NewQuantity("voltage",
		Unit{"V", "Volts", 1},
		Unit{"mV", "Millivolts", 1e-3},
		Unit{"μV", "Microvolts", 1e-6},
		Unit{"kV", "Kilovolts", 1e3},
	)
	Capacitance = NewQuantity("capacitance",
		Unit{"F", "Farads", 1},
		Unit{"mF", "Millifarads", 1e-3},
		Unit{"μF", "Microfarads", 1e-6},
		Unit{"nF", "Nanofarads", 1e-9},
		Unit{"pF", "Picofarads", 1e-12},
	)
	Force = NewQuantity("force",
		Unit{"N", "Newtons", 1},
		Unit{"kN", "Kilonewtons", 1e3},
		Unit{"mN", "Millinewtons", 1e-3},
		Unit{"lb", "Pounds-force", 4.44822},
		Unit{"oz", "Ounce-force", 0.278014},
		Unit{"dyn", "Dynes", 1e-5},
	)
	Mass = NewQuantity("mass",
		Unit{"kg", "Kilograms", 1},
		Unit{"g", "Grams", 1e-3},
		Unit{"mg", "Milligrams", 1e-6},
		Unit{"lb", "Pounds", 0.453592},
		Unit{"oz", "Ounces", 0.0283495},
		Unit{"ton", "Metric tons", 1000},
		Unit{"ton_us", "US tons", 907.185},
	)
	Acceleration = NewQuantity("acceleration",
		Unit{"m/s²", "Meters per second squared", 1},
		Unit{"cm/s²", "Centimeters per second squared", 0.01},
		Unit{"ft/s²", "Feet per second squared", 0.3048},
		Unit{"g", "Standard gravity", StandardGravity},
		Unit{"km/h²", "Kilometers per hour squared", 1000.0 / (3600 * 3600)},
	)
	Energy = NewQuantity("energy",
		Unit{"J", "Joules", 1},
		Unit{"eV", "Electronvolts", Electronvolt},
		Unit{"meV", "Millielectronvolts", Electronvolt * 1e-3},
		Unit{"keV", "Kiloelectronvolts", Electronvolt * 1e3},
		Unit{"MeV", "Megaelectronvolts", Electronvolt * 1e6},
		Unit{"kJ/mol", "Kilojoules per mole", 1000 / Avogadro},
		Unit{"kcal/mol", "Kilocalories per mole", 4184 / Avogadro},
		Unit{"cm⁻¹", "Wavenumber", Planck * SpeedOfLight * 100},
	)
	Wavelength = NewQuantity("wavelength",
		Unit{"m", "Meters", 1},
		Unit{"nm", "Nanometers", 1e-9},
		Unit{"μm", "Micrometers", 1e-6},
		Unit{"mm", "Millimeters", 1e-3},
		Unit{"cm", "Centimeters", 1e-2},
		Unit{"Å", "Angstroms", 1e-10},
	)
	Current = NewQuantity("current",
		Unit{"A", "Amperes", 1},
		Unit{"mA", "Milliamperes", 1e-3},
		Unit{"μA", "Microamperes", 1e-6},
		Unit{"kA", "Kiloamperes", 1e3},
	)
	Resistance = NewQuantity("resistance",
		Unit{"Ω", "Ohms", 1},
		Unit{"mΩ", "Milliohms", 1e-3},
		Unit{"kΩ", "Kiloohms", 1e3},
		Unit{"MΩ", "Megaohms", 1e6},
	)
	Power = NewQuantity("power",
		Unit{"W", "Watts", 1},
		Unit{"mW", "Milliwatts", 1e-3},
		Unit{"kW", "Kilowatts", 1e3},
		Unit{"MW", "Megawatts", 1e6},
		Unit{"hp", "Horsepower", 745.699872},
	)
	Length = NewQuantity("length",
		Unit{"m", "Meters", 1},
		Unit{"cm", "Centimeters", 1e-2},
		Unit{"mm", "Millimeters", 1e-3},
		Unit{"km", "Kilometers", 1e3},
		Unit{"in", "Inches", 0.0254},
		Unit{"ft", "Feet", 0.3048},
		Unit{"yd", "Yards", 0.9144},
		Unit{"mi", "Miles", 1609.344},
	)
)

// Quantities lists every unit table, for metadata endpoints.
func Quantities() []*Quantity {
	return []*Quantity{Charge, Voltage, Capacitance, Force, Mass, Acceleration, Energy, Wavelength, Current, Resistance, Power, Length}
}
