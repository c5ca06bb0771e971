package material

import (
	"fmt"
	"sort"
	"strings"
)

// Properties describes a spring wire or strip material. Moduli and
// allowable stresses are in MPa, density in kg/m³.
type Properties struct {
	ID   string
	Name string

	ShearModulus   float64 // G
	ElasticModulus float64 // E
	Density        float64
	PoissonRatio   float64

	// Allowable stresses. Zero means "not specified"; stress checks that
	// depend on a missing allowable are skipped, not failed.
	AllowableShearStatic  float64 // τ_zul for static compression/extension
	AllowableShearDynamic float64 // τ_zul for dynamic duty
	AllowableBending      float64 // σ_zul for torsion/spiral/wave strips
}

// catalog is the built-in table of common spring materials. Values follow
// EN 10270 / ASTM handbook figures for mid-range wire diameters.
var catalog = []Properties{
	{
		ID:                    "en10270-1-sh",
		Name:                  "Patented cold-drawn wire EN 10270-1 SH (music wire, ASTM A228)",
		ShearModulus:          81500,
		ElasticModulus:        206000,
		Density:               7850,
		PoissonRatio:          0.30,
		AllowableShearStatic:  860,
		AllowableShearDynamic: 560,
		AllowableBending:      1080,
	},
	{
		ID:                    "en10270-2-vdsicr",
		Name:                  "Oil-tempered SiCr valve spring wire EN 10270-2 VDSiCr",
		ShearModulus:          79500,
		ElasticModulus:        200000,
		Density:               7850,
		PoissonRatio:          0.30,
		AllowableShearStatic:  900,
		AllowableShearDynamic: 640,
		AllowableBending:      1130,
	},
	{
		ID:                    "en10270-3-1.4310",
		Name:                  "Stainless spring wire EN 10270-3 1.4310 (AISI 302)",
		ShearModulus:          73000,
		ElasticModulus:        190000,
		Density:               7900,
		PoissonRatio:          0.31,
		AllowableShearStatic:  660,
		AllowableShearDynamic: 430,
		AllowableBending:      830,
	},
	{
		ID:                    "astm-a232-crv",
		Name:                  "Chrome vanadium wire ASTM A232 (51CrV4)",
		ShearModulus:          79300,
		ElasticModulus:        203000,
		Density:               7850,
		PoissonRatio:          0.30,
		AllowableShearStatic:  840,
		AllowableShearDynamic: 590,
		AllowableBending:      1050,
	},
	{
		ID:                    "astm-b159-phbr",
		Name:                  "Phosphor bronze wire ASTM B159 (CuSn6)",
		ShearModulus:          42000,
		ElasticModulus:        110000,
		Density:               8800,
		PoissonRatio:          0.34,
		AllowableShearStatic:  390,
		AllowableShearDynamic: 230,
		AllowableBending:      480,
	},
	{
		ID:                    "inconel-x750",
		Name:                  "Inconel X-750 alloy wire (high temperature)",
		ShearModulus:          79000,
		ElasticModulus:        214000,
		Density:               8280,
		PoissonRatio:          0.29,
		AllowableShearStatic:  620,
		AllowableShearDynamic: 410,
		AllowableBending:      790,
	},
	{
		ID:                    "en10132-4-ck75",
		Name:                  "Hardened strip steel EN 10132-4 C75S (disc and spiral springs)",
		ShearModulus:          78500,
		ElasticModulus:        206000,
		Density:               7850,
		PoissonRatio:          0.30,
		AllowableShearStatic:  780,
		AllowableShearDynamic: 500,
		AllowableBending:      1200,
	},
}

// Lookup returns the catalog entry for id. IDs are matched
// case-insensitively. An unknown id is an error, never a silent default.
func Lookup(id string) (Properties, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, m := range catalog {
		if m.ID == key {
			return m, nil
		}
	}
	return Properties{}, fmt.Errorf("material %q not in catalog", id)
}

// Resolve looks up id and overlays any non-zero field of override on top
// of the catalog entry. Callers use it to patch partial catalog data or
// supplier-specific allowables. An empty id returns the override as-is,
// so fully caller-specified materials need no catalog entry.
func Resolve(id string, override Properties) (Properties, error) {
	if strings.TrimSpace(id) == "" {
		return override, nil
	}
	base, err := Lookup(id)
	if err != nil {
		return Properties{}, err
	}
	if override.Name != "" {
		base.Name = override.Name
	}
	if override.ShearModulus > 0 {
		base.ShearModulus = override.ShearModulus
	}
	if override.ElasticModulus > 0 {
		base.ElasticModulus = override.ElasticModulus
	}
	if override.Density > 0 {
		base.Density = override.Density
	}
	if override.PoissonRatio > 0 {
		base.PoissonRatio = override.PoissonRatio
	}
	if override.AllowableShearStatic > 0 {
		base.AllowableShearStatic = override.AllowableShearStatic
	}
	if override.AllowableShearDynamic > 0 {
		base.AllowableShearDynamic = override.AllowableShearDynamic
	}
	if override.AllowableBending > 0 {
		base.AllowableBending = override.AllowableBending
	}
	return base, nil
}

// All returns the catalog sorted by ID, for listing in the CLI.
func All() []Properties {
	out := make([]Properties, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Valid reports whether the moduli are physically usable.
func (p Properties) Valid() bool {
	return p.ShearModulus > 0 && p.ElasticModulus > 0
}
