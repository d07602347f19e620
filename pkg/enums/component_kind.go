package enums

import "fmt"

// ComponentKind identifies one of the fixed PC component categories the
// extractor and valuer operate on.
type ComponentKind string

const (
	ComponentCPU         ComponentKind = "cpu"
	ComponentGPU         ComponentKind = "gpu"
	ComponentRAM         ComponentKind = "ram"
	ComponentStorage     ComponentKind = "storage"
	ComponentPSU         ComponentKind = "psu"
	ComponentMotherboard ComponentKind = "motherboard"
	ComponentCase        ComponentKind = "case"
	ComponentCooling     ComponentKind = "cooling"
)

// AllComponentKinds lists every recognized kind in extraction order.
var AllComponentKinds = []ComponentKind{
	ComponentCPU,
	ComponentGPU,
	ComponentRAM,
	ComponentStorage,
	ComponentPSU,
	ComponentMotherboard,
	ComponentCase,
	ComponentCooling,
}

// ValuationOrder is the fixed iteration order for per-component valuation.
// Case and cooling are deliberately absent: the cost model never resells
// them individually.
var ValuationOrder = []ComponentKind{
	ComponentGPU,
	ComponentCPU,
	ComponentMotherboard,
	ComponentPSU,
	ComponentRAM,
	ComponentStorage,
}

// String implements fmt.Stringer.
func (c ComponentKind) String() string {
	return string(c)
}

// IsValid reports whether the kind is recognized.
func (c ComponentKind) IsValid() bool {
	for _, candidate := range AllComponentKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComponentKind converts a raw string into a ComponentKind.
func ParseComponentKind(value string) (ComponentKind, error) {
	for _, candidate := range AllComponentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid component kind %q", value)
}
