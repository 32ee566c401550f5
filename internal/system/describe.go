package system

import (
	"fmt"
	"strings"
)

// Describe renders the summary shown when a scanned system is hovered
func (d *Data) Describe(name uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "System %X:\n", name)
	fmt.Fprintf(&b, "Number of Planets: %d\n", len(d.Planets))
	for i, p := range d.Planets {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "Planet %X-%s\n", name, PlanetLetter(i))
		fmt.Fprintf(&b, "   %s Planet.\n", p.Class)
		fmt.Fprintf(&b, "   Orbital radius: %.3f std.\n", p.OrbitRadius)
		fmt.Fprintf(&b, "   %d Moons.\n", len(p.Moons))
	}
	return b.String()
}

// DescribeUnscanned renders the summary of a system nobody has scanned yet
func DescribeUnscanned(name uint64) string {
	return fmt.Sprintf("No Data Available For System %X.\nSelect System to Scan.", name)
}

// PlanetLetter labels the i-th planet of a system: A, B, ... Z, then AA, AB, ...
func PlanetLetter(i int) string {
	if i < 0 {
		return "?"
	}
	label := ""
	for {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}
