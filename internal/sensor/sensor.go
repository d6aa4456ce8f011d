// Package sensor holds the static table of imaging sensors the simulation
// options may reference. The table backs validation of `simulation.sensor`
// and supplies the geometry (resolution, pixel pitch) from which mask
// dimensions are derived.
package sensor

import (
	"fmt"
	"sort"
	"strings"
)

// Sensor describes one supported image sensor.
type Sensor struct {
	Name string
	// Resolution is [rows, cols] in pixels.
	Resolution [2]int
	// PixelSizeM is the pixel pitch in meters.
	PixelSizeM float64
}

// SizeM returns the physical sensor dimensions [height, width] in meters.
func (s *Sensor) SizeM() [2]float64 {
	return [2]float64{
		float64(s.Resolution[0]) * s.PixelSizeM,
		float64(s.Resolution[1]) * s.PixelSizeM,
	}
}

// DownsampledResolution returns the effective resolution after integer
// downsampling, rounding down like the capture pipeline does.
func (s *Sensor) DownsampledResolution(factor int) [2]int {
	if factor <= 1 {
		return s.Resolution
	}
	return [2]int{s.Resolution[0] / factor, s.Resolution[1] / factor}
}

var table = map[string]*Sensor{
	"rpi_hq": {
		Name:       "rpi_hq",
		Resolution: [2]int{3040, 4056},
		PixelSizeM: 1.55e-6,
	},
	"rpi_gs": {
		Name:       "rpi_gs",
		Resolution: [2]int{1088, 1456},
		PixelSizeM: 3.45e-6,
	},
	"basler_287": {
		Name:       "basler_287",
		Resolution: [2]int{540, 720},
		PixelSizeM: 6.9e-6,
	},
	"basler_548": {
		Name:       "basler_548",
		Resolution: [2]int{2048, 2592},
		PixelSizeM: 2.74e-6,
	},
}

// Lookup returns the sensor entry for a name. The error lists the known
// sensors so a typo in a manifest is self-explanatory.
func Lookup(name string) (*Sensor, error) {
	if s, ok := table[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown sensor %q (known sensors: %s)", name, strings.Join(Names(), ", "))
}

// Names returns all known sensor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
