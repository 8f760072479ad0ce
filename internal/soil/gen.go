// Site soil generation using layered simplex noise. Independent noise
// layers drive texture, organic matter, and chemistry so neighboring sites
// vary smoothly instead of uniformly randomly.
package soil

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds soil field generation parameters.
type GenConfig struct {
	Seed  int64   // Noise seed
	Scale float64 // Sample spacing in noise space
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{Seed: 1, Scale: 0.08}
}

// Generator produces raw soil compositions for farm sites.
type Generator struct {
	cfg     GenConfig
	texture opensimplex.Noise
	organic opensimplex.Noise
	chem    opensimplex.Noise
}

// NewGenerator creates a deterministic soil field generator.
func NewGenerator(cfg GenConfig) *Generator {
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultGenConfig().Scale
	}
	return &Generator{
		cfg:     cfg,
		texture: opensimplex.NewNormalized(cfg.Seed),
		organic: opensimplex.NewNormalized(cfg.Seed + 1),
		chem:    opensimplex.NewNormalized(cfg.Seed + 2),
	}
}

// At samples the composition for site coordinates (x, y). The same
// generator and coordinates always produce the same composition.
func (g *Generator) At(x, y int) Composition {
	fx := float64(x) * g.cfg.Scale
	fy := float64(y) * g.cfg.Scale

	// Two texture octaves: broad trend plus local variation.
	t := g.texture.Eval2(fx, fy)*0.7 + g.texture.Eval2(fx*3, fy*3)*0.3
	o := g.organic.Eval2(fx, fy)
	n := g.chem.Eval2(fx, fy)
	p := g.chem.Eval2(fx+100, fy+100)
	k := g.chem.Eval2(fx+200, fy+200)
	ph := g.chem.Eval2(fx+300, fy+300)

	c := Composition{
		// Texture blends from clay-heavy (t=0) to sand-heavy (t=1).
		Clay:       0.15 + (1-t)*0.35,
		Silt:       0.2 + o*0.25,
		Organic:    0.03 + o*0.15,
		PH:         5.2 + ph*2.4, // 5.2–7.6, mostly arable
		Nitrogen:   0.01 + n*0.035,
		Phosphorus: 0.008 + p*0.025,
		Potassium:  0.01 + k*0.03,
	}
	return c.Normalize()
}
