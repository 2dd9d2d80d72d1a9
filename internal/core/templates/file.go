package templates

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
)

type fileLength struct {
	Mode   string `mapstructure:"mode"`
	Target int    `mapstructure:"target"`
}

type fileTemplate struct {
	Name          string                `mapstructure:"name"`
	Description   string                `mapstructure:"description"`
	DefaultLength fileLength            `mapstructure:"default_length"`
	Tolerance     *domain.Tolerance     `mapstructure:"tolerance"`
	Curve         []domain.ControlPoint `mapstructure:"curve"`
}

// LoadFile reads extra templates from a config file (any format viper
// understands, chosen by extension) holding a top-level "templates" list.
// Templates without a tolerance get the built-in default band. The result
// is not validated here; NewCatalog does that.
func LoadFile(path string) ([]domain.Template, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("templates: read %s: %w", path, err)
	}

	var defs []fileTemplate
	if err := v.UnmarshalKey("templates", &defs); err != nil {
		return nil, fmt.Errorf("templates: decode %s: %w", path, err)
	}

	out := make([]domain.Template, 0, len(defs))
	for _, d := range defs {
		t := domain.Template{
			Name:          d.Name,
			Description:   d.Description,
			DefaultLength: domain.Length{Mode: domain.LengthMode(d.DefaultLength.Mode), Target: d.DefaultLength.Target},
			Tolerance:     defaultTolerance,
			Curve:         d.Curve,
		}
		if d.Tolerance != nil {
			t.Tolerance = *d.Tolerance
		}
		out = append(out, t)
	}
	return out, nil
}
