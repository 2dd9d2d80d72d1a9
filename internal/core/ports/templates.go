package ports

import (
	"github.com/ewilliams-labs/setcurve/internal/core/domain"
)

// TemplateCatalog resolves template names. Implementations are read-only
// after construction.
type TemplateCatalog interface {
	Lookup(name string) (domain.Template, error)
	List() []domain.TemplateSummary
}
