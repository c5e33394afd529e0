package crm

import (
	"strings"

	"github.com/jhoicas/leads-crm-api/internal/domain"
)

// trimmed devuelve una copia sin espacios del valor apuntado; nil si p es nil.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

// checkIDParam valida un identificador recibido en la ruta.
func checkIDParam(ids ...string) error {
	for _, id := range ids {
		if err := domain.ValidateID(id); err != nil {
			return err
		}
	}
	return nil
}
