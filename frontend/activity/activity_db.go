package activity

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"codeslabs/infrastructure/audit"
	"codeslabs/infrastructure/sqlite"
)

var actionLabels = map[string]string{
	"project.create":       "Proyecto creado",
	"project.update":       "Proyecto actualizado",
	"project.delete":       "Proyecto eliminado",
	"detail.create":        "Detalle creado",
	"detail.update":        "Detalle actualizado",
	"detail.delete":        "Detalle eliminado",
	"company_value.create": "Valor creado",
	"company_value.update": "Valor actualizado",
	"company_value.delete": "Valor eliminado",
}

// LoadActivityRows returns the audit trail of a project, newest first.
func LoadActivityRows(ctx context.Context, db *sqlite.DB, projectID string) ([]ActivityRow, error) {
	rows := make([]ActivityRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		logs, err := audit.ListByProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		for _, l := range logs {
			rows = append(rows, ActivityRow{
				CreatedAt:  l.CreatedAt.Local().Format("02/01/2006 15:04"),
				Action:     l.Action,
				Label:      actionLabel(l.Action),
				EntityType: l.EntityType,
				EntityID:   l.EntityID,
				BeforeJSON: strings.TrimSpace(l.BeforeJSON),
				AfterJSON:  strings.TrimSpace(l.AfterJSON),
			})
		}
		return nil
	})
	return rows, err
}

func actionLabel(action string) string {
	if label, ok := actionLabels[action]; ok {
		return label
	}
	return action
}
