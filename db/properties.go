package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estate/models"

	"github.com/jmoiron/sqlx"
)

// Property (Объект недвижимости)

const propertyColumns = `
    p.id, p.name, p.description, p.postcode, p.date_availability,
    p.expected_price, p.selling_price, p.bedrooms, p.living_area, p.facades,
    p.garage, p.garden, p.garden_area, p.garden_orientation, p.active, p.state,
    p.property_type_id, p.salesperson_id, p.buyer_id, p.created_at,
    COALESCE((SELECT MAX(o.price) FROM offer o WHERE o.property_id = p.id), 0) AS best_price`

// PropertyFilter - фильтры списка объектов
type PropertyFilter struct {
	States          []models.PropertyState
	PropertyTypeID  int
	SalespersonID   int
	IncludeArchived bool
	Limit           int
	Offset          int
}

func (s *Storage) CreateProperty(ctx context.Context, p *models.Property) error {
	query := `
        INSERT INTO property
            (name, description, postcode, date_availability, expected_price, selling_price,
             bedrooms, living_area, facades, garage, garden, garden_area, garden_orientation,
             active, state, property_type_id, salesperson_id, buyer_id, created_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
        RETURNING id`
	err := s.q.QueryRowxContext(ctx, query,
		p.Name, p.Description, p.Postcode, p.DateAvailability, p.ExpectedPrice, p.SellingPrice,
		p.Bedrooms, p.LivingArea, p.Facades, p.Garage, p.Garden, p.GardenArea, p.GardenOrientation,
		p.Active, p.State, p.PropertyTypeID, p.SalespersonID, p.BuyerID, p.CreatedAt).
		Scan(&p.ID)
	return translate(err)
}

func (s *Storage) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	p := &models.Property{}
	query := `SELECT ` + propertyColumns + ` FROM property p WHERE p.id=$1`
	if err := sqlx.GetContext(ctx, s.q, p, query, id); err != nil {
		return nil, translate(err)
	}
	p.Derive(time.Now())
	return p, nil
}

// GetPropertyForUpdate читает объект с блокировкой строки (в PostgreSQL)
func (s *Storage) GetPropertyForUpdate(ctx context.Context, id int) (*models.Property, error) {
	p := &models.Property{}
	query := s.forUpdate(`
        SELECT p.id, p.name, p.description, p.postcode, p.date_availability,
            p.expected_price, p.selling_price, p.bedrooms, p.living_area, p.facades,
            p.garage, p.garden, p.garden_area, p.garden_orientation, p.active, p.state,
            p.property_type_id, p.salesperson_id, p.buyer_id, p.created_at
        FROM property p WHERE p.id=$1`)
	if err := sqlx.GetContext(ctx, s.q, p, query, id); err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (s *Storage) GetProperties(ctx context.Context, f PropertyFilter) ([]models.Property, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !f.IncludeArchived {
		conds = append(conds, "p.active = "+arg(true))
	}
	if len(f.States) > 0 {
		placeholders := make([]string, len(f.States))
		for i, st := range f.States {
			placeholders[i] = arg(string(st))
		}
		conds = append(conds, fmt.Sprintf("p.state IN (%s)", strings.Join(placeholders, ", ")))
	}
	if f.PropertyTypeID > 0 {
		conds = append(conds, "p.property_type_id = "+arg(f.PropertyTypeID))
	}
	if f.SalespersonID > 0 {
		conds = append(conds, "p.salesperson_id = "+arg(f.SalespersonID))
	}

	query := `SELECT ` + propertyColumns + ` FROM property p`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	properties := []models.Property{}
	if err := sqlx.SelectContext(ctx, s.q, &properties, query, args...); err != nil {
		return nil, translate(err)
	}
	now := time.Now()
	for i := range properties {
		properties[i].Derive(now)
	}
	return properties, nil
}

// UpdateProperty сохраняет редактируемые поля. Состояние, покупатель и цена
// продажи меняются только через UpdatePropertyWorkflow.
func (s *Storage) UpdateProperty(ctx context.Context, p *models.Property) error {
	query := `
        UPDATE property
        SET name=$1, description=$2, postcode=$3, date_availability=$4, expected_price=$5,
            bedrooms=$6, living_area=$7, facades=$8, garage=$9, garden=$10, garden_area=$11,
            garden_orientation=$12, active=$13, property_type_id=$14, salesperson_id=$15
        WHERE id=$16`
	res, err := s.q.ExecContext(ctx, query,
		p.Name, p.Description, p.Postcode, p.DateAvailability, p.ExpectedPrice,
		p.Bedrooms, p.LivingArea, p.Facades, p.Garage, p.Garden, p.GardenArea,
		p.GardenOrientation, p.Active, p.PropertyTypeID, p.SalespersonID, p.ID)
	if err != nil {
		return translate(err)
	}
	return affectedOne(res)
}

func (s *Storage) UpdatePropertyWorkflow(ctx context.Context, p *models.Property) error {
	query := `UPDATE property SET state=$1, selling_price=$2, buyer_id=$3 WHERE id=$4`
	res, err := s.q.ExecContext(ctx, query, p.State, p.SellingPrice, p.BuyerID, p.ID)
	if err != nil {
		return translate(err)
	}
	return affectedOne(res)
}

func (s *Storage) DeleteProperty(ctx context.Context, id int) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM property WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	return affectedOne(res)
}
