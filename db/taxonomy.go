package db

import (
	"context"

	"estate/models"

	"github.com/jmoiron/sqlx"
)

// PropertyType (Тип недвижимости)

const propertyTypeColumns = `
    t.id, t.name, t.sequence,
    (SELECT COUNT(1) FROM offer o JOIN property p ON o.property_id = p.id
     WHERE p.property_type_id = t.id) AS offer_count`

func (s *Storage) CreatePropertyType(ctx context.Context, t *models.PropertyType) error {
	query := `
        INSERT INTO property_type (name, sequence)
        VALUES ($1, $2)
        RETURNING id`
	return translate(s.q.QueryRowxContext(ctx, query, t.Name, t.Sequence).Scan(&t.ID))
}

func (s *Storage) GetPropertyType(ctx context.Context, id int) (*models.PropertyType, error) {
	t := &models.PropertyType{}
	query := `SELECT ` + propertyTypeColumns + ` FROM property_type t WHERE t.id=$1`
	if err := sqlx.GetContext(ctx, s.q, t, query, id); err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (s *Storage) GetPropertyTypes(ctx context.Context) ([]models.PropertyType, error) {
	types := []models.PropertyType{}
	query := `SELECT ` + propertyTypeColumns + ` FROM property_type t ORDER BY t.sequence ASC, t.name ASC`
	if err := sqlx.SelectContext(ctx, s.q, &types, query); err != nil {
		return nil, translate(err)
	}
	return types, nil
}

func (s *Storage) DeletePropertyType(ctx context.Context, id int) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM property_type WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	return affectedOne(res)
}

// PropertyTag (Тег)

func (s *Storage) CreatePropertyTag(ctx context.Context, t *models.PropertyTag) error {
	query := `
        INSERT INTO property_tag (name, color)
        VALUES ($1, $2)
        RETURNING id`
	return translate(s.q.QueryRowxContext(ctx, query, t.Name, t.Color).Scan(&t.ID))
}

func (s *Storage) GetPropertyTags(ctx context.Context) ([]models.PropertyTag, error) {
	tags := []models.PropertyTag{}
	query := `SELECT id, name, color FROM property_tag ORDER BY name ASC`
	if err := sqlx.SelectContext(ctx, s.q, &tags, query); err != nil {
		return nil, translate(err)
	}
	return tags, nil
}

func (s *Storage) DeletePropertyTag(ctx context.Context, id int) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM property_tag WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	return affectedOne(res)
}

func (s *Storage) GetTagsForProperty(ctx context.Context, propertyID int) ([]models.PropertyTag, error) {
	tags := []models.PropertyTag{}
	query := `
        SELECT t.id, t.name, t.color
        FROM property_tag t
        JOIN property_tag_rel r ON r.tag_id = t.id
        WHERE r.property_id = $1
        ORDER BY t.name ASC`
	if err := sqlx.SelectContext(ctx, s.q, &tags, query, propertyID); err != nil {
		return nil, translate(err)
	}
	return tags, nil
}

// SetPropertyTags заменяет набор тегов объекта
func (s *Storage) SetPropertyTags(ctx context.Context, propertyID int, tagIDs []int) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM property_tag_rel WHERE property_id=$1`, propertyID); err != nil {
		return translate(err)
	}
	seen := make(map[int]bool, len(tagIDs))
	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true
		query := `INSERT INTO property_tag_rel (property_id, tag_id) VALUES ($1, $2)`
		if _, err := s.q.ExecContext(ctx, query, propertyID, tagID); err != nil {
			return translate(err)
		}
	}
	return nil
}
