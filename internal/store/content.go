package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
)

// ---------------------------------------------------------------------------
// Solutions
// ---------------------------------------------------------------------------

func (s *Store) ListSolutions(ctx context.Context) ([]model.Solution, error) {
	var items []model.Solution
	if err := s.db.SelectContext(ctx, &items, "SELECT * FROM solutions ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	return items, nil
}

func (s *Store) CreateSolution(ctx context.Context, item *model.Solution) error {
	const q = `INSERT INTO solutions (title, description, image, icon) VALUES (?, ?, ?, ?)`
	id, err := s.insertID(ctx, q, item.Title, item.Description, item.Image, item.Icon)
	if err != nil {
		return fmt.Errorf("insert solution: %w", err)
	}
	item.ID = id
	return nil
}

func (s *Store) UpdateSolution(ctx context.Context, item *model.Solution) error {
	const q = `UPDATE solutions SET title = ?, description = ?, image = ?, icon = ? WHERE id = ?`
	return s.exec(ctx, "update solution", q,
		item.Title, item.Description, item.Image, item.Icon, item.ID)
}

func (s *Store) DeleteSolution(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete solution", "DELETE FROM solutions WHERE id = ?", id)
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if err := s.db.SelectContext(ctx, &items, "SELECT * FROM products ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (s *Store) CreateProduct(ctx context.Context, item *model.Product) error {
	const q = `INSERT INTO products (name, category, description, image, video)
		VALUES (?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q, item.Name, item.Category, item.Description, item.Image, item.Video)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	item.ID = id
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, item *model.Product) error {
	const q = `UPDATE products SET name = ?, category = ?, description = ?, image = ?, video = ?
		WHERE id = ?`
	return s.exec(ctx, "update product", q,
		item.Name, item.Category, item.Description, item.Image, item.Video, item.ID)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete product", "DELETE FROM products WHERE id = ?", id)
}

// ---------------------------------------------------------------------------
// News
// ---------------------------------------------------------------------------

func (s *Store) ListNews(ctx context.Context) ([]model.NewsItem, error) {
	var items []model.NewsItem
	if err := s.db.SelectContext(ctx, &items, "SELECT * FROM news_items ORDER BY date DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

func (s *Store) CreateNewsItem(ctx context.Context, item *model.NewsItem) error {
	const q = `INSERT INTO news_items (title, date, category, summary, image, source, author)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q,
		item.Title, item.Date, item.Category, item.Summary, item.Image, item.Source, item.Author)
	if err != nil {
		return fmt.Errorf("insert news item: %w", err)
	}
	item.ID = id
	return nil
}

func (s *Store) UpdateNewsItem(ctx context.Context, item *model.NewsItem) error {
	const q = `UPDATE news_items SET title = ?, date = ?, category = ?, summary = ?,
		image = ?, source = ?, author = ? WHERE id = ?`
	return s.exec(ctx, "update news item", q,
		item.Title, item.Date, item.Category, item.Summary, item.Image, item.Source, item.Author, item.ID)
}

func (s *Store) DeleteNewsItem(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete news item", "DELETE FROM news_items WHERE id = ?", id)
}

// ---------------------------------------------------------------------------
// Partner benefits
// ---------------------------------------------------------------------------

func (s *Store) ListPartnerBenefits(ctx context.Context) ([]model.PartnerBenefit, error) {
	var items []model.PartnerBenefit
	if err := s.db.SelectContext(ctx, &items, "SELECT * FROM partner_benefits ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list partner benefits: %w", err)
	}
	return items, nil
}

func (s *Store) CreatePartnerBenefit(ctx context.Context, item *model.PartnerBenefit) error {
	const q = `INSERT INTO partner_benefits (title, description, icon) VALUES (?, ?, ?)`
	id, err := s.insertID(ctx, q, item.Title, item.Description, item.Icon)
	if err != nil {
		return fmt.Errorf("insert partner benefit: %w", err)
	}
	item.ID = id
	return nil
}

func (s *Store) UpdatePartnerBenefit(ctx context.Context, item *model.PartnerBenefit) error {
	const q = `UPDATE partner_benefits SET title = ?, description = ?, icon = ? WHERE id = ?`
	return s.exec(ctx, "update partner benefit", q,
		item.Title, item.Description, item.Icon, item.ID)
}

func (s *Store) DeletePartnerBenefit(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete partner benefit", "DELETE FROM partner_benefits WHERE id = ?", id)
}

// ---------------------------------------------------------------------------
// Associations
// ---------------------------------------------------------------------------

func (s *Store) ListAssociations(ctx context.Context) ([]model.Association, error) {
	var items []model.Association
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM associations ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list associations: %w", err)
	}
	return items, nil
}

func (s *Store) GetAssociation(ctx context.Context, id int64) (*model.Association, error) {
	var item model.Association
	err := s.db.GetContext(ctx, &item,
		s.rebind("SELECT * FROM associations WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get association: %w", err)
	}
	return &item, nil
}

func (s *Store) CreateAssociation(ctx context.Context, item *model.Association) error {
	item.CreatedAt = time.Now().UTC()
	const q = `INSERT INTO associations
		(name, type, description, content, join_info, logo, contact_info, website, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q,
		item.Name, item.Type, item.Description, item.Content, item.JoinInfo,
		item.Logo, item.ContactInfo, item.Website, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert association: %w", err)
	}
	item.ID = id
	return nil
}

func (s *Store) UpdateAssociation(ctx context.Context, item *model.Association) error {
	const q = `UPDATE associations SET name = ?, type = ?, description = ?, content = ?,
		join_info = ?, logo = ?, contact_info = ?, website = ? WHERE id = ?`
	return s.exec(ctx, "update association", q,
		item.Name, item.Type, item.Description, item.Content, item.JoinInfo,
		item.Logo, item.ContactInfo, item.Website, item.ID)
}

func (s *Store) DeleteAssociation(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete association", "DELETE FROM associations WHERE id = ?", id)
}

// ---------------------------------------------------------------------------
// Exhibition applications
// ---------------------------------------------------------------------------

func (s *Store) CreateExhibitionApplication(ctx context.Context, app *model.ExhibitionApplication) error {
	app.CreatedAt = time.Now().UTC()
	const q = `INSERT INTO exhibition_applications
		(exhibition, company, contact_name, phone, email, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q,
		app.Exhibition, app.Company, app.ContactName, app.Phone, app.Email, app.Message, app.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert exhibition application: %w", err)
	}
	app.ID = id
	return nil
}

func (s *Store) ListExhibitionApplications(ctx context.Context) ([]model.ExhibitionApplication, error) {
	var items []model.ExhibitionApplication
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM exhibition_applications ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list exhibition applications: %w", err)
	}
	return items, nil
}

// exec runs a single UPDATE or DELETE and maps "no rows matched" to
// ErrNotFound. MySQL reports changed rows rather than matched rows unless
// the DSN sets clientFoundRows=true; without it a no-op update of an
// existing record would be misread as not found.
func (s *Store) exec(ctx context.Context, op, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
