package ledger

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/khoroch-khata/internal/models"
)

func categoryList(st *models.AppState, t models.TransactionType) *[]models.Category {
	if t == models.TypeIncome {
		return &st.Categories.Income
	}
	return &st.Categories.Expense
}

// AddCategory appends a category. Names are trimmed and must be unique
// within their type ignoring case. Existing transactions are never touched.
func (s *Service) AddCategory(ctx context.Context, t models.TransactionType, name, icon string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrInvalidCategoryName
	}
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}
	c := models.Category{Name: name, Icon: icon}
	_, err := s.mutate(ctx, "add_category", func(st *models.AppState) error {
		if st.Categories.IndexFold(t, name) >= 0 {
			return fmt.Errorf("%w: %s", ErrCategoryExists, name)
		}
		list := categoryList(st, t)
		*list = append(*list, c)
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// UpdateCategory renames and re-icons the category called oldName in place.
// Transactions keep the old name.
func (s *Service) UpdateCategory(ctx context.Context, t models.TransactionType, oldName, name, icon string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidCategoryName
	}
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}
	_, err := s.mutate(ctx, "update_category", func(st *models.AppState) error {
		list := categoryList(st, t)
		target := -1
		for i, c := range *list {
			if c.Name == oldName {
				target = i
				break
			}
		}
		if target < 0 {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, oldName)
		}
		if j := st.Categories.IndexFold(t, name); j >= 0 && j != target {
			return fmt.Errorf("%w: %s", ErrCategoryExists, name)
		}
		(*list)[target] = models.Category{Name: name, Icon: icon}
		return nil
	})
	return err
}

// DeleteCategory removes the category called name. Transactions keep it.
func (s *Service) DeleteCategory(ctx context.Context, t models.TransactionType, name string) error {
	_, err := s.mutate(ctx, "delete_category", func(st *models.AppState) error {
		list := categoryList(st, t)
		for i, c := range *list {
			if c.Name == name {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	})
	return err
}
