package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

// CategoryService implements the Connect CategoryService.
type CategoryService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewCategoryService creates a CategoryService backed by store.
func NewCategoryService(store storage.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

func categoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: category name is required", ErrValidation)
	}
	return name, nil
}

// CreateCategory returns the category with the given name, creating it
// when it does not exist yet.
func (s *CategoryService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	name, err := categoryName(req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}

	category, err := s.store.GetOrCreateCategory(ctx, name)
	if err != nil {
		s.logger.Error("CreateCategory failed", "name", name, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Category ready", "category_id", category.ID, "name", category.Name)
	return connect.NewResponse(&api.CreateCategoryResponse{Category: toAPICategory(category)}), nil
}

func (s *CategoryService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.logger.Error("ListCategories failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Category, len(categories))
	for i, c := range categories {
		out[i] = toAPICategory(c)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: out}), nil
}

// UpdateCategory renames a category. A rename that only changes letter case
// leaves the stored name untouched.
func (s *CategoryService) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error) {
	name, err := categoryName(req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}

	category, err := s.store.GetCategory(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if strings.EqualFold(category.Name, name) {
		return connect.NewResponse(&api.UpdateCategoryResponse{Category: toAPICategory(category)}), nil
	}

	category.Name = name
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		s.logger.Warn("UpdateCategory failed", "category_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Category renamed", "category_id", category.ID, "name", category.Name)
	return connect.NewResponse(&api.UpdateCategoryResponse{Category: toAPICategory(category)}), nil
}

// DeleteCategory removes a category that no expense, payment or closure uses.
func (s *CategoryService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	if err := s.store.DeleteCategory(ctx, req.Msg.ID); err != nil {
		s.logger.Warn("DeleteCategory failed", "category_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Category deleted", "category_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteCategoryResponse{}), nil
}
