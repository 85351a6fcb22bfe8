package usecase_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Mocks con campos función: solo se configura lo que cada test necesita;
// los métodos sin configurar devuelven valores cero.

type MockProductRepo struct {
	GetAllFunc          func(ctx context.Context, includeInactive bool) ([]*entity.Product, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*entity.Product, error)
	FindFunc            func(ctx context.Context, cond string, args ...any) ([]*entity.Product, error)
	FirstOrDefaultFunc  func(ctx context.Context, cond string, args ...any) (*entity.Product, error)
	AddFunc             func(ctx context.Context, p *entity.Product) error
	UpdateFunc          func(ctx context.Context, p *entity.Product) error
	DeleteFunc          func(ctx context.Context, id int64) error
	ExistsFunc          func(ctx context.Context, id int64) (bool, error)
	CountFunc           func(ctx context.Context, includeInactive bool) (int64, error)
	CountWhereFunc      func(ctx context.Context, cond string, args ...any) (int64, error)
	AnyFunc             func(ctx context.Context, cond string, args ...any) (bool, error)
	GetByCategoryFunc   func(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	SearchFunc          func(ctx context.Context, f repository.ProductSearch) ([]*entity.Product, error)
	GetPaginatedFunc    func(ctx context.Context, p repository.ProductPage) ([]*entity.Product, int64, error)
	GetBySkuFunc        func(ctx context.Context, sku string) (*entity.Product, error)
	GetLowStockFunc     func(ctx context.Context, threshold int) ([]*entity.Product, error)
	GetByPriceRangeFunc func(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error)
	UpdateStockFunc     func(ctx context.Context, productID int64, newStock int) error
	GetStatisticsFunc   func(ctx context.Context) (*repository.ProductStats, error)
}

var _ repository.ProductRepository = (*MockProductRepo)(nil)

func (m *MockProductRepo) GetAll(ctx context.Context, inc bool) ([]*entity.Product, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, inc)
	}
	return nil, nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) Find(ctx context.Context, cond string, args ...any) ([]*entity.Product, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, cond, args...)
	}
	return nil, nil
}

func (m *MockProductRepo) FirstOrDefault(ctx context.Context, cond string, args ...any) (*entity.Product, error) {
	if m.FirstOrDefaultFunc != nil {
		return m.FirstOrDefaultFunc(ctx, cond, args...)
	}
	return nil, nil
}

func (m *MockProductRepo) Add(ctx context.Context, p *entity.Product) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) Count(ctx context.Context, inc bool) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, inc)
	}
	return 0, nil
}

func (m *MockProductRepo) CountWhere(ctx context.Context, cond string, args ...any) (int64, error) {
	if m.CountWhereFunc != nil {
		return m.CountWhereFunc(ctx, cond, args...)
	}
	return 0, nil
}

func (m *MockProductRepo) Any(ctx context.Context, cond string, args ...any) (bool, error) {
	if m.AnyFunc != nil {
		return m.AnyFunc(ctx, cond, args...)
	}
	return false, nil
}

func (m *MockProductRepo) GetByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	if m.GetByCategoryFunc != nil {
		return m.GetByCategoryFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *MockProductRepo) Search(ctx context.Context, f repository.ProductSearch) ([]*entity.Product, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockProductRepo) GetPaginated(ctx context.Context, p repository.ProductPage) ([]*entity.Product, int64, error) {
	if m.GetPaginatedFunc != nil {
		return m.GetPaginatedFunc(ctx, p)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) GetBySku(ctx context.Context, sku string) (*entity.Product, error) {
	if m.GetBySkuFunc != nil {
		return m.GetBySkuFunc(ctx, sku)
	}
	return nil, nil
}

func (m *MockProductRepo) GetLowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	if m.GetLowStockFunc != nil {
		return m.GetLowStockFunc(ctx, threshold)
	}
	return nil, nil
}

func (m *MockProductRepo) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	if m.GetByPriceRangeFunc != nil {
		return m.GetByPriceRangeFunc(ctx, min, max)
	}
	return nil, nil
}

func (m *MockProductRepo) UpdateStock(ctx context.Context, productID int64, newStock int) error {
	if m.UpdateStockFunc != nil {
		return m.UpdateStockFunc(ctx, productID, newStock)
	}
	return nil
}

func (m *MockProductRepo) GetStatistics(ctx context.Context) (*repository.ProductStats, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx)
	}
	return &repository.ProductStats{}, nil
}

type MockCategoryRepo struct {
	GetAllFunc                   func(ctx context.Context, includeInactive bool) ([]*entity.Category, error)
	GetByIDFunc                  func(ctx context.Context, id int64) (*entity.Category, error)
	FindFunc                     func(ctx context.Context, cond string, args ...any) ([]*entity.Category, error)
	FirstOrDefaultFunc           func(ctx context.Context, cond string, args ...any) (*entity.Category, error)
	AddFunc                      func(ctx context.Context, c *entity.Category) error
	UpdateFunc                   func(ctx context.Context, c *entity.Category) error
	DeleteFunc                   func(ctx context.Context, id int64) error
	ExistsFunc                   func(ctx context.Context, id int64) (bool, error)
	CountFunc                    func(ctx context.Context, includeInactive bool) (int64, error)
	CountWhereFunc               func(ctx context.Context, cond string, args ...any) (int64, error)
	AnyFunc                      func(ctx context.Context, cond string, args ...any) (bool, error)
	GetWithProductsFunc          func(ctx context.Context, id int64) (*entity.Category, error)
	GetActiveFunc                func(ctx context.Context) ([]*entity.Category, error)
	GetOrderedByDisplayOrderFunc func(ctx context.Context, includeInactive bool) ([]*entity.Category, error)
	GetWithProductCountsFunc     func(ctx context.Context, includeInactive bool) ([]*entity.Category, error)
	GetByNameFunc                func(ctx context.Context, name string) (*entity.Category, error)
	NameExistsFunc               func(ctx context.Context, name string, excludeID int64) (bool, error)
	GetAllWithProductsFunc       func(ctx context.Context) ([]*entity.Category, error)
	GetEmptyFunc                 func(ctx context.Context) ([]*entity.Category, error)
	GetStatisticsFunc            func(ctx context.Context) (*repository.CategoryStats, error)
	UpdateDisplayOrdersFunc      func(ctx context.Context, orders map[int64]int) (int64, error)
}

var _ repository.CategoryRepository = (*MockCategoryRepo)(nil)

func (m *MockCategoryRepo) GetAll(ctx context.Context, inc bool) ([]*entity.Category, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, inc)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Find(ctx context.Context, cond string, args ...any) ([]*entity.Category, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, cond, args...)
	}
	return nil, nil
}

func (m *MockCategoryRepo) FirstOrDefault(ctx context.Context, cond string, args ...any) (*entity.Category, error) {
	if m.FirstOrDefaultFunc != nil {
		return m.FirstOrDefaultFunc(ctx, cond, args...)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Add(ctx context.Context, c *entity.Category) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockCategoryRepo) Count(ctx context.Context, inc bool) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, inc)
	}
	return 0, nil
}

func (m *MockCategoryRepo) CountWhere(ctx context.Context, cond string, args ...any) (int64, error) {
	if m.CountWhereFunc != nil {
		return m.CountWhereFunc(ctx, cond, args...)
	}
	return 0, nil
}

func (m *MockCategoryRepo) Any(ctx context.Context, cond string, args ...any) (bool, error) {
	if m.AnyFunc != nil {
		return m.AnyFunc(ctx, cond, args...)
	}
	return false, nil
}

func (m *MockCategoryRepo) GetWithProducts(ctx context.Context, id int64) (*entity.Category, error) {
	if m.GetWithProductsFunc != nil {
		return m.GetWithProductsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetActive(ctx context.Context) ([]*entity.Category, error) {
	if m.GetActiveFunc != nil {
		return m.GetActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetOrderedByDisplayOrder(ctx context.Context, inc bool) ([]*entity.Category, error) {
	if m.GetOrderedByDisplayOrderFunc != nil {
		return m.GetOrderedByDisplayOrderFunc(ctx, inc)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetWithProductCounts(ctx context.Context, inc bool) ([]*entity.Category, error) {
	if m.GetWithProductCountsFunc != nil {
		return m.GetWithProductCountsFunc(ctx, inc)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockCategoryRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	if m.NameExistsFunc != nil {
		return m.NameExistsFunc(ctx, name, excludeID)
	}
	return false, nil
}

func (m *MockCategoryRepo) GetAllWithProducts(ctx context.Context) ([]*entity.Category, error) {
	if m.GetAllWithProductsFunc != nil {
		return m.GetAllWithProductsFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetEmpty(ctx context.Context) ([]*entity.Category, error) {
	if m.GetEmptyFunc != nil {
		return m.GetEmptyFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetStatistics(ctx context.Context) (*repository.CategoryStats, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx)
	}
	return &repository.CategoryStats{}, nil
}

func (m *MockCategoryRepo) UpdateDisplayOrders(ctx context.Context, orders map[int64]int) (int64, error) {
	if m.UpdateDisplayOrdersFunc != nil {
		return m.UpdateDisplayOrdersFunc(ctx, orders)
	}
	return 0, nil
}
