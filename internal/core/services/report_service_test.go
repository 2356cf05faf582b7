package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
	"github.com/gestium/biz_reporting_app/internal/core/services"
	"github.com/gestium/biz_reporting_app/internal/utils/timebucket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

// --- Mock EconomicCycleRepository ---
type MockCycleRepository struct {
	mock.Mock
}

func (m *MockCycleRepository) FindCycleByID(ctx context.Context, cycleID string) (*domain.EconomicCycle, error) {
	args := m.Called(ctx, cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EconomicCycle), args.Error(1)
}

func (m *MockCycleRepository) ListCyclesInWindow(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.EconomicCycle, error) {
	args := m.Called(ctx, businessIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EconomicCycle), args.Error(1)
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListOrdersByCycles(ctx context.Context, cycleIDs []string) ([]domain.OrderReceipt, error) {
	args := m.Called(ctx, cycleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderReceipt), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersInWindow(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.OrderReceipt, error) {
	args := m.Called(ctx, businessIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderReceipt), args.Error(1)
}

func (m *MockOrderRepository) ListCashOperationsByCycles(ctx context.Context, cycleIDs []string) ([]domain.CashOperation, error) {
	args := m.Called(ctx, cycleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashOperation), args.Error(1)
}

func (m *MockOrderRepository) ListTipsByCycle(ctx context.Context, cycleID string) ([]domain.TipRecord, error) {
	args := m.Called(ctx, cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TipRecord), args.Error(1)
}

func (m *MockOrderRepository) ListSelledProducts(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.SelledProduct, error) {
	args := m.Called(ctx, businessIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SelledProduct), args.Error(1)
}

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockStockRepository) ListAreas(ctx context.Context, businessID string) ([]domain.Area, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Area), args.Error(1)
}

func (m *MockStockRepository) ListProductStocks(ctx context.Context, areaID string) ([]domain.ProductStock, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductStock), args.Error(1)
}

func (m *MockStockRepository) ListMovements(ctx context.Context, areaID string, from, to time.Time) ([]domain.StockMovement, error) {
	args := m.Called(ctx, areaID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) FindOpeningSnapshot(ctx context.Context, areaID, productID string, at time.Time) (*domain.StockSnapshot, error) {
	args := m.Called(ctx, areaID, productID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockSnapshot), args.Error(1)
}

func (m *MockStockRepository) ListSnapshotsInWindow(ctx context.Context, areaID string, from, to time.Time) ([]domain.StockSnapshot, error) {
	args := m.Called(ctx, areaID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockSnapshot), args.Error(1)
}

func (m *MockStockRepository) ListDirectSales(ctx context.Context, areaID string, from, to time.Time) ([]domain.ProductQuantity, error) {
	args := m.Called(ctx, areaID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductQuantity), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, businessID string) ([]domain.CurrencyEntry, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyEntry), args.Error(1)
}

func (m *MockCurrencyRepository) GetReportingConfig(ctx context.Context, businessID string) (*domain.ReportingConfig, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportingConfig), args.Error(1)
}

// --- Test Suite ---
type ReportServiceTestSuite struct {
	suite.Suite
	mockBusinessRepo *MockBusinessRepository
	mockCycleRepo    *MockCycleRepository
	mockOrderRepo    *MockOrderRepository
	mockStockRepo    *MockStockRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ReportingSvc
	now              time.Time
	actor            domain.Actor
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.mockCycleRepo = new(MockCycleRepository)
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)

	// Wednesday 2026-03-04.
	suite.now = time.Date(2026, time.March, 4, 15, 0, 0, 0, time.UTC)
	suite.actor = domain.Actor{UserID: "user-1", BusinessID: "biz-1", Role: domain.RoleOwner}

	scope := services.NewScopeService(suite.mockBusinessRepo)
	suite.service = services.NewReportService(
		scope,
		suite.mockCurrencyRepo,
		suite.mockCycleRepo,
		suite.mockOrderRepo,
		suite.mockStockRepo,
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *ReportServiceTestSuite) expectSingleBusiness() {
	suite.mockBusinessRepo.On("FindBusinessByID", mock.Anything, "biz-1").Return(&domain.Business{
		BusinessID: "biz-1",
		Name:       "Test Business",
		Mode:       domain.ModeSingle,
	}, nil)
}

func (suite *ReportServiceTestSuite) expectCatalog(businessID string) {
	suite.mockCurrencyRepo.On("GetReportingConfig", mock.Anything, businessID).Return(&domain.ReportingConfig{Precision: 2}, nil)
	suite.mockCurrencyRepo.On("ListCurrencies", mock.Anything, businessID).Return([]domain.CurrencyEntry{
		{Code: "CUP", ExchangeRate: decimal.NewFromInt(1), IsMain: true},
		{Code: "USD", ExchangeRate: decimal.NewFromInt(120)},
	}, nil)
}

// --- Test Cases ---

func (suite *ReportServiceTestSuite) TestSalesByMode_EmptyWindowsYieldZeroBuckets() {
	ctx := context.Background()
	suite.expectSingleBusiness()
	suite.expectCatalog("biz-1")

	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"biz-1"}, mock.Anything, mock.Anything).
		Return([]domain.EconomicCycle{}, nil)

	buckets, err := suite.service.SalesByMode(ctx, suite.actor, timebucket.ModeWeek)

	suite.Require().NoError(err)
	suite.Require().Len(buckets, 7)
	for i, bucket := range buckets {
		suite.Equal(i, bucket.Number)
		suite.Equal("CUP", bucket.MainCurrency)
		suite.Equal("CUP", bucket.CostCurrency)
		suite.True(bucket.TotalIncomes.Amount.IsZero())
		suite.True(bucket.GrossProfit.Amount.IsZero())
		suite.Empty(bucket.EconomicCycleIDs)
		suite.NotNil(bucket.EconomicCycleIDs, "empty buckets keep an empty list, not null")
	}
	suite.Equal("Sunday", buckets[0].Label)
	suite.mockCycleRepo.AssertNumberOfCalls(suite.T(), "ListCyclesInWindow", 7)
}

func (suite *ReportServiceTestSuite) TestSalesByMode_AggregatesOrdersIntoBucket() {
	ctx := context.Background()
	suite.expectSingleBusiness()
	suite.expectCatalog("biz-1")

	// Only the Wednesday window has a cycle.
	wednesday := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"biz-1"}, wednesday, wednesday.AddDate(0, 0, 1)).
		Return([]domain.EconomicCycle{{CycleID: "cycle-1", BusinessID: "biz-1", OpenDate: wednesday}}, nil)
	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"biz-1"}, mock.Anything, mock.Anything).
		Return([]domain.EconomicCycle{}, nil)

	suite.mockOrderRepo.On("ListOrdersByCycles", mock.Anything, []string{"cycle-1"}).Return([]domain.OrderReceipt{
		{
			OrderID:    "ord-1",
			Prices:     []domain.Money{domain.NewMoney(decimal.NewFromInt(10), "USD")},
			TotalToPay: []domain.Money{domain.NewMoney(decimal.NewFromInt(10), "USD")},
			TotalCost:  domain.NewMoney(decimal.NewFromInt(200), "CUP"),
		},
	}, nil)
	suite.mockOrderRepo.On("ListCashOperationsByCycles", mock.Anything, []string{"cycle-1"}).
		Return([]domain.CashOperation{}, nil)

	buckets, err := suite.service.SalesByMode(ctx, suite.actor, timebucket.ModeWeek)

	suite.Require().NoError(err)
	suite.Require().Len(buckets, 7)

	// Results merge back by bucket number, so Wednesday is slot 3.
	wed := buckets[3]
	suite.Equal([]string{"cycle-1"}, wed.EconomicCycleIDs)
	suite.True(decimal.NewFromInt(1200).Equal(wed.TotalIncomes.Amount), "got %s", wed.TotalIncomes.Amount)
	suite.True(decimal.NewFromInt(200).Equal(wed.TotalCost.Amount))
	suite.True(decimal.NewFromInt(1000).Equal(wed.GrossProfit.Amount))
	suite.Empty(buckets[0].EconomicCycleIDs)
}

func (suite *ReportServiceTestSuite) TestSalesByMode_GroupOwnerAggregatesBranches() {
	ctx := context.Background()
	groupActor := domain.Actor{UserID: "user-1", BusinessID: "group-1", Role: domain.RoleGroupOwner}

	suite.mockBusinessRepo.On("FindBusinessByID", mock.Anything, "group-1").Return(&domain.Business{
		BusinessID: "group-1",
		Mode:       domain.ModeGroup,
		BranchIDs:  []string{"branch-1", "branch-2"},
	}, nil)
	suite.expectCatalog("group-1")

	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"group-1", "branch-1", "branch-2"}, mock.Anything, mock.Anything).
		Return([]domain.EconomicCycle{}, nil)

	_, err := suite.service.SalesByMode(ctx, groupActor, timebucket.ModeWeek)

	suite.Require().NoError(err)
	suite.mockCycleRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestSalesByMode_BranchManagerStaysSingle() {
	ctx := context.Background()
	branchActor := domain.Actor{UserID: "user-2", BusinessID: "branch-1", Role: domain.RoleManager}

	// A branch of a group: group mode but with a parent, so no expansion
	// regardless of role.
	suite.mockBusinessRepo.On("FindBusinessByID", mock.Anything, "branch-1").Return(&domain.Business{
		BusinessID: "branch-1",
		Mode:       domain.ModeGroup,
		ParentID:   "group-1",
	}, nil)
	suite.expectCatalog("branch-1")

	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"branch-1"}, mock.Anything, mock.Anything).
		Return([]domain.EconomicCycle{}, nil)

	_, err := suite.service.SalesByMode(ctx, branchActor, timebucket.ModeWeek)

	suite.Require().NoError(err)
	suite.mockCycleRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestSalesByMode_NoMainCurrencyFails() {
	ctx := context.Background()
	suite.expectSingleBusiness()
	suite.mockCurrencyRepo.On("GetReportingConfig", mock.Anything, "biz-1").Return(&domain.ReportingConfig{Precision: 2}, nil)
	suite.mockCurrencyRepo.On("ListCurrencies", mock.Anything, "biz-1").Return([]domain.CurrencyEntry{
		{Code: "USD", ExchangeRate: decimal.NewFromInt(120)},
	}, nil)

	_, err := suite.service.SalesByMode(ctx, suite.actor, timebucket.ModeWeek)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoMainCurrency)
	suite.mockCycleRepo.AssertNotCalled(suite.T(), "ListCyclesInWindow")
}

func (suite *ReportServiceTestSuite) TestLastSevenDays_BucketsCarrySalesAndCurrencies() {
	ctx := context.Background()
	suite.expectSingleBusiness()
	suite.mockCurrencyRepo.On("GetReportingConfig", mock.Anything, "biz-1").
		Return(&domain.ReportingConfig{Precision: 2, CostCurrency: "USD"}, nil)
	suite.mockCurrencyRepo.On("ListCurrencies", mock.Anything, "biz-1").Return([]domain.CurrencyEntry{
		{Code: "CUP", ExchangeRate: decimal.NewFromInt(1), IsMain: true},
		{Code: "USD", ExchangeRate: decimal.NewFromInt(120)},
	}, nil)
	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"biz-1"}, mock.Anything, mock.Anything).
		Return([]domain.EconomicCycle{}, nil)

	buckets, err := suite.service.LastSevenDays(ctx, suite.actor, "biz-1")

	suite.Require().NoError(err)
	suite.Require().Len(buckets, 7)
	for _, bucket := range buckets {
		suite.NotNil(bucket.TotalSales, "empty days keep an empty sales list, not null")
		suite.Equal("CUP", bucket.MainCurrency)
		suite.Equal("USD", bucket.CostCurrency)
	}
}

func (suite *ReportServiceTestSuite) TestLastSevenDays_Forbidden() {
	ctx := context.Background()
	suite.expectSingleBusiness()

	_, err := suite.service.LastSevenDays(ctx, suite.actor, "biz-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportServiceTestSuite) TestGeneralFinancial_InvalidWindow() {
	ctx := context.Background()
	query := portssvc.GeneralFinancialQuery{
		From: suite.now,
		To:   suite.now.AddDate(0, 0, -1),
	}

	_, err := suite.service.GeneralFinancial(ctx, suite.actor, query)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindBusinessByID")
}

func (suite *ReportServiceTestSuite) TestGeneralFinancial_AccountIDsSuppressCashOps() {
	ctx := context.Background()
	suite.expectSingleBusiness()
	suite.expectCatalog("biz-1")

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	suite.mockOrderRepo.On("ListOrdersInWindow", mock.Anything, []string{"biz-1"}, from, to).
		Return([]domain.OrderReceipt{}, nil)
	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"biz-1"}, from, to).
		Return([]domain.EconomicCycle{{CycleID: "cycle-1"}}, nil)
	suite.mockOrderRepo.On("ListCashOperationsByCycles", mock.Anything, []string{"cycle-1"}).
		Return([]domain.CashOperation{
			{Operation: domain.OperationDeposit, Amount: decimal.NewFromInt(100), CodeCurrency: "CUP"},
		}, nil)

	query := portssvc.GeneralFinancialQuery{From: from, To: to, AccountIDs: []string{"acct-1"}}
	summary, err := suite.service.GeneralFinancial(ctx, suite.actor, query)

	suite.Require().NoError(err)
	// An external account ledger covers the window, so the drawer deposit is
	// not folded in.
	suite.Empty(summary.ManualDeposits)
	suite.True(summary.TotalIncomesMain.Amount.IsZero())
}

func (suite *ReportServiceTestSuite) TestGeneralFinancial_FoldsCashOpsByDefault() {
	ctx := context.Background()
	suite.expectSingleBusiness()
	suite.expectCatalog("biz-1")

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	suite.mockOrderRepo.On("ListOrdersInWindow", mock.Anything, []string{"biz-1"}, from, to).
		Return([]domain.OrderReceipt{}, nil)
	suite.mockCycleRepo.On("ListCyclesInWindow", mock.Anything, []string{"biz-1"}, from, to).
		Return([]domain.EconomicCycle{{CycleID: "cycle-1"}}, nil)
	suite.mockOrderRepo.On("ListCashOperationsByCycles", mock.Anything, []string{"cycle-1"}).
		Return([]domain.CashOperation{
			{Operation: domain.OperationDeposit, Amount: decimal.NewFromInt(100), CodeCurrency: "CUP"},
		}, nil)

	query := portssvc.GeneralFinancialQuery{From: from, To: to}
	summary, err := suite.service.GeneralFinancial(ctx, suite.actor, query)

	suite.Require().NoError(err)
	suite.Require().Len(summary.ManualDeposits, 1)
	suite.True(decimal.NewFromInt(100).Equal(summary.TotalIncomesMain.Amount))
}

func (suite *ReportServiceTestSuite) TestTipsByCycle_GroupsPerPerson() {
	ctx := context.Background()
	suite.expectSingleBusiness()
	suite.expectCatalog("biz-1")

	suite.mockCycleRepo.On("FindCycleByID", mock.Anything, "cycle-1").Return(&domain.EconomicCycle{
		CycleID:    "cycle-1",
		BusinessID: "biz-1",
	}, nil)
	suite.mockOrderRepo.On("ListTipsByCycle", mock.Anything, "cycle-1").Return([]domain.TipRecord{
		{PersonID: "person-b", PersonName: "Bo", Amount: decimal.NewFromInt(50), CodeCurrency: "CUP"},
		{PersonID: "person-a", PersonName: "Al", Amount: decimal.NewFromInt(1), CodeCurrency: "USD"},
		{PersonID: "person-a", PersonName: "Al", Amount: decimal.NewFromInt(30), CodeCurrency: "CUP"},
	}, nil)

	people, err := suite.service.TipsByCycle(ctx, suite.actor, "cycle-1")

	suite.Require().NoError(err)
	suite.Require().Len(people, 2)

	suite.Equal("person-a", people[0].PersonID)
	suite.Len(people[0].Tips, 2)
	// 30 CUP + 1 USD at rate 120.
	suite.True(decimal.NewFromInt(150).Equal(people[0].TipsMain.Amount), "got %s", people[0].TipsMain.Amount)

	suite.Equal("person-b", people[1].PersonID)
	suite.True(decimal.NewFromInt(50).Equal(people[1].TipsMain.Amount))
}

func (suite *ReportServiceTestSuite) TestTipsByCycle_CycleOutsideScope() {
	ctx := context.Background()
	suite.expectSingleBusiness()

	suite.mockCycleRepo.On("FindCycleByID", mock.Anything, "cycle-9").Return(&domain.EconomicCycle{
		CycleID:    "cycle-9",
		BusinessID: "biz-9",
	}, nil)

	_, err := suite.service.TipsByCycle(ctx, suite.actor, "cycle-9")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "ListTipsByCycle")
}

func (suite *ReportServiceTestSuite) TestMostSelled_UsesModeWindow() {
	ctx := context.Background()
	suite.expectSingleBusiness()

	weekStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	ranked := []domain.SelledProduct{
		{ProductID: "prod-1", Name: "Coffee", Quantity: decimal.NewFromInt(40)},
		{ProductID: "prod-2", Name: "Tea", Quantity: decimal.NewFromInt(12)},
	}
	suite.mockOrderRepo.On("ListSelledProducts", mock.Anything, []string{"biz-1"}, weekStart, suite.now).
		Return(ranked, nil)

	products, err := suite.service.MostSelled(ctx, suite.actor, timebucket.ModeWeek)

	suite.Require().NoError(err)
	suite.Equal(ranked, products)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestStockInventory_ReconcilesArea() {
	ctx := context.Background()
	suite.expectCatalog("biz-1")
	suite.expectSingleBusiness()

	dayStart := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	suite.mockStockRepo.On("FindAreaByID", mock.Anything, "area-1").Return(&domain.Area{
		AreaID:     "area-1",
		BusinessID: "biz-1",
		Name:       "Main Warehouse",
	}, nil)
	suite.mockStockRepo.On("ListProductStocks", mock.Anything, "area-1").Return([]domain.ProductStock{
		{
			AreaID:      "area-1",
			ProductID:   "prod-1",
			ProductName: "Beer",
			Type:        domain.ProductTypeStock,
			Quantity:    decimal.NewFromInt(9),
			AverageCost: domain.NewMoney(decimal.NewFromInt(2), "CUP"),
			SalePrice:   domain.NewMoney(decimal.NewFromInt(5), "CUP"),
		},
		{
			// Menu products never enter reconciliation.
			AreaID:      "area-1",
			ProductID:   "prod-2",
			ProductName: "Burger",
			Type:        domain.ProductTypeMenu,
			Quantity:    decimal.NewFromInt(100),
		},
	}, nil)
	suite.mockStockRepo.On("ListMovements", mock.Anything, "area-1", dayStart, suite.now).Return([]domain.StockMovement{
		{ProductID: "prod-1", Category: domain.MovementEntry, Quantity: decimal.NewFromInt(5), CreatedAt: dayStart.Add(2 * time.Hour)},
		{ProductID: "prod-1", Category: domain.MovementOut, Quantity: decimal.NewFromInt(2), CreatedAt: dayStart.Add(3 * time.Hour)},
	}, nil)
	suite.mockStockRepo.On("ListDirectSales", mock.Anything, "area-1", dayStart, suite.now).Return([]domain.ProductQuantity{
		{ProductID: "prod-1", Quantity: decimal.NewFromInt(3)},
	}, nil)
	suite.mockStockRepo.On("FindOpeningSnapshot", mock.Anything, "area-1", "prod-1", dayStart).Return(&domain.StockSnapshot{
		SnapshotID: "snap-1",
		ProductID:  "prod-1",
		Type:       domain.SnapshotOpening,
		Quantity:   decimal.NewFromInt(10),
		TakenAt:    dayStart,
	}, nil)

	report, err := suite.service.StockInventory(ctx, suite.actor, "area-1")

	suite.Require().NoError(err)
	suite.Equal("Main Warehouse", report.AreaName)
	suite.Require().Len(report.Products, 1)

	row := report.Products[0]
	suite.Equal("prod-1", row.ProductID)
	// 10 + 5 - 2 - 3 direct - 9 on hand = 1 indirect.
	suite.True(decimal.NewFromInt(1).Equal(row.IndirectSales), "got %s", row.IndirectSales)
	suite.True(row.Estimated)

	// 9 on hand at cost 2; one estimated sale at price 5.
	suite.True(decimal.NewFromInt(18).Equal(report.TotalCost.Amount))
	suite.True(decimal.NewFromInt(5).Equal(report.TotalEstimate.Amount))
}

func (suite *ReportServiceTestSuite) TestStockInventory_CountsMovementsRecordedBeforeWindow() {
	ctx := context.Background()
	suite.expectCatalog("biz-1")
	suite.expectSingleBusiness()

	// Opening count taken the previous evening; an entry landed between the
	// snapshot and the start of the day. The movement fetch must reach back to
	// the snapshot or the entry gets misread as an indirect sale.
	dayStart := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	snapTime := dayStart.Add(-16 * time.Hour)

	suite.mockStockRepo.On("FindAreaByID", mock.Anything, "area-1").Return(&domain.Area{
		AreaID:     "area-1",
		BusinessID: "biz-1",
		Name:       "Main Warehouse",
	}, nil)
	suite.mockStockRepo.On("ListProductStocks", mock.Anything, "area-1").Return([]domain.ProductStock{
		{
			AreaID:      "area-1",
			ProductID:   "prod-1",
			ProductName: "Beer",
			Type:        domain.ProductTypeStock,
			Quantity:    decimal.NewFromInt(15),
			AverageCost: domain.NewMoney(decimal.NewFromInt(2), "CUP"),
			SalePrice:   domain.NewMoney(decimal.NewFromInt(5), "CUP"),
		},
	}, nil)
	suite.mockStockRepo.On("FindOpeningSnapshot", mock.Anything, "area-1", "prod-1", dayStart).Return(&domain.StockSnapshot{
		SnapshotID: "snap-1",
		ProductID:  "prod-1",
		Type:       domain.SnapshotOpening,
		Quantity:   decimal.NewFromInt(10),
		TakenAt:    snapTime,
	}, nil)
	suite.mockStockRepo.On("ListMovements", mock.Anything, "area-1", snapTime, suite.now).Return([]domain.StockMovement{
		{ProductID: "prod-1", Category: domain.MovementEntry, Quantity: decimal.NewFromInt(5), CreatedAt: dayStart.Add(-8 * time.Hour)},
	}, nil)
	suite.mockStockRepo.On("ListDirectSales", mock.Anything, "area-1", dayStart, suite.now).
		Return([]domain.ProductQuantity{}, nil)

	report, err := suite.service.StockInventory(ctx, suite.actor, "area-1")

	suite.Require().NoError(err)
	suite.Require().Len(report.Products, 1)

	// 10 at the snapshot + 5 entered before the window = 15 on hand; nothing
	// left over to estimate.
	row := report.Products[0]
	suite.True(row.IndirectSales.IsZero(), "got %s", row.IndirectSales)
	suite.False(row.Estimated)
	suite.True(decimal.NewFromInt(30).Equal(report.TotalCost.Amount))
	suite.True(report.TotalEstimate.Amount.IsZero())
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestStockInventory_AreaOutsideScope() {
	ctx := context.Background()
	suite.expectSingleBusiness()

	suite.mockStockRepo.On("FindAreaByID", mock.Anything, "area-9").Return(&domain.Area{
		AreaID:     "area-9",
		BusinessID: "biz-9",
	}, nil)

	_, err := suite.service.StockInventory(ctx, suite.actor, "area-9")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ListProductStocks")
}

func (suite *ReportServiceTestSuite) TestPeriodInventory_InvalidWindow() {
	ctx := context.Background()

	_, err := suite.service.PeriodInventory(ctx, suite.actor, "area-1", suite.now, suite.now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
