package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketpnl/internal/models"
	"marketpnl/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- universes & markets ----------------------------------------------------

func (s *Store) GetUniverseByID(ctx context.Context, id string) (*models.Universe, error) {
	if s == nil || s.db == nil || strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var item models.Universe
	err := s.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertUniverse(ctx context.Context, item *models.Universe) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"parent_universe_id", "creation_timestamp"}),
	}).Create(item).Error
}

func (s *Store) ListMarketsByIDs(ctx context.Context, ids []string) ([]models.Market, error) {
	if s == nil || s.db == nil || len(ids) == 0 {
		return nil, nil
	}
	var items []models.Market
	if err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpsertMarket(ctx context.Context, item *models.Market) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"universe_id",
			"num_outcomes",
			"min_price",
			"max_price",
			"num_ticks",
			"finalized",
			"finalization_timestamp",
			"reporting_state",
			"winning_payout_numerators",
			"tentative_winning_payout_numerators",
		}),
	}).Create(item).Error
}

// --- position-change & fill logs --------------------------------------------

func (s *Store) ListPositionChanges(ctx context.Context, params repository.ListPositionChangesParams) ([]models.PositionChange, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.PositionChange{})
	if strings.TrimSpace(params.UniverseID) != "" {
		query = query.Where("universe_id = ?", strings.TrimSpace(params.UniverseID))
	}
	if strings.TrimSpace(params.Account) != "" {
		query = query.Where("account = ?", strings.TrimSpace(params.Account))
	}
	if strings.TrimSpace(params.MarketID) != "" {
		query = query.Where("market_id = ?", strings.TrimSpace(params.MarketID))
	}
	if params.EndTime > 0 {
		query = query.Where("timestamp <= ?", params.EndTime)
	}
	var items []models.PositionChange
	if err := query.
		Order("block_number asc").
		Order("log_index asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpsertPositionChange(ctx context.Context, item *models.PositionChange) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "market_id"},
			{Name: "outcome"},
			{Name: "account"},
			{Name: "block_number"},
			{Name: "log_index"},
		},
		DoNothing: true,
	}).Create(item).Error
}

func (s *Store) ListFills(ctx context.Context, params repository.ListFillsParams) ([]models.Fill, error) {
	if s == nil || s.db == nil || len(params.MarketIDs) == 0 {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.Fill{}).
		Where("market_id IN ?", params.MarketIDs)
	if params.EndTime > 0 {
		query = query.Where("timestamp <= ?", params.EndTime)
	}
	var items []models.Fill
	if err := query.
		Order("block_number asc").
		Order("log_index asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertFill(ctx context.Context, item *models.Fill) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// --- balances & orders ------------------------------------------------------

func (s *Store) ListShareBalances(ctx context.Context, account string, marketIDs []string) ([]models.ShareBalance, error) {
	if s == nil || s.db == nil || strings.TrimSpace(account) == "" {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.ShareBalance{}).
		Where("account = ?", strings.TrimSpace(account))
	if len(marketIDs) > 0 {
		query = query.Where("market_id IN ?", marketIDs)
	}
	var items []models.ShareBalance
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpsertShareBalance(ctx context.Context, item *models.ShareBalance) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "market_id"},
			{Name: "outcome"},
			{Name: "account"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "block_number", "timestamp"}),
	}).Create(item).Error
}

func (s *Store) ListOpenOrders(ctx context.Context, account string) ([]models.OpenOrder, error) {
	if s == nil || s.db == nil || strings.TrimSpace(account) == "" {
		return nil, nil
	}
	var items []models.OpenOrder
	if err := s.db.WithContext(ctx).
		Model(&models.OpenOrder{}).
		Where("account = ?", strings.TrimSpace(account)).
		Where("order_state = ?", models.OrderStateOpen).
		Order("block_number asc").
		Order("log_index asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpsertOpenOrder(ctx context.Context, item *models.OpenOrder) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"amount",
			"price",
			"order_state",
			"timestamp",
			"block_number",
			"log_index",
			"tokens_escrowed",
			"shares_escrowed",
		}),
	}).Create(item).Error
}

// --- activity counts --------------------------------------------------------

func accountFills(db *gorm.DB, params repository.AccountRangeParams) *gorm.DB {
	account := strings.TrimSpace(params.Account)
	query := db.Model(&models.Fill{}).
		Where("creator = ? OR filler = ?", account, account)
	if params.StartTime > 0 {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if params.EndTime > 0 {
		query = query.Where("timestamp <= ?", params.EndTime)
	}
	return query
}

func (s *Store) CountFills(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := accountFills(s.db.WithContext(ctx), params).Count(&count).Error
	return count, err
}

func (s *Store) CountMarketsTraded(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := accountFills(s.db.WithContext(ctx), params).
		Distinct("market_id").
		Count(&count).Error
	return count, err
}

func (s *Store) CountSuccessfulDisputes(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.DisputeRecord{}).
		Where("account = ?", strings.TrimSpace(params.Account)).
		Where("won = ?", true)
	if params.StartTime > 0 {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if params.EndTime > 0 {
		query = query.Where("timestamp <= ?", params.EndTime)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (s *Store) CountRedeemed(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.RedeemRecord{}).
		Where("account = ?", strings.TrimSpace(params.Account))
	if params.StartTime > 0 {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if params.EndTime > 0 {
		query = query.Where("timestamp <= ?", params.EndTime)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (s *Store) InsertDisputeRecord(ctx context.Context, item *models.DisputeRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) InsertRedeemRecord(ctx context.Context, item *models.RedeemRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// --- snapshots ---------------------------------------------------------------

func (s *Store) InsertPortfolioSnapshot(ctx context.Context, item *models.PortfolioSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}, {Name: "snapshot_at"}},
		DoNothing: true,
	}).Create(item).Error
}
