package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutriai/internal/core/nutrition"
	"nutriai/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Recipe 資料庫中的一份食譜
type Recipe struct {
	ID                int64          `db:"id" json:"id"`
	Title             string         `db:"title" json:"title"`
	URL               sql.NullString `db:"url" json:"-"`
	IngredientsJSON   sql.NullString `db:"ingredients" json:"-"`
	NutritionJSON     sql.NullString `db:"nutrition" json:"-"`
	Extracted         bool           `db:"extracted" json:"extracted"`
	NutrientsComputed bool           `db:"nutrients_computed" json:"nutrients_computed"`
}

// Ingredients 解析食材清單；未抽取的食譜回傳空清單
func (r *Recipe) Ingredients() ([]common.IngredientRecord, error) {
	if !r.IngredientsJSON.Valid || r.IngredientsJSON.String == "" {
		return nil, nil
	}
	var out []common.IngredientRecord
	if err := json.Unmarshal([]byte(r.IngredientsJSON.String), &out); err != nil {
		return nil, fmt.Errorf("decode ingredients of recipe %d: %w", r.ID, err)
	}
	return out, nil
}

// Totals 已儲存的營養總量
func (r *Recipe) Totals() (*nutrition.NutrientTotals, error) {
	if !r.NutritionJSON.Valid || r.NutritionJSON.String == "" {
		return nil, nil
	}
	var t nutrition.NutrientTotals
	if err := json.Unmarshal([]byte(r.NutritionJSON.String), &t); err != nil {
		return nil, fmt.Errorf("decode nutrition of recipe %d: %w", r.ID, err)
	}
	return &t, nil
}

// NewRecipe 新增食譜的輸入
type NewRecipe struct {
	Title       string
	URL         string
	Ingredients []common.IngredientRecord
}

// Store 食譜資料存取，支援 sqlite 與 postgres
type Store struct {
	db *sqlx.DB
}

// NewStore 建立 Store 並確保資料表存在
func NewStore(ctx context.Context, db *sqlx.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.db.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS recipes (
		id %s,
		title TEXT NOT NULL,
		url TEXT UNIQUE,
		ingredients TEXT,
		extracted BOOLEAN NOT NULL DEFAULT FALSE,
		nutrition TEXT,
		nutrients_computed BOOLEAN NOT NULL DEFAULT FALSE,
		computed_at TIMESTAMP
	)`, idColumn)
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create recipes table: %w", err)
	}
	return nil
}

// SaveRecipe 新增食譜；有食材時標記為已抽取
func (s *Store) SaveRecipe(ctx context.Context, in NewRecipe) (int64, error) {
	var ingredients sql.NullString
	if in.Ingredients != nil {
		data, err := json.Marshal(in.Ingredients)
		if err != nil {
			return 0, fmt.Errorf("encode ingredients: %w", err)
		}
		ingredients = sql.NullString{String: string(data), Valid: true}
	}
	url := sql.NullString{String: in.URL, Valid: in.URL != ""}

	var id int64
	query := s.db.Rebind(`INSERT INTO recipes (title, url, ingredients, extracted) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := s.db.QueryRowxContext(ctx, query, in.Title, url, ingredients, ingredients.Valid).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	return id, nil
}

const recipeColumns = `id, title, url, ingredients, nutrition, extracted, nutrients_computed`

// GetRecipe 依 ID 讀取食譜
func (s *Store) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	var r Recipe
	query := s.db.Rebind(`SELECT ` + recipeColumns + ` FROM recipes WHERE id = ?`)
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound.Wrap(fmt.Errorf("recipe %d", id))
		}
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return &r, nil
}

// ListPending 依選取模式列出要計算的食譜，依 ID 排序
func (s *Store) ListPending(ctx context.Context, sel Selection) ([]Recipe, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE `
	var args []interface{}
	switch sel.Mode {
	case ModeNew:
		query += `extracted = ? AND nutrients_computed = ?`
		args = append(args, true, false)
	case ModeAll:
		query += `extracted = ?`
		args = append(args, true)
	case ModeRange:
		lo, hi := sel.Bounds()
		query += `id BETWEEN ? AND ?`
		args = append(args, lo, hi)
	}
	query += ` ORDER BY id`
	if sel.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, sel.Limit)
	}

	var recipes []Recipe
	if err := s.db.SelectContext(ctx, &recipes, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// IngredientLists 讀取多份食譜的食材，順序與 ids 相同
func (s *Store) IngredientLists(ctx context.Context, ids []int64) ([][]common.IngredientRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+recipeColumns+` FROM recipes WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var recipes []Recipe
	if err := s.db.SelectContext(ctx, &recipes, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}

	byID := make(map[int64]*Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}
	lists := make([][]common.IngredientRecord, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, common.ErrNotFound.Wrap(fmt.Errorf("recipe %d", id))
		}
		ingredients, err := r.Ingredients()
		if err != nil {
			return nil, err
		}
		lists = append(lists, ingredients)
	}
	return lists, nil
}

// SaveTotals 在同一交易中寫入營養總量與已計算旗標
func (s *Store) SaveTotals(ctx context.Context, id int64, totals nutrition.NutrientTotals) (err error) {
	data, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("encode totals: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				common.LogWarn("交易回滾失敗", zap.Int64("recipe_id", id), zap.Error(rbErr))
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE recipes SET nutrition = ?, nutrients_computed = ?, computed_at = ? WHERE id = ?`),
		string(data), true, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update recipe %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update recipe %d: %w", id, err)
	}
	if n != 1 {
		err = common.ErrNotFound.Wrap(fmt.Errorf("recipe %d", id))
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit recipe %d: %w", id, err)
	}
	return nil
}

// Close 關閉資料庫連線
func (s *Store) Close() error {
	return s.db.Close()
}
