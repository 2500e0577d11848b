package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.spoonacular.com"

// Client Spoonacular API 客戶端
// 候選查詢與詳情查詢分持兩個 resty 客戶端：重試設定掛在客戶端上，
// 共用一個會讓詳情查詢也跟著重試
type Client struct {
	client       *resty.Client // 候選食譜查詢，帶重試
	detailClient *resty.Client // 詳細資訊查詢，不重試
	cfg          *config.SpoonacularConfig
}

// NewClient 創建 Spoonacular 客戶端
// 候選食譜查詢允許暫時性失敗重試（指數退避），詳細資訊查詢不重試
func NewClient(cfg *config.SpoonacularConfig) *Client {
	return NewClientWithBaseURL(cfg, defaultBaseURL)
}

// NewClientWithBaseURL 創建指定 base URL 的客戶端（測試用）
func NewClientWithBaseURL(cfg *config.SpoonacularConfig, baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError
		})

	detailClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &Client{
		client:       client,
		detailClient: detailClient,
		cfg:          cfg,
	}
}

// FindByIngredients 依食材查詢候選食譜
// ranking=1 最大化使用食材，ranking=2 最小化缺少食材
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, number, ranking int) ([]common.Recipe, error) {
	var recipes []common.Recipe

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ingredients": strings.Join(ingredients, ","),
			"number":      fmt.Sprintf("%d", number),
			"ranking":     fmt.Sprintf("%d", ranking),
			"apiKey":      c.cfg.APIKey,
		}).
		SetResult(&recipes).
		Get("/recipes/findByIngredients")

	if err != nil {
		return nil, wrapTimeout("find recipes by ingredients", err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogError("Spoonacular returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.Strings("ingredients", ingredients),
		)
		return nil, fmt.Errorf("spoonacular API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	common.LogDebug("已取得候選食譜",
		zap.Int("count", len(recipes)),
		zap.Strings("ingredients", ingredients),
	)
	return recipes, nil
}

// GetRecipeInformation 取得食譜詳細資訊，404 視為不存在而非錯誤
func (c *Client) GetRecipeInformation(ctx context.Context, id int) (*common.RecipeDetail, error) {
	var detail common.RecipeDetail

	resp, err := c.detailClient.R().
		SetContext(ctx).
		SetQueryParam("apiKey", c.cfg.APIKey).
		SetResult(&detail).
		SetPathParam("id", fmt.Sprintf("%d", id)).
		Get("/recipes/{id}/information")

	if err != nil {
		return nil, wrapTimeout("get recipe information", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		common.LogWarn("食譜詳細資訊不存在", zap.Int("recipe_id", id))
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("spoonacular API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return &detail, nil
}

// wrapTimeout 將超時類錯誤標記為 ErrTimeout，其餘原樣包裝
func wrapTimeout(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return fmt.Errorf("%s: %w: %s", op, common.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
