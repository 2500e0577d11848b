package kroger

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.kroger.com/v1"

// token 到期前的安全邊界，避免在途請求拿到剛好過期的 token
const tokenExpiryMargin = 30 * time.Second

// Client Kroger API 客戶端
// token 與到期時間快取在客戶端上，只在過期時重新認證
type Client struct {
	client *resty.Client
	cfg    *config.KrogerConfig

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient 創建 Kroger 客戶端
func NewClient(cfg *config.KrogerConfig) *Client {
	return NewClientWithBaseURL(cfg, defaultBaseURL)
}

// NewClientWithBaseURL 創建指定 base URL 的客戶端（測試用）
func NewClientWithBaseURL(cfg *config.KrogerConfig, baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &Client{
		client: client,
		cfg:    cfg,
	}
}

// token 回傳有效的 access token，必要時重新認證
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt.Add(-tokenExpiryMargin)) {
		return c.accessToken, nil
	}

	auth, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	c.accessToken = auth.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(auth.ExpiresIn) * time.Second)

	common.LogInfo("Kroger 認證成功",
		zap.Time("expires_at", c.expiresAt),
	)
	return c.accessToken, nil
}

// authenticate 以 client_credentials 模式取得 token
func (c *Client) authenticate(ctx context.Context) (*AuthResponse, error) {
	credentials := base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s:%s", c.cfg.ClientID, c.cfg.ClientSecret)))

	var auth AuthResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("Authorization", "Basic "+credentials).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
			"scope":      "product.compact",
		}).
		SetResult(&auth).
		Post("/connect/oauth2/token")

	if err != nil {
		return nil, wrapTimeout("authenticate", err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogError("Kroger authentication failed",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: status %d", common.ErrAuthenticationFailed, resp.StatusCode())
	}
	if auth.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", common.ErrAuthenticationFailed)
	}

	return &auth, nil
}

// SearchProduct 查詢單一商品價格，查無商品回傳空 Data 而非錯誤
func (c *Client) SearchProduct(ctx context.Context, term string) (*ProductSearchResponse, error) {
	accessToken, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	var result ProductSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", "Bearer "+accessToken).
		SetQueryParams(map[string]string{
			"filter.term":       term,
			"filter.limit":      fmt.Sprintf("%d", c.cfg.Limit),
			"filter.locationId": c.cfg.LocationID,
		}).
		SetResult(&result).
		Get("/products")

	if err != nil {
		return nil, wrapTimeout("search product", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("kroger API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	common.LogDebug("商品查詢完成",
		zap.String("term", term),
		zap.Int("products", len(result.Data)),
	)
	return &result, nil
}

// wrapTimeout 將超時類錯誤標記為 ErrTimeout，其餘原樣包裝
func wrapTimeout(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return fmt.Errorf("%s: %w: %s", op, common.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
