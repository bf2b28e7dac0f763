package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"megasena-bot/internal/config"
	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
)

// Client Mega-Sena开奖历史API客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
	retryCount int
	retryDelay time.Duration
}

// NewClient 创建新的API客户端
func NewClient(cfg *config.API) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.URL,
		retryCount: cfg.RetryCount,
		retryDelay: cfg.RetryDelay,
	}
}

// FetchAllDraws 获取全部历史开奖数据，按期号升序返回
// 单条无效记录跳过并告警，不会进入历史序列；整体失败返回NetworkError
func (c *Client) FetchAllDraws() ([]lottery.Draw, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			logger.Warnf("API request retry attempt %d/%d", attempt, c.retryCount)
			time.Sleep(c.retryDelay * time.Duration(attempt)) // 线性退避
		}

		apiDraws, err := c.makeRequest(c.baseURL)
		if err != nil {
			lastErr = err
			continue
		}

		return c.convertDraws(apiDraws)
	}

	return nil, &lottery.NetworkError{
		Err: fmt.Errorf("failed to fetch draw history after %d attempts: %v", c.retryCount+1, lastErr),
	}
}

// makeRequest 执行HTTP请求
func (c *Client) makeRequest(url string) ([]lottery.APIDraw, error) {
	logger.Debugf("Making API request to: %s", url)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	var apiDraws []lottery.APIDraw
	if err := json.Unmarshal(body, &apiDraws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %v", err)
	}

	logger.Debugf("API request successful, got %d records", len(apiDraws))
	return apiDraws, nil
}

// convertDraws 转换并验证API数据，跳过无效记录
func (c *Client) convertDraws(apiDraws []lottery.APIDraw) ([]lottery.Draw, error) {
	draws := make([]lottery.Draw, 0, len(apiDraws))
	skipped := 0

	for _, apiDraw := range apiDraws {
		draw, err := lottery.ParseAPIDraw(apiDraw)
		if err != nil {
			logger.Warnf("Skipping malformed draw record: %v", err)
			skipped++
			continue
		}
		draws = append(draws, draw)
	}

	if len(draws) == 0 {
		return nil, fmt.Errorf("no valid draw records in API response (%d skipped)", skipped)
	}

	// 按期号升序排列，保证历史序列从旧到新
	sort.Slice(draws, func(i, j int) bool {
		return draws[i].Contest < draws[j].Contest
	})

	if skipped > 0 {
		logger.Warnf("Skipped %d malformed records out of %d", skipped, len(apiDraws))
	}
	logger.Infof("Retrieved %d historical draws (contest %d to %d)",
		len(draws), draws[0].Contest, draws[len(draws)-1].Contest)

	return draws, nil
}

// HealthCheck 检查API健康状态
func (c *Client) HealthCheck() error {
	resp, err := c.httpClient.Get(c.baseURL)
	if err != nil {
		return fmt.Errorf("API health check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API health check failed with status: %d", resp.StatusCode)
	}

	logger.Debug("API health check passed")
	return nil
}

// Stats 获取客户端统计信息
func (c *Client) Stats() map[string]interface{} {
	return map[string]interface{}{
		"base_url":    c.baseURL,
		"timeout":     c.httpClient.Timeout,
		"retry_count": c.retryCount,
		"retry_delay": c.retryDelay,
	}
}
