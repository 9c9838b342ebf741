package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// 未填写时的占位值
const (
	placeholderURL = "YOUR_SUPABASE_URL"
	placeholderKey = "YOUR_SUPABASE_ANON_KEY"
)

// RemoteScoreStore 基于 Supabase PostgREST 接口的远程排行榜
type RemoteScoreStore struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewRemoteScoreStore 创建远程排行榜
// client 为 nil 时使用 http.DefaultClient；超时由调用方的 context 控制
func NewRemoteScoreStore(baseURL, apiKey, table string, client *http.Client) *RemoteScoreStore {
	if client == nil {
		client = http.DefaultClient
	}
	if table == "" {
		table = "scores"
	}
	return &RemoteScoreStore{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		table:   table,
		client:  client,
	}
}

// Configured URL 与密钥都已填写且不是占位符
func (s *RemoteScoreStore) Configured() bool {
	return s.baseURL != "" && s.apiKey != "" &&
		s.baseURL != placeholderURL && s.apiKey != placeholderKey
}

type scoreRow struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SubmitScore 插入一条成绩
func (s *RemoteScoreStore) SubmitScore(ctx context.Context, name string, score int) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal([]scoreRow{{Name: name, Score: score}})
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	return nil
}

// FetchScores 拉取全部成绩，按分数降序、时间降序
func (s *RemoteScoreStore) FetchScores(ctx context.Context) ([]Entry, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("select", "name,score,created_at")
	query.Set("order", "score.desc,created_at.desc")

	req, err := s.newRequest(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}

	var rows []scoreRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		e := Entry{Name: row.Name, Score: row.Score}
		if row.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339Nano, row.CreatedAt); err == nil {
				e.RecordedAt = t
			}
		}
		entries = append(entries, e)
	}
	// 客户端再排一次，不依赖服务端的 order 参数
	SortEntries(entries)
	return entries, nil
}

func (s *RemoteScoreStore) newRequest(ctx context.Context, method string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := s.baseURL + "/rest/v1/" + s.table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// checkResponse 非 2xx 时返回带状态码与服务端消息的错误
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
}
