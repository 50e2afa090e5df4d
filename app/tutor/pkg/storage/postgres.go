package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/config"
)

// ErrNotFound 分析记录不存在
var ErrNotFound = errors.New("analysis not found")

// Summary 列表页使用的分析摘要
type Summary struct {
	ID                string    `json:"analysis_id"`
	Question          string    `json:"question"`
	Status            string    `json:"status"`
	Difficulty        string    `json:"difficulty,omitempty"`
	TotalSubquestions int       `json:"total_subquestions"`
	CreatedAt         time.Time `json:"created_at"`
}

type Storage struct {
	db *sql.DB
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	return Open("postgres", cfg.DSN())
}

// Open 按驱动名和连接串打开数据库并初始化表结构
func Open(driver, dsn string) (*Storage, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			status TEXT NOT NULL,
			difficulty TEXT,
			raw_text TEXT,
			structured_result JSONB,
			error TEXT,
			processing_time DOUBLE PRECISION,
			total_subquestions INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// SaveAnalysis 保存一次分析的完整响应，相同 id 重复保存时忽略
func (s *Storage) SaveAnalysis(ctx context.Context, question string, resp *analysis.Response) error {
	var (
		result     []byte
		difficulty sql.NullString
		total      int
		procTime   sql.NullFloat64
	)
	if resp.StructuredResult != nil {
		b, err := json.Marshal(resp.StructuredResult)
		if err != nil {
			return fmt.Errorf("marshal structured result: %w", err)
		}
		// JSONB 同样不接受 \u0000
		result = []byte(strings.ReplaceAll(string(b), `\u0000`, ""))
		difficulty = sql.NullString{String: string(resp.StructuredResult.QuestionAnalysis.Difficulty), Valid: true}
		total = resp.StructuredResult.TotalSubquestions
	}
	if resp.ProcessingTime != nil {
		procTime = sql.NullFloat64{Float64: *resp.ProcessingTime, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, question, status, difficulty, raw_text, structured_result, error, processing_time, total_subquestions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`,
		resp.AnalysisID, sanitize(question), resp.Status, difficulty, sanitize(resp.RawText),
		nullJSON(result), sanitize(resp.Error), procTime, total,
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", resp.AnalysisID, err)
	}
	return nil
}

// GetAnalysis 按 id 读取保存的响应
func (s *Storage) GetAnalysis(ctx context.Context, id string) (*analysis.Response, error) {
	var (
		resp     analysis.Response
		rawText  sql.NullString
		result   []byte
		errMsg   sql.NullString
		procTime sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, status, raw_text, structured_result, error, processing_time FROM analyses WHERE id = $1`, id,
	).Scan(&resp.AnalysisID, &resp.Status, &rawText, &result, &errMsg, &procTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis %s: %w", id, err)
	}

	resp.RawText = rawText.String
	resp.Error = errMsg.String
	if procTime.Valid {
		pt := procTime.Float64
		resp.ProcessingTime = &pt
	}
	if len(result) > 0 {
		var doc analysis.Document
		if err := json.Unmarshal(result, &doc); err != nil {
			return nil, fmt.Errorf("decode structured result %s: %w", id, err)
		}
		resp.StructuredResult = &doc
	}
	return &resp, nil
}

// ListAnalyses 按创建时间倒序分页列出分析摘要，page 从 1 开始
func (s *Storage) ListAnalyses(ctx context.Context, page, pageSize int) ([]Summary, int, error) {
	limit, offset := Paginate(page, pageSize)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count analyses: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, status, difficulty, total_subquestions, created_at
		FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0, limit)
	for rows.Next() {
		var (
			sum        Summary
			difficulty sql.NullString
		)
		if err := rows.Scan(&sum.ID, &sum.Question, &sum.Status, &difficulty, &sum.TotalSubquestions, &sum.CreatedAt); err != nil {
			return nil, 0, err
		}
		sum.Difficulty = difficulty.String
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// Paginate 把页码换算成 LIMIT/OFFSET，pageSize 限制在 1..100
func Paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

// sanitize 移除无效的 UTF-8 字符和 NULL 字节，PostgreSQL 文本字段不支持 NULL 字节
func sanitize(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for _, r := range s {
			if r == utf8.RuneError {
				continue
			}
			v = append(v, r)
		}
		s = string(v)
	}
	return strings.ReplaceAll(s, "\x00", "")
}
