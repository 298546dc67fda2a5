package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/motomotoph/mc1lovecamerabot/internal/model"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	valueInputRaw  = "RAW"
	insertRows     = "INSERT_ROWS"
	lastColumnName = "H"
)

// SheetsRepository журнал заявок в Google Sheets, строки только добавляются
type SheetsRepository struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger
}

// NewSheetsRepository подключается к таблице по JSON ключу сервисного аккаунта
func NewSheetsRepository(
	ctx context.Context,
	credentialsJSON string,
	spreadsheetID string,
	sheetName string,
	logger *zap.Logger,
) (*SheetsRepository, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewSheetsRepositoryWithService(service, spreadsheetID, sheetName, logger), nil
}

// NewSheetsRepositoryWithService создаёт журнал поверх готового клиента
func NewSheetsRepositoryWithService(
	service *sheets.Service,
	spreadsheetID string,
	sheetName string,
	logger *zap.Logger,
) *SheetsRepository {
	return &SheetsRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}
}

// EnsureHeader записывает строку заголовков если лист пустой
func (r *SheetsRepository) EnsureHeader(ctx context.Context) error {
	resp, err := r.service.Spreadsheets.Values.
		Get(r.spreadsheetID, r.cellRange("A1:"+lastColumnName+"1")).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := &sheets.ValueRange{Values: [][]interface{}{toCells(model.RecordColumns)}}
	_, err = r.service.Spreadsheets.Values.
		Update(r.spreadsheetID, r.cellRange("A1"), header).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	r.logger.Info("Sheet header written", zap.String("sheet", r.sheetName))
	return nil
}

// Append добавляет строку заявки в конец листа
func (r *SheetsRepository) Append(ctx context.Context, row []string) error {
	if len(row) != len(model.RecordColumns) {
		return fmt.Errorf("%w: got %d, want %d", ErrRowWidth, len(row), len(model.RecordColumns))
	}

	values := &sheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := r.service.Spreadsheets.Values.
		Append(r.spreadsheetID, r.cellRange("A:"+lastColumnName), values).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// ListRows возвращает все строки листа, включая заголовок
func (r *SheetsRepository) ListRows(ctx context.Context) ([][]string, error) {
	resp, err := r.service.Spreadsheets.Values.
		Get(r.spreadsheetID, r.cellRange("A:"+lastColumnName)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, cells := range resp.Values {
		row := make([]string, 0, len(cells))
		for _, cell := range cells {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellRange диапазон в A1 нотации с экранированным именем листа
func (r *SheetsRepository) cellRange(cells string) string {
	name := strings.ReplaceAll(r.sheetName, "'", "''")
	return "'" + name + "'!" + cells
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
